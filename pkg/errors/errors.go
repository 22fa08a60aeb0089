// Package errors defines the typed failures surfaced by the matching engine.
//
// No-match is never an error. These types cover caller and configuration
// mistakes only, and every one of them can be matched with errors.As.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// Error types for the fuzzymatch engine
type ErrorType string

const (
	// Rule compilation errors
	ErrorTypePattern ErrorType = "pattern"

	// Lookup errors
	ErrorTypeDiagnostics ErrorType = "diagnostics"
	ErrorTypeUnsupported ErrorType = "unsupported"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"

	// Check failures reported by the checker
	ErrorTypeMismatch      ErrorType = "mismatch"
	ErrorTypeFalsePositive ErrorType = "false_positive"
	ErrorTypeFalseNegative ErrorType = "false_negative"
)

// InvalidPatternError reports a rule spec that could not be compiled.
// It is fatal at construction time.
type InvalidPatternError struct {
	Type       ErrorType
	Kind       string // normalizer, stop_word, grouping, identity
	Spec       string
	Underlying error
	Timestamp  time.Time
}

// NewInvalidPatternError creates a new invalid pattern error
func NewInvalidPatternError(kind, spec string, err error) *InvalidPatternError {
	return &InvalidPatternError{
		Type:       ErrorTypePattern,
		Kind:       kind,
		Spec:       spec,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q: %v", e.Kind, e.Spec, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *InvalidPatternError) Unwrap() error {
	return e.Underlying
}

// NoDiagnosticsAvailableError is returned when a trace is requested from a
// lookup that ran without diagnostics. Re-run the lookup with tracing enabled.
type NoDiagnosticsAvailableError struct {
	Type      ErrorType
	Needle    string
	Timestamp time.Time
}

// NewNoDiagnosticsAvailableError creates a new diagnostics error
func NewNoDiagnosticsAvailableError(needle string) *NoDiagnosticsAvailableError {
	return &NoDiagnosticsAvailableError{
		Type:      ErrorTypeDiagnostics,
		Needle:    needle,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface
func (e *NoDiagnosticsAvailableError) Error() string {
	return fmt.Sprintf("no diagnostics available for %q: lookup was not traced", e.Needle)
}

// UnsupportedConfigurationError reports options that cannot be combined.
type UnsupportedConfigurationError struct {
	Type      ErrorType
	Option    string
	Reason    string
	Timestamp time.Time
}

// NewUnsupportedConfigurationError creates a new unsupported configuration error
func NewUnsupportedConfigurationError(option, reason string) *UnsupportedConfigurationError {
	return &UnsupportedConfigurationError{
		Type:      ErrorTypeUnsupported,
		Option:    option,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface
func (e *UnsupportedConfigurationError) Error() string {
	return fmt.Sprintf("unsupported configuration %s: %s", e.Option, e.Reason)
}

// ConfigError represents a configuration error
type ConfigError struct {
	Type       ErrorType
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Type:       ErrorTypeConfig,
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// CheckError is raised by the checker when a lookup disagrees with a known
// positive or negative pairing.
type CheckError struct {
	Type      ErrorType
	Needle    string
	Expected  string // expected (positive) or forbidden (negative) haystack text
	Actual    string // haystack text actually matched, empty for no match
	Timestamp time.Time
}

// NewCheckError creates a new check error
func NewCheckError(errType ErrorType, needle, expected, actual string) *CheckError {
	return &CheckError{
		Type:      errType,
		Needle:    needle,
		Expected:  expected,
		Actual:    actual,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface
func (e *CheckError) Error() string {
	switch e.Type {
	case ErrorTypeFalseNegative:
		return fmt.Sprintf("%q should have matched %q, but matched nothing", e.Needle, e.Expected)
	case ErrorTypeFalsePositive:
		if e.Expected == "" {
			return fmt.Sprintf("%q shouldn't have matched anything, but it matched %q", e.Needle, e.Actual)
		}
		return fmt.Sprintf("%q shouldn't have matched %q, but it did", e.Needle, e.Expected)
	default:
		if e.Expected == "" {
			return fmt.Sprintf("%q should have matched nothing, but matched %q", e.Needle, e.Actual)
		}
		return fmt.Sprintf("%q should have matched %q, but matched %q", e.Needle, e.Expected, e.Actual)
	}
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// ErrorOrNil returns nil when no errors were collected
func (e *MultiError) ErrorOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
