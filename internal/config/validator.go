package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	fmerrors "github.com/standardbeagle/fuzzymatch/pkg/errors"
	"github.com/standardbeagle/fuzzymatch/pkg/rules"
)

// Validator validates a rules file and sets defaults
type Validator struct{}

// NewValidator creates a new rules validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults checks every pattern and option. All problems are
// reported together, each as a ConfigError naming the offending field.
func (v *Validator) ValidateAndSetDefaults(r *Rules) error {
	var errs []error

	errs = append(errs, v.validatePatterns("normalizers", r.Normalizers)...)
	errs = append(errs, v.validatePatterns("tighteners", r.Tighteners)...)
	errs = append(errs, v.validatePatterns("stop_words", r.StopWords)...)
	errs = append(errs, v.validatePatterns("groupings", r.Groupings)...)
	errs = append(errs, v.validatePatterns("blockings", r.Blockings)...)
	errs = append(errs, v.validatePatterns("identities", r.Identities)...)

	if err := v.validateOptions(&r.Options); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmerrors.NewMultiError(errs)
	}

	v.setDefaults(r)
	return nil
}

// validatePatterns compiles every spec of one list
func (v *Validator) validatePatterns(field string, specs []string) []error {
	var errs []error
	for i, spec := range specs {
		if strings.TrimSpace(spec) == "" {
			continue
		}
		if _, err := rules.ParsePattern(spec, false); err != nil {
			errs = append(errs, fmerrors.NewConfigError(fmt.Sprintf("%s[%d]", field, i), spec, err))
		}
	}
	return errs
}

// validateOptions validates engine options
func (v *Validator) validateOptions(opts *Options) error {
	if math.IsNaN(opts.Threshold) || opts.Threshold < 0 || opts.Threshold >= 1 {
		return fmerrors.NewConfigError("options.threshold", fmt.Sprint(opts.Threshold),
			fmt.Errorf("threshold must be at least 0 and below 1, got %g", opts.Threshold))
	}

	if opts.CacheSize < 0 {
		return fmerrors.NewConfigError("options.cache_size", fmt.Sprint(opts.CacheSize),
			fmt.Errorf("cache size cannot be negative, got %d", opts.CacheSize))
	}

	switch strings.ToLower(opts.Backend) {
	case "", "builtin", "edlib", "go-edlib":
	default:
		return fmerrors.NewConfigError("options.backend", opts.Backend,
			errors.New("backend must be builtin or edlib"))
	}

	return nil
}

// setDefaults fills options left empty
func (v *Validator) setDefaults(r *Rules) {
	if r.Options.Backend == "" {
		r.Options.Backend = "builtin"
	}
	if r.Checks.Positives == nil {
		r.Checks.Positives = map[string]string{}
	}
	if r.Checks.Negatives == nil {
		r.Checks.Negatives = map[string]string{}
	}
}

// ValidateRules is a convenience function for quick validation
func ValidateRules(r *Rules) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(r)
}
