package fuzzymatch

import (
	"strings"

	fmerrors "github.com/standardbeagle/fuzzymatch/pkg/errors"
)

// Checker verifies lookups against known pairings while rules are tuned.
//
// Positives map a needle to the haystack text it must match; an empty text
// means it must match nothing. Negatives map a needle to a haystack text it
// must not match; an empty text means it must match nothing.
type Checker[R any] struct {
	engine    *Engine[R]
	positives map[string]string
	negatives map[string]string
}

// NewChecker creates a checker over an engine
func NewChecker[R any](engine *Engine[R], positives, negatives map[string]string) *Checker[R] {
	c := &Checker[R]{
		engine:    engine,
		positives: make(map[string]string, len(positives)),
		negatives: make(map[string]string, len(negatives)),
	}
	for needle, expected := range positives {
		c.positives[c.key(needle)] = expected
	}
	for needle, forbidden := range negatives {
		c.negatives[c.key(needle)] = forbidden
	}
	return c
}

// Check runs Find for needle and verifies the outcome. The found record is
// returned even when verification fails.
func (c *Checker[R]) Check(needle string) (Candidate[R], bool, error) {
	found, ok := c.engine.FindWithScore(needle)
	actual := ""
	if ok {
		actual = found.Text
	}
	return found, ok, c.Verify(needle, actual)
}

// CheckAll checks every needle and collects all failures in a MultiError
func (c *Checker[R]) CheckAll(needles []string) error {
	var errs []error
	for _, needle := range needles {
		if _, _, err := c.Check(needle); err != nil {
			errs = append(errs, err)
		}
	}
	return fmerrors.NewMultiError(errs).ErrorOrNil()
}

// Verify compares the haystack text matched for needle, empty for no match,
// with the known pairings
func (c *Checker[R]) Verify(needle, actual string) error {
	key := c.key(needle)

	if expected, ok := c.positives[key]; ok {
		if expected != "" && actual == "" {
			return fmerrors.NewCheckError(fmerrors.ErrorTypeFalseNegative, needle, expected, actual)
		}
		if !c.same(expected, actual) {
			return fmerrors.NewCheckError(fmerrors.ErrorTypeMismatch, needle, expected, actual)
		}
	}

	if forbidden, ok := c.negatives[key]; ok {
		if forbidden == "" && actual != "" {
			return fmerrors.NewCheckError(fmerrors.ErrorTypeFalsePositive, needle, forbidden, actual)
		}
		if forbidden != "" && c.same(forbidden, actual) {
			return fmerrors.NewCheckError(fmerrors.ErrorTypeFalsePositive, needle, forbidden, actual)
		}
	}

	return nil
}

func (c *Checker[R]) key(needle string) string {
	if c.engine.cfg.CaseSensitive {
		return needle
	}
	return strings.ToLower(needle)
}

func (c *Checker[R]) same(a, b string) bool {
	if c.engine.cfg.CaseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}
