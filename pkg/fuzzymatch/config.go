package fuzzymatch

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	fmerrors "github.com/standardbeagle/fuzzymatch/pkg/errors"
	"github.com/standardbeagle/fuzzymatch/pkg/rules"
	"github.com/standardbeagle/fuzzymatch/pkg/similarity"
)

// Config holds the rules and options of an engine. Rules are fixed once the
// engine is built.
type Config[R any] struct {
	// Reader extracts the comparable text of a record. Defaults to DefaultReader.
	Reader func(R) string

	// CaseSensitive disables case folding of texts and patterns. A pattern
	// with the i flag still ignores case.
	CaseSensitive bool

	// Normalizers rewrite texts into tightened forms built from their captures.
	// Tighteners is an alias; both lists are used, Normalizers first.
	Normalizers []string
	Tighteners  []string

	// StopWords are removed from every text before comparison
	StopWords []string

	// Groupings restrict candidates to records in the needle's group.
	// Blockings is an alias; both lists are used, Groupings first.
	Groupings []string
	Blockings []string

	// ExpandGroupings splits grouping specs with a top level alternation into
	// one grouping per alternative
	ExpandGroupings bool

	// Identities reject candidates whose captures differ from the needle's
	Identities []string

	MustMatchGrouping       bool
	MustMatchAtLeastOneWord bool
	FirstGroupingDecides    bool

	// Threshold is the bigram coefficient a candidate must exceed to be
	// returned. Must be in [0, 1).
	Threshold float64

	// Backend computes edit distances. Nil uses the built-in implementation.
	Backend similarity.Backend

	// StemWords reduces words to their Porter2 stem before word comparison
	StemWords bool

	// FoldAccents strips diacritics before comparison
	FoldAccents bool

	// CacheSize bounds the needle variant cache. Zero uses a default.
	CacheSize int

	Logger *zap.SugaredLogger
}

// DefaultReader reads strings as themselves, string and []any slices by their
// first element, fmt.Stringer values through String and anything else through
// fmt.Sprint
func DefaultReader[R any](record R) string {
	switch v := any(record).(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	case []any:
		if len(v) == 0 {
			return ""
		}
		return DefaultReader(v[0])
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Validate reports configuration values the engine cannot work with
func (c *Config[R]) Validate() error {
	if math.IsNaN(c.Threshold) || c.Threshold < 0 || c.Threshold >= 1 {
		return fmerrors.NewConfigError("threshold", fmt.Sprint(c.Threshold),
			fmt.Errorf("must be at least 0 and below 1"))
	}
	if c.CacheSize < 0 {
		return fmerrors.NewConfigError("cache_size", fmt.Sprint(c.CacheSize),
			fmt.Errorf("must not be negative"))
	}
	return nil
}

// specs collects the pattern specs of every rule kind, merging aliases
func (c *Config[R]) specs() (rules.Specs, error) {
	specs := rules.Specs{
		Normalizers: slices.Concat(c.Normalizers, c.Tighteners),
		StopWords:   slices.Clone(c.StopWords),
		Groupings:   slices.Concat(c.Groupings, c.Blockings),
		Identities:  slices.Clone(c.Identities),
	}

	if !c.ExpandGroupings {
		return specs, nil
	}

	var expanded []string
	for _, spec := range specs.Groupings {
		alternatives, err := rules.SplitAlternatives(spec)
		if err != nil {
			return specs, fmerrors.NewInvalidPatternError(rules.KindGrouping.String(), spec, err)
		}
		expanded = append(expanded, alternatives...)
	}
	specs.Groupings = expanded
	return specs, nil
}
