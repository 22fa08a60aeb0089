package rules

import (
	"slices"
	"strings"

	fmerrors "github.com/standardbeagle/fuzzymatch/pkg/errors"
)

// Specs lists the raw pattern specs for every rule kind
type Specs struct {
	Normalizers []string
	StopWords   []string
	Groupings   []string
	Identities  []string
}

// Set holds the compiled rules of one engine. It is read-only after NewSet.
type Set struct {
	Normalizers []*Rule
	StopWords   []*Rule
	Groupings   []*Rule
	Identities  []*Rule
}

// NewSet compiles every spec. Blank specs are skipped. All invalid specs are
// reported together in a MultiError of InvalidPatternError values.
func NewSet(specs Specs, caseSensitive bool) (*Set, error) {
	var errs []error
	compileAll := func(kind Kind, raw []string) []*Rule {
		out := make([]*Rule, 0, len(raw))
		for _, spec := range raw {
			if strings.TrimSpace(spec) == "" {
				continue
			}
			rule, err := Compile(kind, spec, caseSensitive)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			out = append(out, rule)
		}
		return out
	}

	set := &Set{
		Normalizers: compileAll(KindNormalizer, specs.Normalizers),
		StopWords:   compileAll(KindStopWord, specs.StopWords),
		Groupings:   compileAll(KindGrouping, specs.Groupings),
		Identities:  compileAll(KindIdentity, specs.Identities),
	}

	if len(errs) == 1 {
		return nil, errs[0]
	}
	if len(errs) > 1 {
		return nil, fmerrors.NewMultiError(errs)
	}
	return set, nil
}

// Clone returns a copy of the set whose lists can be changed independently.
// Rules themselves are immutable and shared.
func (s *Set) Clone() *Set {
	return &Set{
		Normalizers: slices.Clone(s.Normalizers),
		StopWords:   slices.Clone(s.StopWords),
		Groupings:   slices.Clone(s.Groupings),
		Identities:  slices.Clone(s.Identities),
	}
}

// GroupOf returns the first grouping rule matching text
func (s *Set) GroupOf(text string) (*Rule, bool) {
	for _, g := range s.Groupings {
		if g.Matches(text) {
			return g, true
		}
	}
	return nil, false
}

// GroupsOf returns every grouping rule matching text, in configuration order
func (s *Set) GroupsOf(text string) []*Rule {
	var out []*Rule
	for _, g := range s.Groupings {
		if g.Matches(text) {
			out = append(out, g)
		}
	}
	return out
}

// Joinable reports whether two texts may be compared. They are joinable when
// neither matches any grouping, or when both match the same grouping rule.
// Group membership is decided by rule identity, not by captured values.
// With firstDecides only the first grouping matching a is considered.
func (s *Set) Joinable(a, b string, firstDecides bool) bool {
	groupsA := s.GroupsOf(a)
	if len(groupsA) == 0 {
		_, inGroup := s.GroupOf(b)
		return !inGroup
	}
	if firstDecides {
		groupsA = groupsA[:1]
	}
	for _, g := range groupsA {
		if g.Matches(b) {
			return true
		}
	}
	return false
}

// Identity runs every identity rule over a pair. It returns Different and the
// offending rule as soon as one rule proves the texts differ, Identical if at
// least one rule fired and all agreed, and Indeterminate otherwise.
func (s *Set) Identity(a, b string) (Verdict, *Rule) {
	verdict := Indeterminate
	for _, rule := range s.Identities {
		switch rule.Identical(a, b) {
		case Different:
			return Different, rule
		case Identical:
			verdict = Identical
		}
	}
	return verdict, nil
}
