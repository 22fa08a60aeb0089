// Package rules compiles the declarative rules a domain expert supplies to the
// matching engine.
//
// Every rule wraps one compiled pattern. What a match means depends on the
// rule's Kind:
//
//   - Normalizer (tightener): rewrites text into the concatenation of its
//     non-empty captures, producing an extra comparable variant.
//   - StopWord: removes every match from the text before tokenizing.
//   - Grouping (blocking): places text in the group identified by the rule
//     itself. Only records in the same group as the needle compete.
//   - Identity: when two texts both match, their captures must be equal or
//     the pair is a certain mismatch.
package rules

import (
	"fmt"
	"regexp"
	"slices"

	fmerrors "github.com/standardbeagle/fuzzymatch/pkg/errors"
)

// Kind identifies how a rule interprets its matches
type Kind int

const (
	KindNormalizer Kind = iota
	KindStopWord
	KindGrouping
	KindIdentity
)

// String returns the configuration name of the kind
func (k Kind) String() string {
	switch k {
	case KindNormalizer:
		return "normalizer"
	case KindStopWord:
		return "stop_word"
	case KindGrouping:
		return "grouping"
	case KindIdentity:
		return "identity"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Verdict is the answer of an identity rule for a pair of texts
type Verdict int

const (
	// Indeterminate means at least one text did not match, so no constraint fired
	Indeterminate Verdict = iota
	Identical
	Different
)

// String returns a human-readable verdict
func (v Verdict) String() string {
	switch v {
	case Identical:
		return "identical"
	case Different:
		return "different"
	default:
		return "indeterminate"
	}
}

// Rule is an immutable compiled pattern. The Set list holding it decides its Kind.
type Rule struct {
	spec string
	re   *regexp.Regexp
}

// Compile builds a rule of the given kind from a pattern spec
func Compile(kind Kind, spec string, caseSensitive bool) (*Rule, error) {
	re, err := ParsePattern(spec, caseSensitive)
	if err != nil {
		return nil, fmerrors.NewInvalidPatternError(kind.String(), spec, err)
	}
	return &Rule{spec: spec, re: re}, nil
}

// Spec returns the pattern spec the rule was compiled from
func (r *Rule) Spec() string { return r.spec }

// String returns the spec, for traces
func (r *Rule) String() string { return r.spec }

// Matches reports whether the pattern matches text
func (r *Rule) Matches(text string) bool {
	return r.re.MatchString(text)
}

// Match returns the captured groups of the first match. Unmatched optional
// groups are returned as empty strings.
func (r *Rule) Match(text string) ([]string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

// Tighten returns the concatenation of the non-empty captures. A pattern
// without groups yields the whole match.
func (r *Rule) Tighten(text string) (string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if len(m) == 1 {
		return m[0], true
	}

	var out []byte
	for _, capture := range m[1:] {
		out = append(out, capture...)
	}
	return string(out), true
}

// Strip removes every match of the pattern from text
func (r *Rule) Strip(text string) string {
	return r.re.ReplaceAllString(text, "")
}

// Identical compares the captures of two texts that both match the rule
func (r *Rule) Identical(a, b string) Verdict {
	capsA, okA := r.Match(a)
	if !okA {
		return Indeterminate
	}
	capsB, okB := r.Match(b)
	if !okB {
		return Indeterminate
	}
	if slices.Equal(capsA, capsB) {
		return Identical
	}
	return Different
}
