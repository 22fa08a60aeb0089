package similarity

import (
	"strings"
	"unicode/utf8"
)

// Rewrite is one comparable form of a record's text: either the original
// text or a tightened rewrite produced by a normalizer.
type Rewrite struct {
	Text      string
	Tightened bool
}

// Match is the best-scoring pairing of a needle rewrite with a haystack rewrite
type Match struct {
	Needle Rewrite
	Straw  Rewrite

	// Prefix is the common prefix length both sides were truncated to before
	// scoring. It is zero unless both rewrites are tightened.
	Prefix int

	Score Score
}

// Scorer computes scores with a configurable edit distance backend
type Scorer struct {
	backend Backend
}

// NewScorer creates a scorer. A nil backend falls back to the built-in one.
func NewScorer(backend Backend) *Scorer {
	if backend == nil {
		backend = Builtin{}
	}
	return &Scorer{backend: backend}
}

// Backend returns the edit distance backend in use
func (s *Scorer) Backend() Backend {
	return s.backend
}

// Score compares two strings case-insensitively
func (s *Scorer) Score(a, b string) Score {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return Score{
		Dice: BigramCoefficient(a, b),
		Edit: editSimilarity(a, b, s.backend),
	}
}

// Pair scores one needle rewrite against one haystack rewrite. When both are
// tightened they are compared on their common prefix.
func (s *Scorer) Pair(needle, straw Rewrite) Match {
	m := Match{Needle: needle, Straw: straw}

	a, b := needle.Text, straw.Text
	if needle.Tightened && straw.Tightened {
		m.Prefix = min(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
		a = truncate(a, m.Prefix)
		b = truncate(b, m.Prefix)
	}

	m.Score = s.Score(a, b)
	return m
}

// Best searches the cartesian product of needle and haystack rewrites for the
// pairing with the highest score. Ties on both score parts prefer the smaller
// prefix when both pairings have one; remaining ties keep the first pairing in
// enumeration order (needle rewrites outer, haystack rewrites inner).
func (s *Scorer) Best(needle, straw []Rewrite) Match {
	var best Match
	found := false

	for _, n := range needle {
		for _, h := range straw {
			candidate := s.Pair(n, h)
			if !found || better(candidate, best) {
				best = candidate
				found = true
			}
		}
	}

	return best
}

// better reports whether a strictly beats b
func better(a, b Match) bool {
	if cmp := a.Score.Compare(b.Score); cmp != 0 {
		return cmp > 0
	}
	if a.Prefix > 0 && b.Prefix > 0 && a.Prefix != b.Prefix {
		return a.Prefix < b.Prefix
	}
	return false
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
