package fuzzymatch

import (
	"cmp"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/standardbeagle/fuzzymatch/internal/variant"
	"github.com/standardbeagle/fuzzymatch/pkg/similarity"
)

// Mode selects which ranked candidates a lookup returns
type Mode int

const (
	// ModeSingle returns the top candidate if it clears the threshold
	ModeSingle Mode = iota
	// ModeAll returns every candidate clearing the threshold
	ModeAll
	// ModeTied returns the candidates sharing the best score
	ModeTied
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeAll:
		return "all"
	case ModeTied:
		return "tied"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Candidate is a scored haystack record
type Candidate[R any] struct {
	Record R

	// Index is the record's position in the haystack
	Index int

	// Text is the record text as read, before folding
	Text string

	Score similarity.Score

	// Match is the rewrite pairing that produced Score
	Match similarity.Match
}

// rank scores every candidate and orders them best first. Full ties prefer
// the shorter original text, then haystack order.
func (e *Engine[R]) rank(needle *variant.Variant, idx []int) []Candidate[R] {
	ranked := make([]Candidate[R], 0, len(idx))
	for _, i := range idx {
		straw := e.haystack[i]
		m := e.scorer.Best(needle.Rewrites, straw.Rewrites)
		ranked = append(ranked, Candidate[R]{
			Record: e.records[i],
			Index:  i,
			Text:   straw.Original,
			Score:  m.Score,
			Match:  m,
		})
	}

	slices.SortFunc(ranked, compareCandidates[R])
	return ranked
}

func compareCandidates[R any](a, b Candidate[R]) int {
	if c := b.Score.Compare(a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(utf8.RuneCountInString(a.Text), utf8.RuneCountInString(b.Text)); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

// clears reports whether a score exceeds the threshold
func (e *Engine[R]) clears(s similarity.Score) bool {
	return s.Dice > e.cfg.Threshold
}

// decide picks the returned candidates from a ranked list
func (e *Engine[R]) decide(ranked []Candidate[R], mode Mode) []Candidate[R] {
	if len(ranked) == 0 || !e.clears(ranked[0].Score) {
		return nil
	}

	switch mode {
	case ModeAll:
		// Ranked by Dice first, so clearing candidates form a prefix
		end := 0
		for end < len(ranked) && e.clears(ranked[end].Score) {
			end++
		}
		return ranked[:end]
	case ModeTied:
		end := 1
		for end < len(ranked) && ranked[end].Score.Compare(ranked[0].Score) == 0 {
			end++
		}
		return ranked[:end]
	default:
		return ranked[:1]
	}
}
