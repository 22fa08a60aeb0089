// Package similarity scores pairs of strings for the matching engine.
//
// A Score has two parts: a bigram (Dice) coefficient over adjacent-character
// pairs and an edit similarity derived from Levenshtein distance. Scores are
// ordered by the bigram coefficient first and the edit similarity second.
//
// Both parts have a pure Go implementation here. Edit distance can optionally
// be delegated to an external Backend such as go-edlib; results are the same.
package similarity

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Score is the two-part similarity between two strings
type Score struct {
	Dice float64 // bigram coefficient, 0.0-1.0
	Edit float64 // normalized edit similarity, 0.0-1.0
}

// Compare orders scores by Dice then Edit. It returns -1, 0 or +1.
func (s Score) Compare(other Score) int {
	switch {
	case s.Dice > other.Dice:
		return 1
	case s.Dice < other.Dice:
		return -1
	case s.Edit > other.Edit:
		return 1
	case s.Edit < other.Edit:
		return -1
	default:
		return 0
	}
}

// String returns a human-readable representation of a Score
func (s Score) String() string {
	return fmt.Sprintf("dice=%.4f edit=%.4f", s.Dice, s.Edit)
}

// BigramCoefficient returns the Dice coefficient of the adjacent-character
// pairs of a and b. Pairs containing whitespace are ignored and each matched
// pair is consumed so it cannot match twice.
func BigramCoefficient(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if utf8.RuneCountInString(a) == 1 && utf8.RuneCountInString(b) == 1 {
		return 0.0
	}

	pairsA := bigrams(a)
	pairsB := bigrams(b)
	union := len(pairsA) + len(pairsB)
	if union == 0 {
		return 0.0
	}

	remaining := make(map[[2]rune]int, len(pairsB))
	for _, p := range pairsB {
		remaining[p]++
	}

	intersection := 0
	for _, p := range pairsA {
		if remaining[p] > 0 {
			remaining[p]--
			intersection++
		}
	}

	return 2.0 * float64(intersection) / float64(union)
}

// bigrams extracts adjacent rune pairs, skipping pairs with whitespace
func bigrams(s string) [][2]rune {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}

	pairs := make([][2]rune, 0, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		if unicode.IsSpace(runes[i]) || unicode.IsSpace(runes[i+1]) {
			continue
		}
		pairs = append(pairs, [2]rune{runes[i], runes[i+1]})
	}
	return pairs
}

// EditSimilarity returns 1 - distance/max(len(a), len(b)) using the built-in
// Levenshtein implementation.
func EditSimilarity(a, b string) float64 {
	return editSimilarity(a, b, Builtin{})
}

func editSimilarity(a, b string, backend Backend) float64 {
	if a == b {
		return 1.0
	}

	lenA := utf8.RuneCountInString(a)
	lenB := utf8.RuneCountInString(b)
	if lenA == 0 || lenB == 0 {
		return 0.0
	}

	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}

	distance := backend.Levenshtein(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshtein computes classic edit distance over runes with unit costs
func levenshtein(a, b string) int {
	s := []rune(a)
	t := []rune(b)
	if len(s) == 0 {
		return len(t)
	}
	if len(t) == 0 {
		return len(s)
	}

	prev := make([]int, len(t)+1)
	curr := make([]int, len(t)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s); i++ {
		curr[0] = i
		for j := 1; j <= len(t); j++ {
			cost := 1
			if s[i-1] == t[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(t)]
}
