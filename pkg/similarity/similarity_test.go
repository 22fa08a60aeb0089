package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePairs = [][2]string{
	{"night", "nacht"},
	{"france", "french"},
	{"kitten", "sitting"},
	{"de havilland canada dhc8400 dash 8", "dehavilland dehavilland dhc8-400 dash-8"},
	{"abcdefg dh88 hijklmnop", "abcdefg dh89 hijklmnop"},
	{"boeing 737", "boeing boeing 737-100/200"},
	{"", "abc"},
	{"a", "b"},
	{"aa", "aaaa"},
	{"zürich", "zurich"},
}

func TestBigramCoefficientKnownValues(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
		message  string
	}{
		{"night", "nacht", 0.25, "one shared pair out of eight"},
		{"france", "french", 0.4, "two shared pairs out of ten"},
		{"aa", "aaaa", 0.5, "matched pairs are consumed"},
		{"a", "b", 0.0, "single characters have no pairs"},
		{"a", "a", 1.0, "identical single characters"},
		{"a b", "a c", 0.0, "pairs containing whitespace are ignored"},
		{"", "", 1.0, "identical empty strings"},
		{"ab", "", 0.0, "empty against non-empty"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.InDelta(t, tt.expected, BigramCoefficient(tt.a, tt.b), 1e-9)
		})
	}
}

func TestEditSimilarityKnownValues(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
		message  string
	}{
		{"kitten", "sitting", 1.0 - 3.0/7.0, "classic example"},
		{"abc", "abd", 1.0 - 1.0/3.0, "single substitution"},
		{"", "abc", 0.0, "empty string"},
		{"abc", "", 0.0, "empty string reversed"},
		{"zürich", "zurich", 1.0 - 1.0/6.0, "runes, not bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.InDelta(t, tt.expected, EditSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestIdenticalStringsScoreOne(t *testing.T) {
	for _, pair := range samplePairs {
		for _, s := range pair {
			assert.Equal(t, 1.0, BigramCoefficient(s, s), "bigram(%q, %q)", s, s)
			assert.Equal(t, 1.0, EditSimilarity(s, s), "edit(%q, %q)", s, s)
		}
	}
}

func TestScoresAreSymmetric(t *testing.T) {
	for _, pair := range samplePairs {
		a, b := pair[0], pair[1]
		assert.Equal(t, BigramCoefficient(a, b), BigramCoefficient(b, a), "bigram symmetry for %q/%q", a, b)
		assert.Equal(t, EditSimilarity(a, b), EditSimilarity(b, a), "edit symmetry for %q/%q", a, b)
	}
}

func TestSingleCharactersNeverShareBigrams(t *testing.T) {
	letters := []string{"a", "b", "7", "z", "é"}
	for _, s := range letters {
		for _, u := range letters {
			if s == u {
				continue
			}
			assert.Equal(t, 0.0, BigramCoefficient(s, u), "bigram(%q, %q)", s, u)
		}
	}
}

func TestEdlibBackendMatchesBuiltin(t *testing.T) {
	builtin := NewScorer(Builtin{})
	edlib := NewScorer(Edlib{})

	for _, pair := range samplePairs {
		a, b := pair[0], pair[1]
		assert.Equal(t, Builtin{}.Levenshtein(a, b), Edlib{}.Levenshtein(a, b), "distance for %q/%q", a, b)

		want := builtin.Score(a, b)
		got := edlib.Score(a, b)
		assert.InDelta(t, want.Dice, got.Dice, 1e-9)
		assert.InDelta(t, want.Edit, got.Edit, 1e-9)
	}
}

func TestBackendByName(t *testing.T) {
	assert.Equal(t, "go-edlib", BackendByName("edlib").Name())
	assert.Equal(t, "builtin", BackendByName("").Name())
	assert.Equal(t, "builtin", BackendByName("native-missing").Name())
	assert.Equal(t, "builtin", NewScorer(nil).Backend().Name())
}

func TestScoreCompare(t *testing.T) {
	high := Score{Dice: 0.8, Edit: 0.1}
	low := Score{Dice: 0.7, Edit: 0.9}
	tieBreak := Score{Dice: 0.8, Edit: 0.2}

	assert.Equal(t, 1, high.Compare(low), "dice dominates edit")
	assert.Equal(t, -1, low.Compare(high))
	assert.Equal(t, 1, tieBreak.Compare(high), "edit breaks dice ties")
	assert.Equal(t, 0, high.Compare(high))
}

func TestScorerFoldsCase(t *testing.T) {
	score := NewScorer(nil).Score("DHC8-400", "dhc8-400")
	assert.Equal(t, Score{Dice: 1.0, Edit: 1.0}, score)
}

func TestPairUsesPrefixOnlyWhenBothTightened(t *testing.T) {
	scorer := NewScorer(nil)

	tight := scorer.Pair(Rewrite{Text: "720", Tightened: true}, Rewrite{Text: "720000", Tightened: true})
	assert.Equal(t, 3, tight.Prefix)
	assert.Equal(t, 1.0, tight.Score.Dice)

	loose := scorer.Pair(Rewrite{Text: "720"}, Rewrite{Text: "720000", Tightened: true})
	assert.Equal(t, 0, loose.Prefix)
	assert.Less(t, loose.Score.Dice, 1.0)
}

func TestBestSearchesAllRewrites(t *testing.T) {
	scorer := NewScorer(nil)

	needle := []Rewrite{{Text: "boeing 720"}, {Text: "720", Tightened: true}}
	straw := []Rewrite{{Text: "boeing boeing 720-000"}, {Text: "720000", Tightened: true}}

	best := scorer.Best(needle, straw)
	require.Equal(t, "720", best.Needle.Text)
	assert.Equal(t, "720000", best.Straw.Text)
	assert.Equal(t, 3, best.Prefix)
	assert.Equal(t, Score{Dice: 1.0, Edit: 1.0}, best.Score)
}

func TestBestPrefersSmallerPrefixOnTie(t *testing.T) {
	scorer := NewScorer(nil)

	needle := []Rewrite{{Text: "abcd", Tightened: true}}
	straw := []Rewrite{{Text: "abcdef", Tightened: true}, {Text: "ab", Tightened: true}}

	best := scorer.Best(needle, straw)
	assert.Equal(t, "ab", best.Straw.Text)
	assert.Equal(t, 2, best.Prefix)
}

func TestBestKeepsFirstPairingOnFullTie(t *testing.T) {
	scorer := NewScorer(nil)

	needle := []Rewrite{{Text: "zzz"}}
	straw := []Rewrite{{Text: "abc"}, {Text: "abd"}}

	for i := 0; i < 10; i++ {
		best := scorer.Best(needle, straw)
		assert.Equal(t, "abc", best.Straw.Text)
	}
}

func BenchmarkScore(b *testing.B) {
	scorer := NewScorer(nil)
	for i := 0; i < b.N; i++ {
		_ = scorer.Score("de havilland canada dhc8400 dash 8", "dehavilland dehavilland dhc8-400 dash-8")
	}
}
