package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fmerrors "github.com/standardbeagle/fuzzymatch/pkg/errors"
)

const deHavillandTightener = `/(dh)c?-?(\d{0,2})-?(\d{0,4})/i`
const deHavillandIdentity = `/(dh)c?-?(\d{0,2})-?(\d{0,4})(?:.*?)(dash|\z)/i`

func TestParsePatternFlags(t *testing.T) {
	tests := []struct {
		spec          string
		caseSensitive bool
		text          string
		expected      bool
		message       string
	}{
		{"/boeing/", false, "BOEING 737", true, "case-insensitive by default"},
		{"/boeing/", true, "BOEING 737", false, "case-sensitive engine without i flag"},
		{"/boeing/i", true, "BOEING 737", true, "i flag wins over case-sensitive engine"},
		{"boeing", false, "Boeing", true, "bare pattern"},
		{"/a.b/", false, "a\nb", false, "dot does not match newline"},
		{"/a.b/m", false, "a\nb", true, "m flag lets dot match newline"},
		{`/dash|\z/`, false, "dhc8", true, "end of text anchor"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			re, err := ParsePattern(tt.spec, tt.caseSensitive)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, re.MatchString(tt.text))
		})
	}
}

func TestParsePatternRejectsMalformedSpecs(t *testing.T) {
	specs := []string{
		"/(unclosed/i",
		"/abc/x",
		"/abc/q",
		"/missing",
		"[z-a]",
	}

	for _, spec := range specs {
		_, err := ParsePattern(spec, false)
		assert.Error(t, err, "spec %q should be rejected", spec)
	}
}

func TestCompileReturnsInvalidPatternError(t *testing.T) {
	_, err := Compile(KindIdentity, "/(dh/i", false)
	require.Error(t, err)

	var patternErr *fmerrors.InvalidPatternError
	require.True(t, errors.As(err, &patternErr))
	assert.Equal(t, "identity", patternErr.Kind)
	assert.Equal(t, "/(dh/i", patternErr.Spec)
}

func TestTighten(t *testing.T) {
	rule, err := Compile(KindNormalizer, deHavillandTightener, false)
	require.NoError(t, err)

	tests := []struct {
		text     string
		expected string
	}{
		{"dehavilland dehavilland dhc8-400 dash-8", "dh8400"},
		{"de havilland canada dhc8400 dash 8", "dh8400"},
		{"bombardier dehavilland dhc8-200q dash-8", "dh8200"},
	}

	for _, tt := range tests {
		got, ok := rule.Tighten(tt.text)
		require.True(t, ok, "tightener should match %q", tt.text)
		assert.Equal(t, tt.expected, got)
	}

	_, ok := rule.Tighten("boeing 737")
	assert.False(t, ok)
}

func TestTightenWithoutGroupsUsesWholeMatch(t *testing.T) {
	rule, err := Compile(KindNormalizer, `/7\d7/`, false)
	require.NoError(t, err)

	got, ok := rule.Tighten("boeing 747-400")
	require.True(t, ok)
	assert.Equal(t, "747", got)
}

func TestStrip(t *testing.T) {
	rule, err := Compile(KindStopWord, `/\binc\b\.?/`, false)
	require.NoError(t, err)
	assert.Equal(t, "acme  widgets", rule.Strip("acme inc. widgets"))
}

func TestIdentityVerdicts(t *testing.T) {
	rule, err := Compile(KindIdentity, deHavillandIdentity, false)
	require.NoError(t, err)

	assert.Equal(t, Different, rule.Identical("abcdefg dh88 hijklmnop", "abcdefg dh89 hijklmnop"))
	assert.Equal(t, Identical, rule.Identical("de havilland dhc8-400 dash 8", "dehavilland dhc8-400 dash-8"))
	assert.Equal(t, Indeterminate, rule.Identical("abcdefg dh88 hijklmnop", "cessna 172"))
	assert.Equal(t, Indeterminate, rule.Identical("cessna 172", "piper cub"))
}

func TestSetIdentityOnlyComparesSamePattern(t *testing.T) {
	set, err := NewSet(Specs{Identities: []string{
		deHavillandIdentity,
		`/(cessna)(?:.*?)(citation)/i`,
		`/(cessna)(?:.*?)(\d\d\d)/i`,
	}}, false)
	require.NoError(t, err)

	verdict, rule := set.Identity("cessna d-333 citation v", "cessna d-333")
	assert.Equal(t, Identical, verdict)
	assert.Nil(t, rule)

	verdict, rule = set.Identity("cessna d-333 citation v", "cessna d-444")
	assert.Equal(t, Different, verdict)
	require.NotNil(t, rule)
	assert.Equal(t, `/(cessna)(?:.*?)(\d\d\d)/i`, rule.Spec())
}

func TestJoinable(t *testing.T) {
	set, err := NewSet(Specs{Groupings: []string{"/boeing/i", "/(douglas|mcdonnell)/i"}}, false)
	require.NoError(t, err)

	assert.True(t, set.Joinable("boeing 737", "boeing 747", false), "same group")
	assert.False(t, set.Joinable("boeing 737", "mcdonnell douglas md-80", false), "different groups")
	assert.True(t, set.Joinable("cessna 172", "piper cub", false), "neither grouped")
	assert.False(t, set.Joinable("cessna 172", "boeing 747", false), "only one grouped")
	assert.True(t, set.Joinable("douglas dc-9", "mcdonnell md-80", false), "same pattern, different captures")
}

func TestJoinableFirstGroupingDecides(t *testing.T) {
	set, err := NewSet(Specs{Groupings: []string{"/boeing/i", "/737/"}}, false)
	require.NoError(t, err)

	assert.True(t, set.Joinable("boeing 737", "737 freighter", false))
	assert.False(t, set.Joinable("boeing 737", "737 freighter", true))

	group, ok := set.GroupOf("boeing 737")
	require.True(t, ok)
	assert.Equal(t, "/boeing/i", group.Spec())
	assert.Len(t, set.GroupsOf("boeing 737"), 2)
}

func TestNewSetCollectsAllInvalidSpecs(t *testing.T) {
	_, err := NewSet(Specs{
		Normalizers: []string{"/(ok)/", "/(bad/"},
		Identities:  []string{"", "/x/z"},
	}, false)
	require.Error(t, err)

	var multi *fmerrors.MultiError
	require.True(t, errors.As(err, &multi))
	assert.Len(t, multi.Errors, 2)

	var patternErr *fmerrors.InvalidPatternError
	assert.True(t, errors.As(err, &patternErr))
}

func TestNewSetSkipsBlankSpecs(t *testing.T) {
	set, err := NewSet(Specs{StopWords: []string{"", "  ", "/the/"}}, false)
	require.NoError(t, err)
	assert.Len(t, set.StopWords, 1)
}

func TestSetClone(t *testing.T) {
	set, err := NewSet(Specs{Groupings: []string{"/boeing/i"}, Identities: []string{"/(\\d+)/"}}, false)
	require.NoError(t, err)

	clone := set.Clone()
	clone.Groupings[0] = nil
	clone.Identities = nil

	require.NotNil(t, set.Groupings[0])
	assert.Equal(t, "/boeing/i", set.Groupings[0].Spec())
	assert.Len(t, set.Identities, 1)
}

func TestSplitAlternatives(t *testing.T) {
	tests := []struct {
		spec     string
		expected []string
	}{
		{"/boeing|douglas/i", []string{"/boeing/i", "/douglas/i"}},
		{"/(bombardier|de ?havilland)/i", []string{"/bombardier/i", "/de ?havilland/i"}},
		{"/(?:airbus|boeing)/", []string{"/airbus/", "/boeing/"}},
		{"/(a)|(b)/", []string{"/(a)/", "/(b)/"}},
		{"x|y", []string{"x", "y"}},
		{"/[a|b]c/", []string{"/[a|b]c/"}},
		{"/(a|b)c/", []string{"/(a|b)c/"}},
		{`/a\|b/`, []string{`/a\|b/`}},
		{"/(?i:boeing|douglas)/", []string{"/(?i)boeing/", "/(?i)douglas/"}},
		{"/(?s-i:a.b|c)/", []string{"/(?s-i)a.b/", "/(?s-i)c/"}},
		{"/(?P<maker>boeing|douglas)/i", []string{"/boeing/i", "/douglas/i"}},
		{"/(?<maker>airbus|boeing)/", []string{"/airbus/", "/boeing/"}},
		{"/(?i)boeing|douglas/", []string{"/(?i)boeing/", "/(?i)douglas/"}},
		{"/(?i)/", []string{"/(?i)/"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := SplitAlternatives(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := SplitAlternatives("/(broken/")
	assert.Error(t, err)
}

func TestKindAndVerdictStrings(t *testing.T) {
	assert.Equal(t, "normalizer", KindNormalizer.String())
	assert.Equal(t, "stop_word", KindStopWord.String())
	assert.Equal(t, "grouping", KindGrouping.String())
	assert.Equal(t, "identity", KindIdentity.String())
	assert.Equal(t, "different", Different.String())
	assert.Equal(t, "indeterminate", Indeterminate.String())
}
