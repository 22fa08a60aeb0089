package fuzzymatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fmerrors "github.com/standardbeagle/fuzzymatch/pkg/errors"
)

func stages(tr *Trace) []Stage {
	out := make([]Stage, len(tr.Steps))
	for i, s := range tr.Steps {
		out[i] = s.Stage
	}
	return out
}

func TestTraceUnavailableWithoutTracing(t *testing.T) {
	engine := newEngine(t, []string{"BOEING 737"}, Config[string]{})

	result, err := engine.Lookup("boeing 737")
	require.NoError(t, err)

	_, err = result.Trace()
	require.Error(t, err)
	var diagErr *fmerrors.NoDiagnosticsAvailableError
	require.True(t, errors.As(err, &diagErr))
	assert.Equal(t, "boeing 737", diagErr.Needle)
}

func TestTraceRecordsEveryStage(t *testing.T) {
	engine := newEngine(t, aircraftRight(dh8200Fake), Config[string]{
		Tighteners:              []string{deHavillandRule},
		Blockings:               []string{deHavillandBlock},
		Identities:              []string{`/(cessna)(?:.*?)(\d\d\d)/i`},
		MustMatchAtLeastOneWord: true,
	})

	result, err := engine.Lookup(dh8200Left, WithTrace())
	require.NoError(t, err)
	tr, err := result.Trace()
	require.NoError(t, err)

	assert.Equal(t, []Stage{
		StageOptions, StageNeedle, StageGrouping, StageWords, StageIdentity, StageRanking, StageDecision,
	}, stages(tr))

	assert.Equal(t, dh8200Left, tr.Needle)
	assert.Equal(t, []string{"de havilland canada dhc8200 dash 8", "dh8200dash"}, tr.Variants)
	assert.Contains(t, tr.Words, "dhc8200")

	grouping := tr.Steps[2]
	assert.Contains(t, grouping.Failed, dh89Right)
	assert.NotContains(t, grouping.Passed, dh8200Fake)
	assert.LessOrEqual(t, len(grouping.Passed), sampleSize)

	assert.True(t, tr.HasWinner)
	assert.Equal(t, dh8200Right, tr.Winner)
	assert.False(t, tr.Terminated)
}

func TestTraceTermination(t *testing.T) {
	engine := newEngine(t, []string{"BOEING 737"}, Config[string]{
		Groupings:         []string{"/boeing/i"},
		MustMatchGrouping: true,
	})

	result, err := engine.Lookup("airbus a320", WithTrace(), WithMode(ModeAll))
	require.NoError(t, err)
	assert.False(t, result.Found())

	tr, err := result.Trace()
	require.NoError(t, err)
	assert.True(t, tr.Terminated)
	assert.False(t, tr.HasWinner)
	assert.Equal(t, []Stage{StageOptions, StageNeedle, StageGrouping, StageDecision}, stages(tr))
}

func TestTraceIsCallLocal(t *testing.T) {
	engine := newEngine(t, []string{"BOEING 737", "AIRBUS A320"}, Config[string]{})

	first, err := engine.Lookup("boeing 737", WithTrace())
	require.NoError(t, err)
	second, err := engine.Lookup("airbus a320", WithTrace())
	require.NoError(t, err)

	tr1, err := first.Trace()
	require.NoError(t, err)
	tr2, err := second.Trace()
	require.NoError(t, err)

	assert.Equal(t, "BOEING 737", tr1.Winner)
	assert.Equal(t, "AIRBUS A320", tr2.Winner)
}

func TestExplain(t *testing.T) {
	engine := newEngine(t, []string{dh8400Right}, Config[string]{Tighteners: []string{deHavillandKey}})

	out := engine.Explain(dh8400Left)
	assert.Contains(t, out, `Needle: "DE HAVILLAND CANADA DHC8400 Dash 8"`)
	assert.Contains(t, out, `"dh8400"`)
	assert.Contains(t, out, "[ranking]")
	assert.Contains(t, out, `Winner: "DEHAVILLAND DEHAVILLAND DHC8-400 DASH-8" (dice=1.0000 edit=1.0000)`)
}

func TestExplainNoWinner(t *testing.T) {
	engine := newEngine(t, []string{"XYZ"}, Config[string]{})

	out := engine.Explain("abc")
	assert.Contains(t, out, "does not exceed the threshold")
	assert.Contains(t, out, "Winner: none")
}

func TestRenderSamplesAreQuoted(t *testing.T) {
	tr := &Trace{
		Needle:   "n",
		Variants: []string{"n"},
		Steps: []Step{{
			Stage:       StageWords,
			Description: "words",
			Survivors:   1,
			Passed:      []string{"a"},
			Failed:      []string{"b"},
		}},
	}

	out := tr.Render()
	assert.Contains(t, out, "1. [words] words")
	assert.Contains(t, out, "Survivors: 1")
	assert.Contains(t, out, `Passed (first 3): "a"`)
	assert.Contains(t, out, `Failed (first 3): "b"`)
}
