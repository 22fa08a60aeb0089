package fuzzymatch

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/fuzzymatch/internal/variant"
	"github.com/standardbeagle/fuzzymatch/pkg/similarity"
)

// sampleSize is the number of passed and failed records kept per step
const sampleSize = 3

// Stage names one step of a traced lookup
type Stage string

const (
	StageOptions  Stage = "options"
	StageNeedle   Stage = "needle"
	StageGrouping Stage = "grouping"
	StageWords    Stage = "words"
	StageIdentity Stage = "identity"
	StageRanking  Stage = "ranking"
	StageDecision Stage = "decision"
)

// Step is one recorded pipeline decision
type Step struct {
	Stage       Stage
	Description string

	// Survivors is the number of candidates left after the step
	Survivors int

	Passed []string
	Failed []string
}

// Trace is the diagnostic record of one lookup. It belongs to the Result it
// was returned with and is never shared between lookups.
type Trace struct {
	Needle   string
	Variants []string
	Words    []string
	Steps    []Step

	Winner    string
	Score     similarity.Score
	HasWinner bool

	// Terminated is set when a filter stopped the search before ranking
	Terminated bool
}

func newTrace(needle string) *Trace {
	return &Trace{Needle: needle}
}

// All recorders are no-ops on a nil trace so untraced lookups skip them.

func (t *Trace) add(step Step) {
	if t == nil {
		return
	}
	t.Steps = append(t.Steps, step)
}

func (t *Trace) recordOptions(desc string, haystack int) {
	if t == nil {
		return
	}
	t.add(Step{Stage: StageOptions, Description: desc, Survivors: haystack})
}

func (t *Trace) recordNeedle(v *variant.Variant, haystack int) {
	if t == nil {
		return
	}
	for _, r := range v.Rewrites {
		t.Variants = append(t.Variants, r.Text)
	}
	t.Words = v.WordList()
	t.add(Step{
		Stage:       StageNeedle,
		Description: fmt.Sprintf("The needle's %d variants were enumerated", len(v.Rewrites)),
		Survivors:   haystack,
		Passed:      sample(t.Variants),
	})
}

func (t *Trace) terminate(stage Stage, desc string) {
	if t == nil {
		return
	}
	t.Terminated = true
	t.add(Step{Stage: stage, Description: desc})
}

func (t *Trace) recordWinner(text string, score similarity.Score) {
	if t == nil {
		return
	}
	t.HasWinner = true
	t.Winner = text
	t.Score = score
}

// Render formats the trace as a readable timeline
func (t *Trace) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Needle: %q\n", t.Needle)
	fmt.Fprintf(&b, "Variants: %s\n", quoteAll(t.Variants))
	fmt.Fprintf(&b, "Words: %s\n", strings.Join(t.Words, ", "))

	for i, step := range t.Steps {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, step.Stage, step.Description)
		if step.Stage != StageOptions && step.Stage != StageNeedle {
			fmt.Fprintf(&b, "\tSurvivors: %d\n", step.Survivors)
		}
		if len(step.Passed) > 0 {
			fmt.Fprintf(&b, "\tPassed (first %d): %s\n", sampleSize, quoteAll(step.Passed))
		}
		if len(step.Failed) > 0 {
			fmt.Fprintf(&b, "\tFailed (first %d): %s\n", sampleSize, quoteAll(step.Failed))
		}
	}

	if t.HasWinner {
		fmt.Fprintf(&b, "Winner: %q (%s)\n", t.Winner, t.Score)
	} else {
		b.WriteString("Winner: none\n")
	}

	return b.String()
}

func sample(items []string) []string {
	if len(items) > sampleSize {
		items = items[:sampleSize]
	}
	return append([]string(nil), items...)
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
