package fuzzymatch

import (
	"fmt"

	"github.com/standardbeagle/fuzzymatch/internal/variant"
	"github.com/standardbeagle/fuzzymatch/pkg/rules"
)

// filter restricts the haystack to the candidates that may compete for the
// needle. Stages run in a fixed order, each on the survivors of the previous
// one. It returns false when a strict stage ended the search.
func (e *Engine[R]) filter(needle *variant.Variant, tr *Trace) ([]int, bool) {
	candidates := make([]int, len(e.haystack))
	for i := range candidates {
		candidates[i] = i
	}

	candidates, ok := e.filterGroupings(needle, candidates, tr)
	if !ok {
		return nil, false
	}

	candidates, ok = e.filterWords(needle, candidates, tr)
	if !ok {
		return nil, false
	}

	return e.filterIdentities(needle, candidates, tr), true
}

// filterGroupings keeps records in the needle's group. A needle outside every
// group leaves the candidates untouched unless a group is required. When no
// record shares the needle's group the stage falls back to its input, again
// unless a group is required.
func (e *Engine[R]) filterGroupings(needle *variant.Variant, in []int, tr *Trace) ([]int, bool) {
	set := e.rules
	if len(set.Groupings) == 0 && !e.cfg.MustMatchGrouping {
		return in, true
	}

	if _, grouped := set.GroupOf(needle.Text); !grouped {
		if e.cfg.MustMatchGrouping {
			tr.terminate(StageGrouping, fmt.Sprintf(
				"The needle didn't match any of the %d groupings, which was a requirement. Groupings (first %d): %s",
				len(set.Groupings), sampleSize, quoteAll(ruleSpecs(set.Groupings))))
			return nil, false
		}
		tr.add(Step{
			Stage:       StageGrouping,
			Description: "The needle didn't match any grouping, so grouping was skipped",
			Survivors:   len(in),
		})
		return in, true
	}

	passed, failed := e.partition(in, func(straw *variant.Variant) bool {
		return set.Joinable(needle.Text, straw.Text, e.cfg.FirstGroupingDecides)
	})

	if len(passed) == 0 {
		if e.cfg.MustMatchGrouping {
			tr.terminate(StageGrouping,
				"No record was in the same group as the needle, which was a requirement, so the search stopped")
			return nil, false
		}
		tr.add(Step{
			Stage:       StageGrouping,
			Description: "No record was in the same group as the needle, so grouping was skipped",
			Survivors:   len(in),
			Failed:      e.sampleTexts(failed),
		})
		return in, true
	}

	tr.add(Step{
		Stage:       StageGrouping,
		Description: "The competition was reduced to records in the same group as the needle",
		Survivors:   len(passed),
		Passed:      e.sampleTexts(passed),
		Failed:      e.sampleTexts(failed),
	})
	return passed, true
}

// filterWords keeps records sharing at least one word with the needle
func (e *Engine[R]) filterWords(needle *variant.Variant, in []int, tr *Trace) ([]int, bool) {
	if !e.cfg.MustMatchAtLeastOneWord {
		return in, true
	}

	passed, failed := e.partition(in, needle.SharesWord)
	if len(passed) == 0 {
		tr.terminate(StageWords,
			"No record shared a word with the needle, which was a requirement, so the search stopped")
		return nil, false
	}

	tr.add(Step{
		Stage:       StageWords,
		Description: "The competition was reduced to records sharing at least one word with the needle",
		Survivors:   len(passed),
		Passed:      e.sampleTexts(passed),
		Failed:      e.sampleTexts(failed),
	})
	return passed, true
}

// filterIdentities drops records an identity rule proves different from the
// needle. A proven difference is never overridden, even if nothing survives.
func (e *Engine[R]) filterIdentities(needle *variant.Variant, in []int, tr *Trace) []int {
	set := e.rules
	if len(set.Identities) == 0 {
		return in
	}

	passed, failed := e.partition(in, func(straw *variant.Variant) bool {
		verdict, _ := set.Identity(needle.Text, straw.Text)
		return verdict != rules.Different
	})

	tr.add(Step{
		Stage:       StageIdentity,
		Description: "The competition was reduced to records that are not certainly different from the needle",
		Survivors:   len(passed),
		Passed:      e.sampleTexts(passed),
		Failed:      e.sampleTexts(failed),
	})
	return passed
}

func (e *Engine[R]) partition(in []int, keep func(*variant.Variant) bool) (passed, failed []int) {
	for _, i := range in {
		if keep(e.haystack[i]) {
			passed = append(passed, i)
		} else {
			failed = append(failed, i)
		}
	}
	return passed, failed
}

func (e *Engine[R]) sampleTexts(idx []int) []string {
	if len(idx) > sampleSize {
		idx = idx[:sampleSize]
	}
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, e.haystack[i].Original)
	}
	return out
}

func ruleSpecs(rs []*rules.Rule) []string {
	if len(rs) > sampleSize {
		rs = rs[:sampleSize]
	}
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Spec()
	}
	return out
}
