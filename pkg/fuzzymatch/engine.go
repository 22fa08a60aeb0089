package fuzzymatch

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/standardbeagle/fuzzymatch/internal/cache"
	"github.com/standardbeagle/fuzzymatch/internal/variant"
	fmerrors "github.com/standardbeagle/fuzzymatch/pkg/errors"
	"github.com/standardbeagle/fuzzymatch/pkg/rules"
	"github.com/standardbeagle/fuzzymatch/pkg/similarity"
)

// Engine finds the haystack record a needle most plausibly refers to. It is
// read-only after New and safe for concurrent lookups.
type Engine[R any] struct {
	cfg      Config[R]
	records  []R
	haystack []*variant.Variant
	rules    *rules.Set
	wrapper  *variant.Wrapper
	scorer   *similarity.Scorer
	logger   *zap.SugaredLogger
}

// New compiles the configured rules and wraps every haystack record once
func New[R any](haystack []R, cfg Config[R]) (*Engine[R], error) {
	if cfg.Reader == nil {
		cfg.Reader = DefaultReader[R]
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	specs, err := cfg.specs()
	if err != nil {
		return nil, err
	}
	set, err := rules.NewSet(specs, cfg.CaseSensitive)
	if err != nil {
		return nil, err
	}

	wrapper := variant.NewWrapper(set, variant.Options{
		CaseSensitive: cfg.CaseSensitive,
		FoldAccents:   cfg.FoldAccents,
		StemWords:     cfg.StemWords,
		CacheSize:     cfg.CacheSize,
	})

	e := &Engine[R]{
		cfg:      cfg,
		records:  append([]R(nil), haystack...),
		haystack: make([]*variant.Variant, len(haystack)),
		rules:    set,
		wrapper:  wrapper,
		scorer:   similarity.NewScorer(cfg.Backend),
		logger:   cfg.Logger,
	}
	for i, record := range haystack {
		e.haystack[i] = wrapper.Wrap(cfg.Reader(record))
	}

	e.logger.Debugw("Engine created",
		"haystack", len(haystack),
		"normalizers", len(set.Normalizers),
		"stop_words", len(set.StopWords),
		"groupings", len(set.Groupings),
		"identities", len(set.Identities),
		"backend", e.scorer.Backend().Name())

	return e, nil
}

// Len returns the number of haystack records
func (e *Engine[R]) Len() int {
	return len(e.records)
}

// Rules returns a copy of the compiled rule set. Changing it does not affect
// the engine.
func (e *Engine[R]) Rules() *rules.Set {
	return e.rules.Clone()
}

// CacheStats reports how often needle variants were served from the cache
func (e *Engine[R]) CacheStats() cache.Stats {
	return e.wrapper.CacheStats()
}

// Read returns the text the engine compares for a record
func (e *Engine[R]) Read(record R) string {
	return e.cfg.Reader(record)
}

// LookupOption configures a single lookup
type LookupOption func(*lookupOptions)

type lookupOptions struct {
	modes []Mode
	trace bool
}

// WithMode selects which candidates the lookup returns. Requesting two
// different modes in one lookup is an error.
func WithMode(mode Mode) LookupOption {
	return func(o *lookupOptions) {
		o.modes = append(o.modes, mode)
	}
}

// WithTrace records a diagnostic trace of the lookup in its Result
func WithTrace() LookupOption {
	return func(o *lookupOptions) {
		o.trace = true
	}
}

func resolveOptions(opts []LookupOption) (Mode, bool, error) {
	var o lookupOptions
	for _, opt := range opts {
		opt(&o)
	}

	mode := ModeSingle
	for i, m := range o.modes {
		if m < ModeSingle || m > ModeTied {
			return mode, false, fmerrors.NewUnsupportedConfigurationError("mode",
				fmt.Sprintf("unknown mode %s", m))
		}
		if i > 0 && m != o.modes[0] {
			return mode, false, fmerrors.NewUnsupportedConfigurationError("mode",
				fmt.Sprintf("modes %s and %s are mutually exclusive", o.modes[0], m))
		}
		mode = m
	}
	return mode, o.trace, nil
}

// Result is the outcome of one lookup
type Result[R any] struct {
	Needle string
	Mode   Mode

	// Candidates are the returned records in ranked order. Empty means no match.
	Candidates []Candidate[R]

	trace *Trace
}

// Found reports whether any record was returned
func (r *Result[R]) Found() bool {
	return len(r.Candidates) > 0
}

// Best returns the top returned candidate
func (r *Result[R]) Best() (Candidate[R], bool) {
	if len(r.Candidates) == 0 {
		var zero Candidate[R]
		return zero, false
	}
	return r.Candidates[0], true
}

// Records returns the returned records in ranked order
func (r *Result[R]) Records() []R {
	out := make([]R, len(r.Candidates))
	for i, c := range r.Candidates {
		out[i] = c.Record
	}
	return out
}

// Trace returns the diagnostic trace of a lookup run WithTrace
func (r *Result[R]) Trace() (*Trace, error) {
	if r.trace == nil {
		return nil, fmerrors.NewNoDiagnosticsAvailableError(r.Needle)
	}
	return r.trace, nil
}

// Lookup runs the full pipeline for a needle text
func (e *Engine[R]) Lookup(needle string, opts ...LookupOption) (*Result[R], error) {
	mode, traced, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	var tr *Trace
	if traced {
		tr = newTrace(needle)
		tr.recordOptions(e.describeOptions(mode), len(e.haystack))
	}

	result := &Result[R]{Needle: needle, Mode: mode, trace: tr}

	needleVariant := e.wrapper.WrapCached(needle)
	tr.recordNeedle(needleVariant, len(e.haystack))

	candidates, ok := e.filter(needleVariant, tr)
	if !ok {
		tr.add(Step{
			Stage:       StageDecision,
			Description: "No winner assigned because the search was stopped by a filter",
		})
		e.logger.Debugw("Lookup terminated by filters", "needle", needle, "mode", mode.String())
		return result, nil
	}

	ranked := e.rank(needleVariant, candidates)
	if tr != nil {
		tr.add(Step{
			Stage:       StageRanking,
			Description: "The competition was sorted in order of similarity to the needle",
			Survivors:   len(ranked),
			Passed:      rankedSample(ranked),
		})
	}

	result.Candidates = e.decide(ranked, mode)

	if tr != nil {
		tr.add(e.decisionStep(ranked, result.Candidates))
		if best, ok := result.Best(); ok {
			tr.recordWinner(best.Text, best.Score)
		}
	}

	e.logger.Debugw("Lookup finished",
		"needle", needle,
		"mode", mode.String(),
		"candidates", len(candidates),
		"returned", len(result.Candidates))

	return result, nil
}

// LookupRecord looks up the text the configured Reader extracts from record
func (e *Engine[R]) LookupRecord(record R, opts ...LookupOption) (*Result[R], error) {
	return e.Lookup(e.Read(record), opts...)
}

// Find returns the best record for needle
func (e *Engine[R]) Find(needle string) (R, bool) {
	c, ok := e.FindWithScore(needle)
	return c.Record, ok
}

// FindWithScore returns the best candidate for needle with its score
func (e *Engine[R]) FindWithScore(needle string) (Candidate[R], bool) {
	result, err := e.Lookup(needle)
	if err != nil {
		var zero Candidate[R]
		return zero, false
	}
	return result.Best()
}

// FindAll returns every record clearing the threshold, best first
func (e *Engine[R]) FindAll(needle string) []R {
	result, err := e.Lookup(needle, WithMode(ModeAll))
	if err != nil {
		return nil
	}
	return result.Records()
}

// FindAllWithScore returns every candidate clearing the threshold, best first
func (e *Engine[R]) FindAllWithScore(needle string) []Candidate[R] {
	result, err := e.Lookup(needle, WithMode(ModeAll))
	if err != nil {
		return nil
	}
	return result.Candidates
}

// FindBest returns every record tied for the best score
func (e *Engine[R]) FindBest(needle string) []R {
	result, err := e.Lookup(needle, WithMode(ModeTied))
	if err != nil {
		return nil
	}
	return result.Records()
}

// Explain runs a traced Find and renders how the needle was located, or why
// it was not
func (e *Engine[R]) Explain(needle string) string {
	result, err := e.Lookup(needle, WithTrace())
	if err != nil {
		return err.Error()
	}
	tr, err := result.Trace()
	if err != nil {
		return err.Error()
	}
	return tr.Render()
}

func (e *Engine[R]) describeOptions(mode Mode) string {
	opts := []string{
		fmt.Sprintf("mode=%s", mode),
		fmt.Sprintf("threshold=%g", e.cfg.Threshold),
		fmt.Sprintf("case_sensitive=%t", e.cfg.CaseSensitive),
		fmt.Sprintf("must_match_grouping=%t", e.cfg.MustMatchGrouping),
		fmt.Sprintf("must_match_at_least_one_word=%t", e.cfg.MustMatchAtLeastOneWord),
		fmt.Sprintf("first_grouping_decides=%t", e.cfg.FirstGroupingDecides),
	}
	return "Options: " + strings.Join(opts, ", ")
}

func (e *Engine[R]) decisionStep(ranked, returned []Candidate[R]) Step {
	step := Step{Stage: StageDecision, Survivors: len(returned)}

	switch {
	case len(ranked) == 0:
		step.Description = "No winner assigned because no candidates were left to compare"
	case len(returned) == 0:
		step.Description = fmt.Sprintf(
			"No winner assigned because the best bigram score %.4f does not exceed the threshold %g",
			ranked[0].Score.Dice, e.cfg.Threshold)
	default:
		step.Description = fmt.Sprintf(
			"A winner was determined because the bigram score %.4f exceeds the threshold %g",
			returned[0].Score.Dice, e.cfg.Threshold)
		step.Passed = rankedSample(returned)
	}
	return step
}

func rankedSample[R any](ranked []Candidate[R]) []string {
	if len(ranked) > sampleSize {
		ranked = ranked[:sampleSize]
	}
	out := make([]string, len(ranked))
	for i, c := range ranked {
		out[i] = c.Text
	}
	return out
}
