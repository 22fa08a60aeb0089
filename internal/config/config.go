package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/standardbeagle/fuzzymatch/pkg/fuzzymatch"
	"github.com/standardbeagle/fuzzymatch/pkg/similarity"
)

// Rules is the content of a rules file: the pattern lists, the engine options
// and the known pairings used by the check command
type Rules struct {
	Normalizers []string `toml:"normalizers"`
	Tighteners  []string `toml:"tighteners"`
	StopWords   []string `toml:"stop_words"`
	Groupings   []string `toml:"groupings"`
	Blockings   []string `toml:"blockings"`
	Identities  []string `toml:"identities"`

	Options Options `toml:"options"`
	Checks  Checks  `toml:"checks"`
}

type Options struct {
	CaseSensitive           bool    `toml:"case_sensitive"`
	MustMatchGrouping       bool    `toml:"must_match_grouping"`
	MustMatchAtLeastOneWord bool    `toml:"must_match_at_least_one_word"`
	FirstGroupingDecides    bool    `toml:"first_grouping_decides"`
	ExpandGroupings         bool    `toml:"expand_groupings"`
	Threshold               float64 `toml:"threshold"`
	Backend                 string  `toml:"backend"` // "builtin" or "edlib"
	StemWords               bool    `toml:"stem_words"`
	FoldAccents             bool    `toml:"fold_accents"`
	CacheSize               int     `toml:"cache_size"`
}

type Checks struct {
	Positives map[string]string `toml:"positives"` // needle -> record it must match, "" for nothing
	Negatives map[string]string `toml:"negatives"` // needle -> record it must not match, "" for anything
}

// Default returns an empty rule set with default options
func Default() *Rules {
	return &Rules{
		Options: Options{Backend: "builtin"},
		Checks: Checks{
			Positives: map[string]string{},
			Negatives: map[string]string{},
		},
	}
}

// Load reads a rules file. Files ending in .toml are parsed as TOML, anything
// else as KDL. The result is validated before it is returned.
func Load(path string) (*Rules, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var r *Rules
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		r, err = parseTOML(content)
	default:
		r, err = parseKDL(string(content))
	}
	if err != nil {
		return nil, err
	}

	if err := ValidateRules(r); err != nil {
		return nil, err
	}
	return r, nil
}

// EngineConfig converts the rules into an engine configuration for string
// records
func (r *Rules) EngineConfig(logger *zap.SugaredLogger) fuzzymatch.Config[string] {
	return fuzzymatch.Config[string]{
		CaseSensitive:           r.Options.CaseSensitive,
		Normalizers:             r.Normalizers,
		Tighteners:              r.Tighteners,
		StopWords:               r.StopWords,
		Groupings:               r.Groupings,
		Blockings:               r.Blockings,
		ExpandGroupings:         r.Options.ExpandGroupings,
		Identities:              r.Identities,
		MustMatchGrouping:       r.Options.MustMatchGrouping,
		MustMatchAtLeastOneWord: r.Options.MustMatchAtLeastOneWord,
		FirstGroupingDecides:    r.Options.FirstGroupingDecides,
		Threshold:               r.Options.Threshold,
		Backend:                 similarity.BackendByName(r.Options.Backend),
		StemWords:               r.Options.StemWords,
		FoldAccents:             r.Options.FoldAccents,
		CacheSize:               r.Options.CacheSize,
		Logger:                  logger,
	}
}
