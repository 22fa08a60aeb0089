package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/standardbeagle/fuzzymatch/internal/config"
	"github.com/standardbeagle/fuzzymatch/internal/version"
	"github.com/standardbeagle/fuzzymatch/pkg/fuzzymatch"
)

// loadRules reads the --rules file, or returns the empty default rule set
func loadRules(c *cli.Context) (*config.Rules, error) {
	path := c.String("rules")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	if !verbose {
		return zap.NewNop().Sugar(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger.Sugar(), nil
}

// session is what every command needs: the engine and the rules it was
// built from
type session struct {
	engine *fuzzymatch.Engine[string]
	rules  *config.Rules
	logger *zap.SugaredLogger
}

// loadSession builds an engine from the global flags
func loadSession(c *cli.Context) (*session, error) {
	rules, err := loadRules(c)
	if err != nil {
		return nil, err
	}

	records, err := loadHaystack(c.StringSlice("haystack"))
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return nil, err
	}

	logger.Debugw("Loading engine", "version", version.FullInfo(), "records", len(records))

	engine, err := fuzzymatch.New(records, rules.EngineConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return &session{engine: engine, rules: rules, logger: logger}, nil
}

// loadHaystack expands each pattern and reads the matching files in order.
// A pattern without glob syntax must name an existing file.
func loadHaystack(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, errors.New("at least one --haystack file is required")
	}

	var records []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid haystack pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no haystack files match %q", pattern)
		}
		for _, path := range matches {
			lines, err := readLinesFile(path)
			if err != nil {
				return nil, err
			}
			records = append(records, lines...)
		}
	}
	return records, nil
}

func readLinesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

// readLines returns the non-blank lines of r with surrounding space trimmed
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
