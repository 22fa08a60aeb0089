package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/urfave/cli/v2"

	fmerrors "github.com/standardbeagle/fuzzymatch/pkg/errors"
	"github.com/standardbeagle/fuzzymatch/pkg/fuzzymatch"
)

type matchEntry struct {
	Text string  `json:"text"`
	Dice float64 `json:"dice"`
	Edit float64 `json:"edit"`
}

type matchOutput struct {
	Needle  string       `json:"needle"`
	Matches []matchEntry `json:"matches"`
}

func findCommand(c *cli.Context) error {
	return lookupCommand(c, fuzzymatch.ModeSingle)
}

func allCommand(c *cli.Context) error {
	return lookupCommand(c, fuzzymatch.ModeAll)
}

func bestCommand(c *cli.Context) error {
	return lookupCommand(c, fuzzymatch.ModeTied)
}

func lookupCommand(c *cli.Context, mode fuzzymatch.Mode) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: fuzzymatch %s <needle>...", c.Command.Name)
	}

	s, err := loadSession(c)
	if err != nil {
		return err
	}

	results := make([]*fuzzymatch.Result[string], 0, c.NArg())
	for _, needle := range c.Args().Slice() {
		result, err := s.engine.Lookup(needle, fuzzymatch.WithMode(mode))
		if err != nil {
			return fmt.Errorf("lookup failed for %q: %w", needle, err)
		}
		results = append(results, result)
	}

	return printResults(c.App.Writer, results, c.Bool("json"))
}

func explainCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: fuzzymatch explain <needle>")
	}

	s, err := loadSession(c)
	if err != nil {
		return err
	}

	fmt.Fprint(c.App.Writer, s.engine.Explain(c.Args().First()))
	return nil
}

func batchCommand(c *cli.Context) error {
	s, err := loadSession(c)
	if err != nil {
		return err
	}

	var needles []string
	if path := c.Args().First(); path != "" && path != "-" {
		needles, err = readLinesFile(path)
	} else {
		needles, err = readLines(c.App.Reader)
	}
	if err != nil {
		return err
	}

	results, err := s.engine.FindMany(c.Context, needles, c.Int("workers"))
	if err != nil {
		return fmt.Errorf("batch lookup failed: %w", err)
	}
	s.logger.Infow("Batch finished", "needles", len(needles), "cache", s.engine.CacheStats().String())

	return printResults(c.App.Writer, results, c.Bool("json"))
}

// checkCommand verifies the needles given as arguments, or every needle named
// in the rules file checks when there are none
func checkCommand(c *cli.Context) error {
	s, err := loadSession(c)
	if err != nil {
		return err
	}

	needles := c.Args().Slice()
	if len(needles) == 0 {
		needles = slices.Sorted(maps.Keys(s.rules.Checks.Positives))
		for _, needle := range slices.Sorted(maps.Keys(s.rules.Checks.Negatives)) {
			if !slices.Contains(needles, needle) {
				needles = append(needles, needle)
			}
		}
	}
	if len(needles) == 0 {
		return errors.New("no checks: pass needles or add a checks section to the rules file")
	}

	checker := fuzzymatch.NewChecker(s.engine, s.rules.Checks.Positives, s.rules.Checks.Negatives)

	var errs []error
	for _, needle := range needles {
		found, ok, err := checker.Check(needle)
		switch {
		case err != nil:
			errs = append(errs, err)
			fmt.Fprintf(c.App.Writer, "FAIL %s\n", err)
		case ok:
			fmt.Fprintf(c.App.Writer, "ok   %q => %q\n", needle, found.Text)
		default:
			fmt.Fprintf(c.App.Writer, "ok   %q => no match\n", needle)
		}
	}

	if err := fmerrors.NewMultiError(errs).ErrorOrNil(); err != nil {
		return fmt.Errorf("%d of %d checks failed: %w", len(errs), len(needles), err)
	}
	return nil
}

func printResults(w io.Writer, results []*fuzzymatch.Result[string], asJSON bool) error {
	outputs := make([]matchOutput, 0, len(results))
	for _, result := range results {
		out := matchOutput{Needle: result.Needle, Matches: []matchEntry{}}
		for _, cand := range result.Candidates {
			out.Matches = append(out.Matches, matchEntry{
				Text: cand.Text,
				Dice: cand.Score.Dice,
				Edit: cand.Score.Edit,
			})
		}
		outputs = append(outputs, out)
	}

	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(outputs)
	}

	for _, out := range outputs {
		if len(out.Matches) == 0 {
			fmt.Fprintf(w, "%s\t(no match)\n", out.Needle)
			continue
		}
		for _, m := range out.Matches {
			fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\n", out.Needle, m.Text, m.Dice, m.Edit)
		}
	}
	return nil
}
