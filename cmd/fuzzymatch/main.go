package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/fuzzymatch/internal/version"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "fuzzymatch",
		Usage:                  "Fuzzy record linkage against a haystack of known names",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rules",
				Aliases: []string{"c"},
				Usage:   "Rules file (.kdl or .toml)",
				Value:   "",
			},
			&cli.StringSliceFlag{
				Name:    "haystack",
				Aliases: []string{"H"},
				Usage:   "Haystack files, one record per line (supports ** globs)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log engine activity to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "find",
				Aliases:   []string{"f"},
				Usage:     "Print the best match for each needle",
				ArgsUsage: "<needle>...",
				Flags:     []cli.Flag{jsonFlag()},
				Action:    findCommand,
			},
			{
				Name:      "all",
				Usage:     "Print every match above the threshold, best first",
				ArgsUsage: "<needle>...",
				Flags:     []cli.Flag{jsonFlag()},
				Action:    allCommand,
			},
			{
				Name:      "best",
				Usage:     "Print every match tied for best",
				ArgsUsage: "<needle>...",
				Flags:     []cli.Flag{jsonFlag()},
				Action:    bestCommand,
			},
			{
				Name:      "explain",
				Aliases:   []string{"x"},
				Usage:     "Show how each filter stage treated the haystack",
				ArgsUsage: "<needle>",
				Action:    explainCommand,
			},
			{
				Name:      "batch",
				Usage:     "Match every line of a file (or stdin) concurrently",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Concurrent lookups (0=GOMAXPROCS)",
						Value:   0,
					},
					jsonFlag(),
				},
				Action: batchCommand,
			},
			{
				Name:      "check",
				Usage:     "Verify the positive and negative checks of the rules file",
				ArgsUsage: "[needle]...",
				Action:    checkCommand,
			},
		},
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "json",
		Aliases: []string{"j"},
		Usage:   "Output as JSON",
	}
}
