package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dtnitsch/policy-engagement/internal/analyze"
	"github.com/dtnitsch/policy-engagement/internal/db"
	"github.com/dtnitsch/policy-engagement/internal/process"
	"github.com/dtnitsch/policy-engagement/internal/rollup"
	"github.com/dtnitsch/policy-engagement/internal/run"
	"github.com/dtnitsch/policy-engagement/pkg/help"
	"github.com/urfave/cli/v2"
)

func tagsFlag() cli.Flag {
	return &cli.StringFlag{Name: "tags", Usage: "tag-level table written by 'process'", Required: true}
}

func rawFlag() cli.Flag {
	return &cli.StringFlag{Name: "raw", Usage: "raw records, for counted platform frequencies"}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (default: stdout)"}
}

func main() {
	app := &cli.App{
		Name:  "policy-engagement",
		Usage: "Aggregate policy-tag frequency and engagement across X and Truth Social",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML config file with defaults"},
			&cli.StringFlag{Name: "taxonomy", Usage: "YAML taxonomy file (default: built-in A/B/C taxonomy)"},
			&cli.StringFlag{Name: "match", Value: "token", Usage: "tag matching: token or substring"},
			&cli.StringFlag{Name: "db", Usage: "run history database (default: next to the binary)"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors and skip previews"},
		},
		Commands: []*cli.Command{
			{
				Name:  "coldstart",
				Usage: "Print a quick-start guide with commands and column meanings",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
			{
				Name:   "process",
				Usage:  "Aggregate raw records into the tag-level table",
				Action: process.ProcessAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "raw records CSV", Required: true},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "tag table path (default: <output_dir>/tags.csv)"},
				},
			},
			{
				Name:   "rollup",
				Usage:  "Roll tag rows up into the category-level table",
				Action: rollup.RollupAction,
				Flags: []cli.Flag{
					tagsFlag(),
					rawFlag(),
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "category table path (default: <output_dir>/categories.csv)"},
				},
			},
			{
				Name:   "normalize",
				Usage:  "Tag frequency relative to one platform's post count",
				Action: analyze.NormalizeAction,
				Flags: []cli.Flag{
					tagsFlag(),
					rawFlag(),
					&cli.StringFlag{Name: "platform", Aliases: []string{"p"}, Usage: "x or truth", Required: true},
					outputFlag(),
				},
			},
			{
				Name:   "matrix",
				Usage:  "Classify tags into strategic signal quadrants",
				Action: analyze.MatrixAction,
				Flags: []cli.Flag{
					tagsFlag(),
					rawFlag(),
					&cli.StringFlag{Name: "scope", Value: "overall", Usage: "overall, x or truth"},
					outputFlag(),
				},
			},
			{
				Name:   "report",
				Usage:  "Frequency statistics over active tags",
				Action: analyze.ReportAction,
				Flags: []cli.Flag{
					tagsFlag(),
					&cli.IntFlag{Name: "top", Value: 5, Usage: "size of the top and bottom lists"},
					outputFlag(),
				},
			},
			{
				Name:   "run",
				Usage:  "Run every stage, write all outputs and record the run",
				Action: run.RunAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "raw records CSV", Required: true},
					&cli.StringFlag{Name: "out-dir", Usage: "output directory (default: results)"},
					&cli.IntFlag{Name: "top", Value: 5, Usage: "size of the report's top and bottom lists"},
					&cli.BoolFlag{Name: "no-history", Usage: "do not record the run"},
				},
			},
			{
				Name:   "runs",
				Usage:  "List recorded runs",
				Action: db.RunsAction,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of runs to list (0 = all)"},
				},
				Subcommands: []*cli.Command{
					{
						Name:      "show",
						Usage:     "Show a run's outputs and tag rows (default: latest)",
						ArgsUsage: "[run-id]",
						Action:    db.RunShowAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
