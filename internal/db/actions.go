package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/policy-engagement/internal/common"
	dbpkg "github.com/dtnitsch/policy-engagement/pkg/db"
	"github.com/dtnitsch/policy-engagement/pkg/storage"
	"github.com/dtnitsch/policy-engagement/pkg/tabular"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

func openDB(c *cli.Context) (*dbpkg.DB, error) {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return nil, err
	}
	database, err := dbpkg.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// RunsAction lists recorded runs, newest first.
func RunsAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Created", "Input", "Records", "Tags", "Match", "Output Dir"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.InputPath,
			tabular.FormatInt(r.RecordCount),
			r.TagCount,
			r.MatchMode,
			r.OutputDir,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'policy-engagement runs show <id>' to see details\n")
	return nil
}

// RunShowAction shows details for a specific run
func RunShowAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRunByID(runID)
	if err != nil {
		return err
	}
	tags, err := database.GetRunTags(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Input:       %s\n", run.InputPath)
	fmt.Printf("Input hash:  %s\n", run.InputHash)
	fmt.Printf("Match mode:  %s\n", run.MatchMode)
	fmt.Printf("Records:     %s\n", tabular.FormatInt(run.RecordCount))
	fmt.Printf("Output dir:  %s\n", run.OutputDir)

	if len(run.Outputs) > 0 {
		fmt.Printf("\nOutputs (%d):\n", len(run.Outputs))
		fmt.Println(strings.Repeat("-", 60))
		s := &storage.Storage{}
		for _, o := range run.Outputs {
			status := ""
			if !s.HasFile(o.Path) {
				status = " (missing)"
			}
			fmt.Printf("  %-16s %s%s\n", o.Kind, o.Path, status)
		}
	}

	fmt.Println()
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Tag", "Cat", "Count", "Freq %", "Engagement", "Avg", "X", "Truth"})
	for _, tag := range tags {
		t.AppendRow(table.Row{
			tag.TagID,
			tag.CategoryID,
			tag.MentionCount,
			tabular.FormatFloat(tag.FrequencyPct),
			tabular.FormatInt(tag.TotalEngagement),
			tabular.FormatFloat(tag.AverageEngagement),
			tag.XMentions,
			tag.TruthMentions,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}
