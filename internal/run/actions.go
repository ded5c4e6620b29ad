package run

import (
	"fmt"
	"os"

	"github.com/dtnitsch/policy-engagement/internal/common"
	"github.com/dtnitsch/policy-engagement/pkg/db"
	"github.com/dtnitsch/policy-engagement/pkg/pipeline"
	"github.com/dtnitsch/policy-engagement/pkg/tabular"
	"github.com/urfave/cli/v2"
)

// RunAction runs the full pipeline and records the run in the history database.
func RunAction(c *cli.Context) error {
	settings, err := common.Setup(c)
	if err != nil {
		return err
	}

	input := c.String("input")
	if input == "" {
		return fmt.Errorf("no input provided via --input flag")
	}

	res, err := pipeline.Run(pipeline.Options{
		InputPath: input,
		OutputDir: settings.Config.OutputDir,
		Taxonomy:  settings.Taxonomy,
		MatchMode: settings.MatchMode,
		TopN:      settings.Config.TopN,
		Logger:    settings.Logger,
		Storage:   settings.Storage,
	})
	if err != nil {
		return err
	}

	if c.Bool("no-history") {
		return summarize(c, res, 0)
	}

	database, err := db.Open(settings.Config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	prev, found, err := database.FindRunByHash(res.InputHash, res.TaxonomyHash, settings.MatchMode.String())
	if err != nil {
		return err
	}
	if found {
		settings.Logger.Info("Input unchanged since earlier run", "previous_run", prev.RunID, "created_at", prev.CreatedAt)
	}

	run := db.Run{
		InputPath:    input,
		InputHash:    res.InputHash,
		TaxonomyHash: res.TaxonomyHash,
		MatchMode:    settings.MatchMode.String(),
		RecordCount:  res.Aggregate.TotalRecords,
		OutputDir:    settings.Config.OutputDir,
	}
	for _, o := range res.Outputs {
		run.Outputs = append(run.Outputs, db.Output{Kind: o.Kind, Path: o.Path})
	}
	run.Outputs = append(run.Outputs, db.Output{Kind: "manifest", Path: res.ManifestPath})

	runID, err := database.InsertRun(run, res.Aggregate.Tags)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	settings.Logger.Info("Recorded run", "run_id", runID, "db", database.Path())

	var repeatOf int64
	if found {
		repeatOf = prev.RunID
	}
	return summarize(c, res, repeatOf)
}

func summarize(c *cli.Context, res *pipeline.Result, repeatOf int64) error {
	if c.Bool("quiet") {
		return nil
	}
	tabular.RenderCategories(os.Stdout, res.Categories)
	fmt.Printf("\nRecords: %d | Active tags: %d | Manifest: %s\n",
		res.Aggregate.TotalRecords, res.Report.ActiveTags, res.ManifestPath)
	if repeatOf > 0 {
		fmt.Printf("Repeat of run %d (same input, taxonomy and match mode)\n", repeatOf)
	}
	return nil
}
