package rollup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dtnitsch/policy-engagement/internal/common"
	"github.com/dtnitsch/policy-engagement/pkg/pipeline"
	"github.com/dtnitsch/policy-engagement/pkg/rollup"
	"github.com/dtnitsch/policy-engagement/pkg/tabular"
	"github.com/urfave/cli/v2"
)

// RollupAction builds the category-level table from a tag-level table. With
// --raw the platform rows use counted records instead of the fallback.
func RollupAction(c *cli.Context) error {
	settings, err := common.Setup(c)
	if err != nil {
		return err
	}

	tagsPath := c.String("tags")
	if tagsPath == "" {
		return fmt.Errorf("no tag table provided via --tags flag")
	}
	tags, err := common.LoadTags(tagsPath)
	if err != nil {
		return err
	}

	in := rollup.Input{Tags: tags, Taxonomy: settings.Taxonomy}
	if raw := c.String("raw"); raw != "" {
		res, err := settings.Aggregate(raw)
		if err != nil {
			return err
		}
		in.Crosstab = res.Crosstab
		in.TotalRecords = res.TotalRecords
		in.TotalEngagement = res.TotalEngagement
	} else {
		settings.Logger.Info("No raw input, platform frequency falls back to active tag counts")
	}

	rows := rollup.Categories(in)

	output := c.String("output")
	if output == "" {
		output = filepath.Join(settings.Config.OutputDir, pipeline.CategoriesFile)
	}
	if err := settings.Emit(output, func(w io.Writer) error {
		return tabular.WriteCategories(w, rows)
	}); err != nil {
		return fmt.Errorf("failed to write category table: %w", err)
	}

	if !c.Bool("quiet") {
		tabular.RenderCategories(os.Stdout, rows)
	}
	return nil
}
