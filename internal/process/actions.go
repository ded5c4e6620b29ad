package process

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dtnitsch/policy-engagement/internal/common"
	"github.com/dtnitsch/policy-engagement/pkg/pipeline"
	"github.com/dtnitsch/policy-engagement/pkg/tabular"
	"github.com/urfave/cli/v2"
)

// ProcessAction aggregates raw records into the tag-level table.
func ProcessAction(c *cli.Context) error {
	settings, err := common.Setup(c)
	if err != nil {
		return err
	}

	input := c.String("input")
	if input == "" {
		return fmt.Errorf("no input provided via --input flag")
	}

	res, err := settings.Aggregate(input)
	if err != nil {
		return err
	}

	output := c.String("output")
	if output == "" {
		output = filepath.Join(settings.Config.OutputDir, pipeline.TagsFile)
	}
	if err := settings.Emit(output, func(w io.Writer) error {
		return tabular.WriteTags(w, res.Tags)
	}); err != nil {
		return fmt.Errorf("failed to write tag table: %w", err)
	}

	if !c.Bool("quiet") {
		tabular.RenderTags(os.Stdout, res.Tags)
	}
	return nil
}
