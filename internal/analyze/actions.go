package analyze

import (
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/policy-engagement/internal/common"
	"github.com/dtnitsch/policy-engagement/models"
	"github.com/dtnitsch/policy-engagement/pkg/aggregate"
	"github.com/dtnitsch/policy-engagement/pkg/analytics"
	"github.com/dtnitsch/policy-engagement/pkg/matrix"
	"github.com/dtnitsch/policy-engagement/pkg/pipeline"
	"github.com/dtnitsch/policy-engagement/pkg/tabular"
	"github.com/urfave/cli/v2"
)

// loadTags reads --tags and, when --raw is given, overlays counted platform
// mentions and returns the raw crosstab.
func loadTags(c *cli.Context, settings *common.Settings) ([]models.TagAggregate, *aggregate.Crosstab, error) {
	tagsPath := c.String("tags")
	if tagsPath == "" {
		return nil, nil, fmt.Errorf("no tag table provided via --tags flag")
	}
	tags, err := common.LoadTags(tagsPath)
	if err != nil {
		return nil, nil, err
	}

	raw := c.String("raw")
	if raw == "" {
		return tags, nil, nil
	}
	res, err := settings.Aggregate(raw)
	if err != nil {
		return nil, nil, err
	}
	common.MergePlatformCounts(tags, res.Tags)
	return tags, res.Crosstab, nil
}

// NormalizeAction writes platform-relative tag frequencies.
func NormalizeAction(c *cli.Context) error {
	settings, err := common.Setup(c)
	if err != nil {
		return err
	}
	p, err := models.ParsePlatformFlag(c.String("platform"))
	if err != nil {
		return err
	}
	tags, ct, err := loadTags(c, settings)
	if err != nil {
		return err
	}

	rows := pipeline.PlatformFrequencies(tags, p, ct)
	settings.Logger.Info("Normalized frequencies", "platform", p.String(), "tags", len(rows), "direct", ct != nil)

	return settings.Emit(c.String("output"), func(w io.Writer) error {
		return tabular.WritePlatformFrequencies(w, rows)
	})
}

// MatrixAction classifies tags into signal quadrants for one scope.
func MatrixAction(c *cli.Context) error {
	settings, err := common.Setup(c)
	if err != nil {
		return err
	}
	tags, ct, err := loadTags(c, settings)
	if err != nil {
		return err
	}

	var m matrix.Matrix
	switch scope := strings.ToLower(c.String("scope")); scope {
	case "", matrix.ScopeOverall:
		m = matrix.Overall(tags, settings.Taxonomy)
	default:
		p, err := models.ParsePlatformFlag(scope)
		if err != nil {
			return fmt.Errorf("invalid scope %q (use: overall, x or truth)", scope)
		}
		m = matrix.ForPlatform(pipeline.PlatformFrequencies(tags, p, ct), p, settings.Taxonomy)
	}
	settings.Logger.Info("Built signal matrix", "scope", m.Scope, "points", len(m.Points))

	return settings.Emit(c.String("output"), pipeline.YAMLWriter(m))
}

// ReportAction writes the frequency report.
func ReportAction(c *cli.Context) error {
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

	a := &analytics.Analytics{TopN: settings.Config.TopN}
	report := a.FrequencyReport(tags, settings.Taxonomy)
	settings.Logger.Info("Built frequency report", "active_tags", report.ActiveTags, "top", a.TopN)

	return settings.Emit(c.String("output"), pipeline.YAMLWriter(report))
}
