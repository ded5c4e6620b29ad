package tabular

import (
	"io"

	"github.com/dtnitsch/policy-engagement/models"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTags prints a console preview of the tag-level table.
func RenderTags(w io.Writer, tags []models.TagAggregate) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Tag", "Cat", "Count", "Freq %", "Engagement", "X", "Truth", "Avg"})
	for _, tag := range tags {
		t.AppendRow(table.Row{
			tag.TagID,
			tag.CategoryID,
			tag.MentionCount,
			FormatFloat(tag.FrequencyPct),
			FormatInt(tag.TotalEngagement),
			FormatInt(tag.PlatformEngagement[models.PlatformX]),
			FormatInt(tag.PlatformEngagement[models.PlatformTruthSocial]),
			FormatFloat(tag.AverageEngagement),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// RenderCategories prints a console preview of the category-level table.
func RenderCategories(w io.Writer, rows []models.CategoryAggregate) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := make(table.Row, len(CategoryColumns))
	for i, c := range CategoryColumns {
		header[i] = c
	}
	t.AppendHeader(header)

	for _, c := range rows {
		cells := CategoryRow(c)
		row := make(table.Row, len(cells))
		for i, v := range cells {
			row[i] = v
		}
		if c.IsTotal() {
			t.AppendSeparator()
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
