package tabular

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dtnitsch/policy-engagement/models"
)

// CategoryColumns is the header of the category-level table.
var CategoryColumns = []string{
	"Category ID",
	"Category Name",
	"Platform",
	"Frequency (Count)",
	"Frequency (%)",
	"Total Engagement",
	"Average Engagement",
}

// CategoryRow renders one rollup row. Platform rows leave zero cells blank so
// "no data" reads differently from a measured zero.
func CategoryRow(c models.CategoryAggregate) []string {
	row := []string{c.CategoryID, c.CategoryName, string(c.Scope), "", "", "", ""}

	if c.IsTotal() {
		row[3] = FormatInt(c.FrequencyCount)
		row[4] = "100%"
		row[5] = FormatInt(c.TotalEngagement)
		row[6] = FormatWhole(c.AverageEngagement)
		return row
	}

	platform := c.Scope != models.ScopeCombined
	if !platform || c.FrequencyCount > 0 {
		row[3] = FormatInt(c.FrequencyCount)
		row[4] = FormatPercent(c.FrequencyPct)
	}
	if !platform || c.TotalEngagement > 0 {
		row[5] = FormatInt(c.TotalEngagement)
	}
	if !platform || c.AverageEngagement > 0 {
		row[6] = FormatWhole(c.AverageEngagement)
	}
	return row
}

// WriteCategories writes the category-level table with a header row.
func WriteCategories(w io.Writer, rows []models.CategoryAggregate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CategoryColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, c := range rows {
		if err := cw.Write(CategoryRow(c)); err != nil {
			return fmt.Errorf("failed to write category %s/%s: %w", c.CategoryID, c.Scope, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
