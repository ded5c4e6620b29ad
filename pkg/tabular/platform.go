package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dtnitsch/policy-engagement/models"
)

// PlatformColumns is the header of the platform frequency table.
var PlatformColumns = []string{
	"Tag_id",
	"Category_id",
	"Platform",
	"Frequency (Count)",
	"Frequency (%)",
	"Average_Engagement",
}

// WritePlatformFrequencies writes platform-relative tag frequencies.
func WritePlatformFrequencies(w io.Writer, rows []models.PlatformFrequency) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(PlatformColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.TagID,
			r.CategoryID,
			r.Platform.String(),
			strconv.FormatInt(r.MentionCount, 10),
			strconv.FormatFloat(r.FrequencyPct, 'f', 2, 64),
			FormatFloat(r.AverageEngagement),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write tag %s: %w", r.TagID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
