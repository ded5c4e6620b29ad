// Package tabular reads and writes the tag-level, category-level and
// platform frequency tables.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dtnitsch/policy-engagement/models"
)

// ErrMissingColumn is returned when a table header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// TagColumns is the header of the tag-level table.
var TagColumns = []string{
	"Tag_id",
	"Category_id",
	"Frequency (Count)",
	"Frequency (%)",
	"Total_Likes",
	"Total_Reposts",
	"Total_Comments",
	"Total_Engagement",
	"X_Total_Engagement",
	"Truth_Total_Engagement",
	"Average_Engagement",
	"X_Average_Engagement",
	"Truth_Average_Engagement",
}

// TagRow renders one tag aggregate as table cells.
func TagRow(t models.TagAggregate) []string {
	return []string{
		t.TagID,
		t.CategoryID,
		strconv.FormatInt(t.MentionCount, 10),
		FormatFloat(t.FrequencyPct),
		strconv.FormatInt(t.TotalLikes, 10),
		strconv.FormatInt(t.TotalReposts, 10),
		strconv.FormatInt(t.TotalComments, 10),
		strconv.FormatInt(t.TotalEngagement, 10),
		strconv.FormatInt(t.PlatformEngagement[models.PlatformX], 10),
		strconv.FormatInt(t.PlatformEngagement[models.PlatformTruthSocial], 10),
		FormatFloat(t.AverageEngagement),
		FormatFloat(t.PlatformAverage[models.PlatformX]),
		FormatFloat(t.PlatformAverage[models.PlatformTruthSocial]),
	}
}

// WriteTags writes the tag-level table with a header row.
func WriteTags(w io.Writer, tags []models.TagAggregate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TagColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, t := range tags {
		if err := cw.Write(TagRow(t)); err != nil {
			return fmt.Errorf("failed to write tag %s: %w", t.TagID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTags reads a tag-level table back. Counted platform mentions are not
// part of the table and stay zero.
func ReadTags(r io.Reader) ([]models.TagAggregate, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty table", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range TagColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var out []models.TagAggregate
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}

		p := rowParser{row: row, idx: idx, line: line}
		t := models.TagAggregate{
			TagID:             p.str("Tag_id"),
			CategoryID:        p.str("Category_id"),
			MentionCount:      p.integer("Frequency (Count)"),
			FrequencyPct:      p.number("Frequency (%)"),
			TotalLikes:        p.integer("Total_Likes"),
			TotalReposts:      p.integer("Total_Reposts"),
			TotalComments:     p.integer("Total_Comments"),
			TotalEngagement:   p.integer("Total_Engagement"),
			AverageEngagement: p.number("Average_Engagement"),
		}
		for _, pl := range models.Platforms {
			t.PlatformEngagement[pl] = p.integer(pl.ColumnPrefix() + "_Total_Engagement")
			t.PlatformAverage[pl] = p.number(pl.ColumnPrefix() + "_Average_Engagement")
		}
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, t)
	}
	return out, nil
}

// rowParser keeps the first conversion error of a row.
type rowParser struct {
	row  []string
	idx  map[string]int
	line int
	err  error
}

func (p *rowParser) str(col string) string {
	i := p.idx[col]
	if i >= len(p.row) {
		return ""
	}
	return strings.TrimSpace(p.row[i])
}

func (p *rowParser) integer(col string) int64 {
	s := p.str(col)
	if s == "" || p.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int64(f)) {
			p.err = fmt.Errorf("row %d, column %s: invalid integer %q", p.line, col, s)
			return 0
		}
		v = int64(f)
	}
	return v
}

func (p *rowParser) number(col string) float64 {
	s := p.str(col)
	if s == "" || p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = fmt.Errorf("row %d, column %s: invalid number %q", p.line, col, s)
		return 0
	}
	return v
}
