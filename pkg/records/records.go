// Package records reads labeled engagement records from CSV.
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dtnitsch/policy-engagement/models"
)

// Input column names.
const (
	ColTagID      = "Tag_id"
	ColCategoryID = "Category_id"
	ColPlatform   = "Platform"
	ColLikes      = "Likes"
	ColReposts    = "Repost"
	ColReplies    = "Replies"
)

var requiredColumns = []string{ColTagID, ColCategoryID, ColPlatform, ColLikes, ColReposts, ColReplies}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// ErrMalformedField is returned for unparsable or negative counters.
var ErrMalformedField = errors.New("malformed field")

// ReadFile opens path and reads every record. A missing file is an error.
func ReadFile(path string) ([]models.RawRecord, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	recs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return recs, nil
}

// Read parses a CSV stream with a header row. Column order is free and
// unknown columns are ignored. Empty counter cells count as zero.
func Read(r io.Reader) ([]models.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var out []models.RawRecord
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
		if blank(row) {
			continue
		}

		rec, err := parseRow(row, idx, line)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int, line int) (models.RawRecord, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	platform, err := models.ParsePlatform(cell(ColPlatform))
	if err != nil {
		return models.RawRecord{}, fmt.Errorf("row %d, column %s: %w", line, ColPlatform, err)
	}

	rec := models.RawRecord{
		TagID:      cell(ColTagID),
		CategoryID: cell(ColCategoryID),
		Platform:   platform,
	}

	counters := []struct {
		col string
		dst *int64
	}{
		{ColLikes, &rec.Likes},
		{ColReposts, &rec.Reposts},
		{ColReplies, &rec.Replies},
	}
	for _, c := range counters {
		v, err := parseCount(cell(c.col))
		if err != nil {
			return models.RawRecord{}, fmt.Errorf("row %d, column %s: %w", line, c.col, err)
		}
		*c.dst = v
	}
	return rec, nil
}

// parseCount accepts integers and integral floats such as "12.0".
func parseCount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return 0, fmt.Errorf("%w: negative count %q", ErrMalformedField, s)
		}
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrMalformedField, s)
	}
	if f < 0 {
		return 0, fmt.Errorf("%w: negative count %q", ErrMalformedField, s)
	}
	return int64(f), nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
