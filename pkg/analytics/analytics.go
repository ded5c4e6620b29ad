package analytics

import (
	"math"
	"sort"

	"github.com/dtnitsch/policy-engagement/models"
)

// Analytics computes descriptive statistics over tag-level rows.
type Analytics struct {
	// TopN bounds the top and bottom tag lists. Zero means 5.
	TopN int
}

// Report summarises tag frequency over the active tags of a run.
type Report struct {
	ActiveTags      int             `yaml:"active_tags"`
	TotalMentions   int64           `yaml:"total_mentions"`
	MeanFrequency   float64         `yaml:"mean_frequency_pct"`
	StdDevFrequency float64         `yaml:"stddev_frequency_pct"`
	MinFrequency    float64         `yaml:"min_frequency_pct"`
	MaxFrequency    float64         `yaml:"max_frequency_pct"`
	Categories      []CategoryStats `yaml:"categories"`
	Top             []RankedTag     `yaml:"top"`
	Bottom          []RankedTag     `yaml:"bottom"`
}

// CategoryStats aggregates the active tags of one category.
type CategoryStats struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Tags          int      `yaml:"tags"`
	Mentions      int64    `yaml:"mentions"`
	FrequencyPct  float64  `yaml:"frequency_pct"`
	AveragePerTag float64  `yaml:"average_per_tag_pct"`
	TagIDs        []string `yaml:"tag_ids"`
}

// RankedTag is one entry of a top or bottom list.
type RankedTag struct {
	Rank         int     `yaml:"rank"`
	TagID        string  `yaml:"tag_id"`
	CategoryID   string  `yaml:"category_id"`
	FrequencyPct float64 `yaml:"frequency_pct"`
	Mentions     int64   `yaml:"mentions"`
}

// Active returns the rows with a positive frequency, preserving order.
func Active(tags []models.TagAggregate) []models.TagAggregate {
	var out []models.TagAggregate
	for _, t := range tags {
		if t.FrequencyPct > 0 {
			out = append(out, t)
		}
	}
	return out
}

// FrequencyReport computes descriptive statistics over active tags.
// Categories without active tags are omitted.
func (a *Analytics) FrequencyReport(tags []models.TagAggregate, tax models.Taxonomy) Report {
	active := Active(tags)
	freqs := make([]float64, len(active))
	var r Report
	for i, t := range active {
		freqs[i] = t.FrequencyPct
		r.TotalMentions += t.MentionCount
	}
	r.ActiveTags = len(active)
	r.MeanFrequency = round2(Mean(freqs))
	r.StdDevFrequency = round2(StdDev(freqs))
	r.MinFrequency, r.MaxFrequency = MinMax(freqs)

	for _, c := range tax.Categories {
		cs := CategoryStats{ID: c.ID, Name: c.Name}
		for _, t := range active {
			if t.CategoryID != c.ID {
				continue
			}
			cs.Tags++
			cs.Mentions += t.MentionCount
			cs.FrequencyPct += t.FrequencyPct
			cs.TagIDs = append(cs.TagIDs, t.TagID)
		}
		if cs.Tags == 0 {
			continue
		}
		cs.FrequencyPct = round2(cs.FrequencyPct)
		cs.AveragePerTag = round2(cs.FrequencyPct / float64(cs.Tags))
		r.Categories = append(r.Categories, cs)
	}

	n := a.TopN
	if n <= 0 {
		n = 5
	}
	r.Top = rank(active, n, true)
	r.Bottom = rank(active, n, false)
	return r
}

// rank orders by frequency (descending when top), ties keeping input order.
func rank(tags []models.TagAggregate, n int, top bool) []RankedTag {
	sorted := make([]models.TagAggregate, len(tags))
	copy(sorted, tags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if top {
			return sorted[i].FrequencyPct > sorted[j].FrequencyPct
		}
		return sorted[i].FrequencyPct < sorted[j].FrequencyPct
	})

	limit := n
	if len(sorted) < n {
		limit = len(sorted)
	}
	out := make([]RankedTag, limit)
	for i := 0; i < limit; i++ {
		out[i] = RankedTag{
			Rank:         i + 1,
			TagID:        sorted[i].TagID,
			CategoryID:   sorted[i].CategoryID,
			FrequencyPct: sorted[i].FrequencyPct,
			Mentions:     sorted[i].MentionCount,
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
