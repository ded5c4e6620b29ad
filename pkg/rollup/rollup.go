// Package rollup aggregates tag-level rows into category-level summary rows.
package rollup

import (
	"github.com/dtnitsch/policy-engagement/models"
	"github.com/dtnitsch/policy-engagement/pkg/aggregate"
)

// TotalCategoryName labels the grand-total row.
const TotalCategoryName = "All Categories"

// Input carries everything the rollup needs.
type Input struct {
	Tags     []models.TagAggregate
	Taxonomy models.Taxonomy

	// Crosstab supplies per-platform record counts. When nil, a category's
	// platform frequency falls back to the number of its tags with nonzero
	// engagement on that platform.
	Crosstab *aggregate.Crosstab

	// TotalRecords is the grand-total denominator. Zero means the sum of
	// tag mention counts.
	TotalRecords int64

	// TotalEngagement is the engagement of the same records TotalRecords
	// counts. It is only read when TotalRecords is set; otherwise the
	// grand total sums the tag rows.
	TotalEngagement int64
}

// Categories returns, for each declared category in order, its Combined, X
// and Truth Social rows, followed by one grand-total row.
func Categories(in Input) []models.CategoryAggregate {
	grand := in.TotalRecords
	var grandEngagement int64
	var mentions int64
	for _, t := range in.Tags {
		mentions += t.MentionCount
		grandEngagement += t.TotalEngagement
	}
	if grand == 0 {
		grand = mentions
	} else {
		grandEngagement = in.TotalEngagement
	}

	byCode := make(map[string]models.TagAggregate, len(in.Tags))
	for _, t := range in.Tags {
		byCode[t.TagID] = t
	}

	rows := make([]models.CategoryAggregate, 0, len(in.Taxonomy.Categories)*(1+models.NumPlatforms)+1)
	for _, c := range in.Taxonomy.Categories {
		tags := tagsIn(in.Taxonomy.TagsIn(c.ID), byCode)
		rows = append(rows, combined(c, tags, grand))
		for _, p := range models.Platforms {
			rows = append(rows, platformRow(c, tags, p, in.Crosstab, grand))
		}
	}

	rows = append(rows, models.CategoryAggregate{
		CategoryID:        models.TotalCategoryID,
		CategoryName:      TotalCategoryName,
		Scope:             models.ScopeCombined,
		FrequencyCount:    grand,
		FrequencyPct:      100,
		TotalEngagement:   grandEngagement,
		AverageEngagement: aggregate.Mean(grandEngagement, grand),
	})
	return rows
}

// tagsIn returns the rows of a category's declared tags. Tags without a row
// are skipped.
func tagsIn(tags []models.Tag, byCode map[string]models.TagAggregate) []models.TagAggregate {
	var out []models.TagAggregate
	for _, tag := range tags {
		if row, ok := byCode[tag.Code]; ok {
			out = append(out, row)
		}
	}
	return out
}

func combined(c models.Category, tags []models.TagAggregate, grand int64) models.CategoryAggregate {
	var freq, engagement int64
	for _, t := range tags {
		freq += t.MentionCount
		engagement += t.TotalEngagement
	}
	return models.CategoryAggregate{
		CategoryID:        c.ID,
		CategoryName:      c.Name,
		Scope:             models.ScopeCombined,
		FrequencyCount:    freq,
		FrequencyPct:      aggregate.Percent(freq, grand),
		TotalEngagement:   engagement,
		AverageEngagement: aggregate.Mean(engagement, freq),
	}
}

func platformRow(c models.Category, tags []models.TagAggregate, p models.Platform, ct *aggregate.Crosstab, grand int64) models.CategoryAggregate {
	var engagement, active int64
	for _, t := range tags {
		engagement += t.PlatformEngagement[p]
		if t.PlatformEngagement[p] > 0 {
			active++
		}
	}

	freq := active
	if ct != nil {
		freq = ct.Count(c.ID, p)
	}

	return models.CategoryAggregate{
		CategoryID:        c.ID,
		CategoryName:      c.Name,
		Scope:             models.ScopeOf(p),
		FrequencyCount:    freq,
		FrequencyPct:      aggregate.Percent(freq, grand),
		TotalEngagement:   engagement,
		AverageEngagement: aggregate.Mean(engagement, freq),
		Empty:             freq == 0,
	}
}
