// Package aggregate builds tag-level engagement aggregates from raw records.
package aggregate

import (
	"log/slog"
	"sort"

	"github.com/dtnitsch/policy-engagement/models"
	"github.com/dtnitsch/policy-engagement/pkg/mapreduce"
	"github.com/dtnitsch/policy-engagement/pkg/taxonomy"
)

// Result is the output of a tag aggregation pass.
type Result struct {
	Tags         []models.TagAggregate
	Crosstab     *Crosstab
	TotalRecords int64
	// TotalEngagement sums every input record once, matched or not.
	TotalEngagement int64
	Tally           mapreduce.Tally
}

// Run tallies every record against the taxonomy and returns one aggregate
// per taxonomy tag, zero-filled for tags without matches, together with the
// category×platform crosstab.
func Run(recs []models.RawRecord, tax models.Taxonomy, m taxonomy.Matcher, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	intermediate := make([]mapreduce.Tally, 0, len(recs))
	unmatched := 0
	var engagement int64
	for _, rec := range recs {
		engagement += rec.Engagement()
		t := mapreduce.Map(rec, tax.Tags, m)
		if len(t) == 0 {
			unmatched++
			continue
		}
		intermediate = append(intermediate, t)
	}
	tally := mapreduce.Reduce(intermediate)

	total := int64(len(recs))
	logger.Info("Tallied records", "records", total, "tags_matched", len(tally), "unmatched_records", unmatched)

	ct := NewCrosstab(recs, tax, m)
	for _, id := range ct.Categories() {
		if _, ok := tax.CategoryByID(id); !ok {
			var n int64
			for _, p := range models.Platforms {
				n += ct.Count(id, p)
			}
			logger.Warn("Records outside every declared category", "category_id", id, "records", n)
		}
	}

	return Result{
		Tags:            Tags(tally, tax, total),
		Crosstab:        ct,
		TotalRecords:    total,
		TotalEngagement: engagement,
		Tally:           tally,
	}
}

// Tags converts a reduced tally into sorted tag aggregates.
// totalRecords is the frequency denominator.
func Tags(tally mapreduce.Tally, tax models.Taxonomy, totalRecords int64) []models.TagAggregate {
	rows := make([]models.TagAggregate, 0, len(tax.Tags))
	for _, tag := range tax.Tags {
		rows = append(rows, FromCounts(tag, tally[tag.Code], totalRecords))
	}
	Sort(rows)
	return rows
}

// FromCounts derives a single tag row. Zero counts produce an all-zero row.
func FromCounts(tag models.Tag, pc mapreduce.PlatformCounts, totalRecords int64) models.TagAggregate {
	all := pc.All()
	row := models.TagAggregate{
		TagID:           tag.Code,
		CategoryID:      tag.Category,
		MentionCount:    all.Mentions,
		FrequencyPct:    Percent(all.Mentions, totalRecords),
		TotalLikes:      all.Likes,
		TotalReposts:    all.Reposts,
		TotalComments:   all.Replies,
		TotalEngagement: all.Engagement(),
	}
	row.AverageEngagement = Ratio(row.TotalEngagement, row.MentionCount)

	for _, p := range models.Platforms {
		c := pc[p]
		row.PlatformMentions[p] = c.Mentions
		row.PlatformEngagement[p] = c.Engagement()
		row.PlatformAverage[p] = Ratio(c.Engagement(), c.Mentions)
	}
	return row
}

// Sort orders rows by category, then tag code lexicographically.
// The sort is stable so equal keys keep taxonomy order.
func Sort(rows []models.TagAggregate) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CategoryID != rows[j].CategoryID {
			return rows[i].CategoryID < rows[j].CategoryID
		}
		return rows[i].TagID < rows[j].TagID
	})
}
