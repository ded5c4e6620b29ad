package mapreduce

import (
	"github.com/dtnitsch/policy-engagement/models"
	"github.com/dtnitsch/policy-engagement/pkg/taxonomy"
)

// Counts accumulates mentions and engagement counters for one tag on one platform.
type Counts struct {
	Mentions int64
	Likes    int64
	Reposts  int64
	Replies  int64
}

// Engagement returns likes + reposts + replies.
func (c Counts) Engagement() int64 {
	return c.Likes + c.Reposts + c.Replies
}

// Add returns the field-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Mentions: c.Mentions + o.Mentions,
		Likes:    c.Likes + o.Likes,
		Reposts:  c.Reposts + o.Reposts,
		Replies:  c.Replies + o.Replies,
	}
}

// PlatformCounts holds per-platform counts for a tag, indexed by models.Platform.
type PlatformCounts [models.NumPlatforms]Counts

// All sums the counts over every platform.
func (pc PlatformCounts) All() Counts {
	var total Counts
	for _, c := range pc {
		total = total.Add(c)
	}
	return total
}

// Tally maps tag codes to their per-platform counts.
type Tally map[string]PlatformCounts

// Map attributes a single record to every taxonomy tag the matcher accepts.
// A record matching several tags is counted once for each of them.
func Map(rec models.RawRecord, tags []models.Tag, m taxonomy.Matcher) Tally {
	out := make(Tally)
	for _, tag := range tags {
		if !m.Match(rec.TagID, tag.Code) {
			continue
		}
		var pc PlatformCounts
		pc[rec.Platform] = Counts{
			Mentions: 1,
			Likes:    rec.Likes,
			Reposts:  rec.Reposts,
			Replies:  rec.Replies,
		}
		out[tag.Code] = pc
	}
	return out
}

// Reduce aggregates a slice of tallies into a single tally.
func Reduce(intermediate []Tally) Tally {
	finalResults := make(Tally)

	for _, tally := range intermediate {
		for code, pc := range tally {
			acc := finalResults[code]
			for p := range pc {
				acc[p] = acc[p].Add(pc[p])
			}
			finalResults[code] = acc
		}
	}

	return finalResults
}

// Mentions flattens a tally to total mention counts per tag.
func Mentions(t Tally) map[string]int64 {
	out := make(map[string]int64, len(t))
	for code, pc := range t {
		out[code] = pc.All().Mentions
	}
	return out
}
