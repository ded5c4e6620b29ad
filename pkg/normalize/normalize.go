// Package normalize derives tag frequencies relative to a single platform's
// own post count.
package normalize

import (
	"math"

	"github.com/dtnitsch/policy-engagement/models"
)

// BackDivision reconstructs platform mention counts from engagement figures
// when raw per-platform counts are unavailable: count = round(total / average).
//
// Only tags with a positive platform average take part. The platform post
// total is the sum of the unrounded quotients while each tag's percentage
// uses its rounded count, so percentages need not sum to exactly 100.
func BackDivision(tags []models.TagAggregate, p models.Platform) []models.PlatformFrequency {
	type quotient struct {
		tag models.TagAggregate
		q   float64
	}

	var active []quotient
	var total float64
	for _, t := range tags {
		avg := t.PlatformAverage[p]
		if avg <= 0 {
			continue
		}
		q := float64(t.PlatformEngagement[p]) / avg
		active = append(active, quotient{t, q})
		total += q
	}

	out := make([]models.PlatformFrequency, 0, len(active))
	for _, a := range active {
		count := int64(math.RoundToEven(a.q))
		pf := models.PlatformFrequency{
			TagID:             a.tag.TagID,
			CategoryID:        a.tag.CategoryID,
			Platform:          p,
			MentionCount:      count,
			AverageEngagement: a.tag.PlatformAverage[p],
		}
		if total > 0 {
			pf.FrequencyPct = float64(count) / total * 100
		}
		out = append(out, pf)
	}
	return out
}

// Direct uses counted platform mentions. platformPosts is the number of posts
// on the platform; zero means the sum of the tags' platform mentions.
// Tags with no mentions on the platform are omitted.
func Direct(tags []models.TagAggregate, p models.Platform, platformPosts int64) []models.PlatformFrequency {
	if platformPosts == 0 {
		for _, t := range tags {
			platformPosts += t.PlatformMentions[p]
		}
	}

	var out []models.PlatformFrequency
	for _, t := range tags {
		n := t.PlatformMentions[p]
		if n == 0 {
			continue
		}
		pf := models.PlatformFrequency{
			TagID:             t.TagID,
			CategoryID:        t.CategoryID,
			Platform:          p,
			MentionCount:      n,
			AverageEngagement: t.PlatformAverage[p],
		}
		if platformPosts > 0 {
			pf.FrequencyPct = float64(n) / float64(platformPosts) * 100
		}
		out = append(out, pf)
	}
	return out
}

// HasPlatformCounts reports whether the rows carry counted platform mentions,
// which is not the case for rows read back from a tag-level table.
func HasPlatformCounts(tags []models.TagAggregate) bool {
	for _, t := range tags {
		for _, p := range models.Platforms {
			if t.PlatformMentions[p] > 0 {
				return true
			}
		}
	}
	return false
}
