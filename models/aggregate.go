package models

// TagAggregate is the per-tag row of the tag-level table.
type TagAggregate struct {
	TagID        string
	CategoryID   string
	MentionCount int64
	FrequencyPct float64

	TotalLikes      int64
	TotalReposts    int64
	TotalComments   int64
	TotalEngagement int64

	// Indexed by Platform.
	PlatformMentions   [NumPlatforms]int64
	PlatformEngagement [NumPlatforms]int64
	PlatformAverage    [NumPlatforms]float64

	AverageEngagement float64
}

// Scope is the platform scope of a category rollup row.
type Scope string

const (
	ScopeCombined    Scope = "Combined"
	ScopeX           Scope = "X"
	ScopeTruthSocial Scope = "Truth Social"
)

// ScopeOf returns the rollup scope of a platform.
func ScopeOf(p Platform) Scope {
	if p == PlatformTruthSocial {
		return ScopeTruthSocial
	}
	return ScopeX
}

// TotalCategoryID labels the grand-total rollup row.
const TotalCategoryID = "TOTAL"

// CategoryAggregate is one row of the category-level table.
type CategoryAggregate struct {
	CategoryID        string
	CategoryName      string
	Scope             Scope
	FrequencyCount    int64
	FrequencyPct      float64
	TotalEngagement   int64
	AverageEngagement float64

	// Empty marks a platform row with no records, rendered as blank cells.
	Empty bool
}

// IsTotal reports whether the row is the grand-total row.
func (c CategoryAggregate) IsTotal() bool {
	return c.CategoryID == TotalCategoryID
}

// PlatformFrequency is a tag's frequency relative to one platform's own post count.
type PlatformFrequency struct {
	TagID             string
	CategoryID        string
	Platform          Platform
	MentionCount      int64
	FrequencyPct      float64
	AverageEngagement float64
}
