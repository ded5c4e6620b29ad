package aggregate

import (
	"sort"

	"github.com/dtnitsch/policy-engagement/models"
	"github.com/dtnitsch/policy-engagement/pkg/taxonomy"
)

// Crosstab counts raw records per category and platform.
type Crosstab struct {
	counts map[string][models.NumPlatforms]int64
	total  int64
}

// NewCrosstab counts each record once under its Category_id column. Records
// with an empty category fall back to the category of the first taxonomy tag
// they match; records matching nothing are counted under "".
func NewCrosstab(recs []models.RawRecord, tax models.Taxonomy, m taxonomy.Matcher) *Crosstab {
	ct := &Crosstab{counts: make(map[string][models.NumPlatforms]int64)}
	for _, rec := range recs {
		key := rec.CategoryID
		if key == "" {
			for _, tag := range tax.Tags {
				if m.Match(rec.TagID, tag.Code) {
					key = tag.Category
					break
				}
			}
		}
		ct.Add(key, rec.Platform, 1)
	}
	return ct
}

// Add increments the count of a category on a platform.
func (ct *Crosstab) Add(categoryID string, p models.Platform, n int64) {
	if ct.counts == nil {
		ct.counts = make(map[string][models.NumPlatforms]int64)
	}
	row := ct.counts[categoryID]
	row[p] += n
	ct.counts[categoryID] = row
	ct.total += n
}

// Count returns the number of records for a category on a platform.
func (ct *Crosstab) Count(categoryID string, p models.Platform) int64 {
	if ct == nil {
		return 0
	}
	return ct.counts[categoryID][p]
}

// PlatformTotal returns the number of records on a platform across categories.
func (ct *Crosstab) PlatformTotal(p models.Platform) int64 {
	if ct == nil {
		return 0
	}
	var n int64
	for _, row := range ct.counts {
		n += row[p]
	}
	return n
}

// Total returns the number of records counted.
func (ct *Crosstab) Total() int64 {
	if ct == nil {
		return 0
	}
	return ct.total
}

// Categories returns the category keys present, sorted.
func (ct *Crosstab) Categories() []string {
	if ct == nil {
		return nil
	}
	keys := make([]string, 0, len(ct.counts))
	for k := range ct.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
