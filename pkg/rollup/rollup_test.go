package rollup

import (
	"testing"

	"github.com/dtnitsch/policy-engagement/models"
	"github.com/dtnitsch/policy-engagement/pkg/aggregate"
	"github.com/dtnitsch/policy-engagement/pkg/taxonomy"
)

func testRecords() []models.RawRecord {
	return []models.RawRecord{
		{TagID: "A1", CategoryID: "A", Platform: models.PlatformX, Likes: 10, Reposts: 1, Replies: 0},
		{TagID: "A1", CategoryID: "A", Platform: models.PlatformX, Likes: 20, Reposts: 2, Replies: 1},
		{TagID: "A3", CategoryID: "A", Platform: models.PlatformTruthSocial, Likes: 100, Reposts: 0, Replies: 0},
		{TagID: "B2", CategoryID: "B", Platform: models.PlatformX, Likes: 5, Reposts: 0, Replies: 1},
	}
}

func build(t *testing.T, withCrosstab bool) []models.CategoryAggregate {
	t.Helper()
	tax := taxonomy.Default()
	res := aggregate.Run(testRecords(), tax, taxonomy.NewMatcher(models.MatchToken), nil)
	in := Input{Tags: res.Tags, Taxonomy: tax, TotalRecords: res.TotalRecords, TotalEngagement: res.TotalEngagement}
	if withCrosstab {
		in.Crosstab = res.Crosstab
	}
	return Categories(in)
}

func find(rows []models.CategoryAggregate, id string, scope models.Scope) models.CategoryAggregate {
	for _, r := range rows {
		if r.CategoryID == id && r.Scope == scope {
			return r
		}
	}
	return models.CategoryAggregate{}
}

func TestCategoriesOrder(t *testing.T) {
	rows := build(t, true)

	if len(rows) != 3*3+1 {
		t.Fatalf("len(rows) = %d, want 10", len(rows))
	}

	wantIDs := []string{"A", "A", "A", "B", "B", "B", "C", "C", "C", "TOTAL"}
	wantScopes := []models.Scope{
		models.ScopeCombined, models.ScopeX, models.ScopeTruthSocial,
		models.ScopeCombined, models.ScopeX, models.ScopeTruthSocial,
		models.ScopeCombined, models.ScopeX, models.ScopeTruthSocial,
		models.ScopeCombined,
	}
	for i := range rows {
		if rows[i].CategoryID != wantIDs[i] || rows[i].Scope != wantScopes[i] {
			t.Errorf("rows[%d] = %s/%s, want %s/%s", i, rows[i].CategoryID, rows[i].Scope, wantIDs[i], wantScopes[i])
		}
	}
	if !rows[len(rows)-1].IsTotal() {
		t.Error("last row should be the grand total")
	}
}

func TestCategoriesCombined(t *testing.T) {
	rows := build(t, true)

	a := find(rows, "A", models.ScopeCombined)
	if a.FrequencyCount != 3 || a.TotalEngagement != 134 {
		t.Errorf("A combined = %d / %d, want 3 / 134", a.FrequencyCount, a.TotalEngagement)
	}
	if a.FrequencyPct != 75 {
		t.Errorf("A combined pct = %v, want 75", a.FrequencyPct)
	}
	if a.AverageEngagement != 134.0/3.0 {
		t.Errorf("A combined avg = %v, want %v", a.AverageEngagement, 134.0/3.0)
	}

	total := rows[len(rows)-1]
	if total.FrequencyCount != 4 || total.FrequencyPct != 100 || total.TotalEngagement != 140 {
		t.Errorf("TOTAL = %d / %v / %d, want 4 / 100 / 140", total.FrequencyCount, total.FrequencyPct, total.TotalEngagement)
	}
	if total.CategoryName != TotalCategoryName {
		t.Errorf("TOTAL name = %q, want %q", total.CategoryName, TotalCategoryName)
	}
}

func TestCategoriesPlatformFromCrosstab(t *testing.T) {
	rows := build(t, true)

	ax := find(rows, "A", models.ScopeX)
	if ax.FrequencyCount != 2 || ax.TotalEngagement != 34 || ax.AverageEngagement != 17 || ax.FrequencyPct != 50 {
		t.Errorf("A/X = %+v, want count 2, engagement 34, avg 17, pct 50", ax)
	}
	if ax.Empty {
		t.Error("A/X should not be empty")
	}

	bt := find(rows, "B", models.ScopeTruthSocial)
	if !bt.Empty || bt.FrequencyCount != 0 || bt.AverageEngagement != 0 {
		t.Errorf("B/Truth Social = %+v, want empty zero row", bt)
	}
}

func TestCategoriesPlatformFallback(t *testing.T) {
	rows := build(t, false)

	// Without raw counts, A on X has one active tag (A1) rather than two posts.
	ax := find(rows, "A", models.ScopeX)
	if ax.FrequencyCount != 1 || ax.AverageEngagement != 34 {
		t.Errorf("A/X fallback = count %d avg %v, want 1 / 34", ax.FrequencyCount, ax.AverageEngagement)
	}
}

func TestCategoriesCombinedMatchesTagSums(t *testing.T) {
	tax := taxonomy.Default()
	res := aggregate.Run(testRecords(), tax, taxonomy.NewMatcher(models.MatchToken), nil)
	rows := Categories(Input{Tags: res.Tags, Taxonomy: tax, Crosstab: res.Crosstab, TotalRecords: res.TotalRecords, TotalEngagement: res.TotalEngagement})

	for _, c := range tax.Categories {
		var want int64
		for _, tag := range res.Tags {
			if tag.CategoryID == c.ID {
				want += tag.MentionCount
			}
		}
		if got := find(rows, c.ID, models.ScopeCombined).FrequencyCount; got != want {
			t.Errorf("%s combined = %d, want %d", c.ID, got, want)
		}
	}
}

func TestCategoriesEmptyInput(t *testing.T) {
	tax := taxonomy.Default()
	res := aggregate.Run(nil, tax, taxonomy.NewMatcher(models.MatchToken), nil)
	rows := Categories(Input{Tags: res.Tags, Taxonomy: tax, Crosstab: res.Crosstab})

	for _, r := range rows[:len(rows)-1] {
		if r.FrequencyPct != 0 || r.AverageEngagement != 0 {
			t.Errorf("%s/%s = %+v, want zeros", r.CategoryID, r.Scope, r)
		}
	}
	total := rows[len(rows)-1]
	if total.FrequencyCount != 0 || total.AverageEngagement != 0 {
		t.Errorf("TOTAL = %+v, want zero count and average", total)
	}
}

func TestCategoriesTotalCountsUnmatchedRecords(t *testing.T) {
	tax := taxonomy.Default()
	recs := []models.RawRecord{
		{TagID: "A1", CategoryID: "A", Platform: models.PlatformX, Likes: 100},
		{TagID: "ZZ", Platform: models.PlatformX, Likes: 900},
	}
	res := aggregate.Run(recs, tax, taxonomy.NewMatcher(models.MatchToken), nil)
	if res.TotalEngagement != 1000 {
		t.Fatalf("TotalEngagement = %d, want 1000", res.TotalEngagement)
	}

	tests := []struct {
		name           string
		in             Input
		wantCount      int64
		wantEngagement int64
		wantAverage    float64
	}{
		{
			name: "raw records",
			in: Input{
				Tags: res.Tags, Taxonomy: tax, Crosstab: res.Crosstab,
				TotalRecords: res.TotalRecords, TotalEngagement: res.TotalEngagement,
			},
			wantCount:      2,
			wantEngagement: 1000,
			wantAverage:    500,
		},
		{
			name:           "tag rows only",
			in:             Input{Tags: res.Tags, Taxonomy: tax},
			wantCount:      1,
			wantEngagement: 100,
			wantAverage:    100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Categories(tt.in)
			total := rows[len(rows)-1]
			if total.FrequencyCount != tt.wantCount || total.TotalEngagement != tt.wantEngagement || total.AverageEngagement != tt.wantAverage {
				t.Errorf("TOTAL = count %d, engagement %d, avg %v; want %d, %d, %v",
					total.FrequencyCount, total.TotalEngagement, total.AverageEngagement,
					tt.wantCount, tt.wantEngagement, tt.wantAverage)
			}
		})
	}
}
