package aggregate

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/dtnitsch/policy-engagement/models"
	"github.com/dtnitsch/policy-engagement/pkg/taxonomy"
	"github.com/google/go-cmp/cmp"
)

func scenarioRecords() []models.RawRecord {
	return []models.RawRecord{
		{TagID: "A1", CategoryID: "A", Platform: models.PlatformX, Likes: 10, Reposts: 1, Replies: 0},
		{TagID: "A1", CategoryID: "A", Platform: models.PlatformX, Likes: 20, Reposts: 2, Replies: 1},
		{TagID: "B2", CategoryID: "B", Platform: models.PlatformX, Likes: 5, Reposts: 0, Replies: 1},
	}
}

func byTag(rows []models.TagAggregate) map[string]models.TagAggregate {
	out := make(map[string]models.TagAggregate, len(rows))
	for _, r := range rows {
		out[r.TagID] = r
	}
	return out
}

func TestRunScenario(t *testing.T) {
	tax := taxonomy.Default()
	res := Run(scenarioRecords(), tax, taxonomy.NewMatcher(models.MatchToken), nil)

	if len(res.Tags) != len(tax.Tags) {
		t.Fatalf("len(Tags) = %d, want %d", len(res.Tags), len(tax.Tags))
	}
	if res.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, want 3", res.TotalRecords)
	}

	rows := byTag(res.Tags)

	a1 := rows["A1"]
	if a1.MentionCount != 2 || a1.TotalEngagement != 34 || a1.AverageEngagement != 17 {
		t.Errorf("A1 = count %d, engagement %d, avg %v; want 2, 34, 17", a1.MentionCount, a1.TotalEngagement, a1.AverageEngagement)
	}
	if a1.FrequencyPct != 66.67 {
		t.Errorf("A1 FrequencyPct = %v, want 66.67", a1.FrequencyPct)
	}
	if a1.PlatformEngagement[models.PlatformX] != 34 || a1.PlatformAverage[models.PlatformX] != 17 {
		t.Errorf("A1 X = %d / %v, want 34 / 17", a1.PlatformEngagement[models.PlatformX], a1.PlatformAverage[models.PlatformX])
	}
	if a1.PlatformEngagement[models.PlatformTruthSocial] != 0 || a1.PlatformAverage[models.PlatformTruthSocial] != 0 {
		t.Errorf("A1 Truth Social should be zero, got %+v", a1)
	}

	b2 := rows["B2"]
	if b2.MentionCount != 1 || b2.TotalEngagement != 6 || b2.AverageEngagement != 6 {
		t.Errorf("B2 = count %d, engagement %d, avg %v; want 1, 6, 6", b2.MentionCount, b2.TotalEngagement, b2.AverageEngagement)
	}

	var mentions int64
	for _, r := range res.Tags {
		mentions += r.MentionCount
		if r.TagID == "A1" || r.TagID == "B2" {
			continue
		}
		if r != (models.TagAggregate{TagID: r.TagID, CategoryID: r.CategoryID}) {
			t.Errorf("tag %s should be zero-filled, got %+v", r.TagID, r)
		}
	}
	if mentions != 3 {
		t.Errorf("sum(MentionCount) = %d, want 3", mentions)
	}
}

func TestRunInvariants(t *testing.T) {
	recs := []models.RawRecord{
		{TagID: "A1", Platform: models.PlatformX, Likes: 100, Reposts: 7, Replies: 3},
		{TagID: "A2", Platform: models.PlatformTruthSocial, Likes: 9, Reposts: 4, Replies: 2},
		{TagID: "C8", Platform: models.PlatformTruthSocial, Likes: 1, Reposts: 1, Replies: 1},
		{TagID: "C8", Platform: models.PlatformX, Likes: 2, Reposts: 0, Replies: 0},
		{TagID: "B5", Platform: models.PlatformX, Likes: 0, Reposts: 0, Replies: 0},
	}
	res := Run(recs, taxonomy.Default(), taxonomy.NewMatcher(models.MatchToken), nil)

	seen := make(map[string]int)
	var mentions int64
	for _, r := range res.Tags {
		seen[r.TagID]++
		mentions += r.MentionCount
		if r.TotalEngagement != r.TotalLikes+r.TotalReposts+r.TotalComments {
			t.Errorf("%s: total engagement %d != likes+reposts+comments", r.TagID, r.TotalEngagement)
		}
		if r.MentionCount == 0 {
			want := models.TagAggregate{TagID: r.TagID, CategoryID: r.CategoryID}
			if diff := cmp.Diff(want, r); diff != "" {
				t.Errorf("%s: zero-mention row not all zero (-want +got):\n%s", r.TagID, diff)
			}
		}
		var platformMentions int64
		for _, p := range models.Platforms {
			platformMentions += r.PlatformMentions[p]
		}
		if platformMentions != r.MentionCount {
			t.Errorf("%s: platform mentions %d != mentions %d", r.TagID, platformMentions, r.MentionCount)
		}
	}
	for _, tag := range taxonomy.Default().Tags {
		if seen[tag.Code] != 1 {
			t.Errorf("tag %s appears %d times, want 1", tag.Code, seen[tag.Code])
		}
	}
	if mentions != int64(len(recs)) {
		t.Errorf("sum(MentionCount) = %d, want %d", mentions, len(recs))
	}

	c8 := byTag(res.Tags)["C8"]
	if c8.AverageEngagement != 2.5 || c8.PlatformAverage[models.PlatformTruthSocial] != 3 || c8.PlatformAverage[models.PlatformX] != 2 {
		t.Errorf("C8 averages = %v / %v / %v, want 2.5 / 3 / 2", c8.AverageEngagement,
			c8.PlatformAverage[models.PlatformX], c8.PlatformAverage[models.PlatformTruthSocial])
	}
}

func TestRunSubstringDoubleCounts(t *testing.T) {
	tax := models.Taxonomy{
		Categories: []models.Category{{ID: "A", Name: "A"}},
		Tags:       []models.Tag{{Code: "A1", Category: "A"}, {Code: "A10", Category: "A"}},
	}
	recs := []models.RawRecord{{TagID: "A10", Platform: models.PlatformX, Likes: 1}}

	sub := byTag(Run(recs, tax, taxonomy.NewMatcher(models.MatchSubstring), nil).Tags)
	if sub["A1"].MentionCount != 1 || sub["A10"].MentionCount != 1 {
		t.Errorf("substring: A1=%d A10=%d, want 1 and 1", sub["A1"].MentionCount, sub["A10"].MentionCount)
	}

	tok := byTag(Run(recs, tax, taxonomy.NewMatcher(models.MatchToken), nil).Tags)
	if tok["A1"].MentionCount != 0 || tok["A10"].MentionCount != 1 {
		t.Errorf("token: A1=%d A10=%d, want 0 and 1", tok["A1"].MentionCount, tok["A10"].MentionCount)
	}
}

func TestSortLexicographic(t *testing.T) {
	rows := []models.TagAggregate{
		{TagID: "B1", CategoryID: "B"},
		{TagID: "A2", CategoryID: "A"},
		{TagID: "A10", CategoryID: "A"},
		{TagID: "A1", CategoryID: "A"},
	}
	Sort(rows)

	want := []string{"A1", "A10", "A2", "B1"}
	for i, w := range want {
		if rows[i].TagID != w {
			t.Errorf("rows[%d] = %s, want %s", i, rows[i].TagID, w)
		}
	}
}

func TestRounding(t *testing.T) {
	tests := []struct {
		name string
		fn   func(int64, int64) float64
		n, d int64
		want float64
	}{
		{"percent thirds", Percent, 1, 3, 33.33},
		{"percent two thirds", Percent, 2, 3, 66.67},
		{"percent zero denominator", Percent, 5, 0, 0},
		{"percent whole", Percent, 3, 3, 100},
		{"ratio exact", Ratio, 34, 2, 17},
		{"ratio rounds", Ratio, 10, 3, 3.33},
		{"ratio zero denominator", Ratio, 10, 0, 0},
		{"percent exact tie rounds to even", Percent, 1, 32, 3.12},
		{"ratio decimal half rounds to even", Ratio, 107, 40, 2.68},
		{"mean unrounded", Mean, 10, 4, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.n, tt.d); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunWarnsOnUndeclaredCategory(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	recs := []models.RawRecord{
		{TagID: "A1", CategoryID: "A", Platform: models.PlatformX, Likes: 1},
		{TagID: "D1", CategoryID: "D", Platform: models.PlatformTruthSocial, Likes: 2},
	}
	res := Run(recs, taxonomy.Default(), taxonomy.NewMatcher(models.MatchToken), logger)

	if res.TotalEngagement != 3 {
		t.Errorf("TotalEngagement = %d, want 3", res.TotalEngagement)
	}
	out := buf.String()
	if !strings.Contains(out, `"category_id":"D"`) || !strings.Contains(out, `"level":"WARN"`) {
		t.Errorf("expected a warning for category D, got:\n%s", out)
	}
	if strings.Contains(out, `"category_id":"A"`) {
		t.Errorf("declared category A should not be reported, got:\n%s", out)
	}
}
