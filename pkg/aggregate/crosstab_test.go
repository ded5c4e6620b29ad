package aggregate

import (
	"testing"

	"github.com/dtnitsch/policy-engagement/models"
	"github.com/dtnitsch/policy-engagement/pkg/taxonomy"
	"github.com/google/go-cmp/cmp"
)

func TestNewCrosstab(t *testing.T) {
	recs := []models.RawRecord{
		{TagID: "A1", CategoryID: "A", Platform: models.PlatformX},
		{TagID: "A2", CategoryID: "A", Platform: models.PlatformTruthSocial},
		{TagID: "A3", CategoryID: "A", Platform: models.PlatformTruthSocial},
		{TagID: "C1", CategoryID: "", Platform: models.PlatformX},
		{TagID: "Z9", CategoryID: "", Platform: models.PlatformX},
	}
	ct := NewCrosstab(recs, taxonomy.Default(), taxonomy.NewMatcher(models.MatchToken))

	tests := []struct {
		category string
		platform models.Platform
		want     int64
	}{
		{"A", models.PlatformX, 1},
		{"A", models.PlatformTruthSocial, 2},
		{"C", models.PlatformX, 1},
		{"B", models.PlatformX, 0},
		{"", models.PlatformX, 1},
	}
	for _, tt := range tests {
		if got := ct.Count(tt.category, tt.platform); got != tt.want {
			t.Errorf("Count(%q, %s) = %d, want %d", tt.category, tt.platform, got, tt.want)
		}
	}

	if ct.Total() != int64(len(recs)) {
		t.Errorf("Total() = %d, want %d", ct.Total(), len(recs))
	}
	if got := ct.PlatformTotal(models.PlatformX) + ct.PlatformTotal(models.PlatformTruthSocial); got != ct.Total() {
		t.Errorf("sum(PlatformTotal) = %d, want %d", got, ct.Total())
	}
	if diff := cmp.Diff([]string{"", "A", "C"}, ct.Categories()); diff != "" {
		t.Errorf("Categories() mismatch (-want +got):\n%s", diff)
	}
}

func TestNilCrosstab(t *testing.T) {
	var ct *Crosstab
	if ct.Count("A", models.PlatformX) != 0 || ct.Total() != 0 || ct.PlatformTotal(models.PlatformX) != 0 {
		t.Error("nil Crosstab should report zero counts")
	}
}
