package db

import (
	"errors"
	"testing"

	"github.com/dtnitsch/policy-engagement/models"
	"github.com/google/go-cmp/cmp"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	// Each pooled connection to :memory: is a separate database.
	database.SetMaxOpenConns(1)

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func testTags() []models.TagAggregate {
	a1 := models.TagAggregate{
		TagID: "A1", CategoryID: "A", MentionCount: 2, FrequencyPct: 66.67,
		TotalEngagement: 34, AverageEngagement: 17,
	}
	a1.PlatformMentions[models.PlatformX] = 2
	b2 := models.TagAggregate{
		TagID: "B2", CategoryID: "B", MentionCount: 1, FrequencyPct: 33.33,
		TotalEngagement: 6, AverageEngagement: 6,
	}
	b2.PlatformMentions[models.PlatformTruthSocial] = 1
	return []models.TagAggregate{a1, b2}
}

func testRun() Run {
	return Run{
		InputPath:    "raw.csv",
		InputHash:    "abc",
		TaxonomyHash: "def",
		MatchMode:    "token",
		RecordCount:  3,
		OutputDir:    "results",
		Outputs: []Output{
			{Kind: "tags", Path: "results/tags.csv"},
			{Kind: "categories", Path: "results/categories.csv"},
		},
	}
}

func TestInsertAndGetRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun(testRun(), testTags())
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if runID == 0 {
		t.Fatal("InsertRun() returned 0 run ID")
	}

	run, err := db.GetRunByID(runID)
	if err != nil {
		t.Fatalf("GetRunByID() error = %v", err)
	}
	if run.RecordCount != 3 || run.TagCount != 2 || run.MatchMode != "token" {
		t.Errorf("run = %+v", run)
	}
	if run.CreatedAt.IsZero() {
		t.Error("run.CreatedAt is zero")
	}
	if diff := cmp.Diff(testRun().Outputs, run.Outputs); diff != "" {
		t.Errorf("Outputs mismatch (-want +got):\n%s", diff)
	}

	tags, err := db.GetRunTags(runID)
	if err != nil {
		t.Fatalf("GetRunTags() error = %v", err)
	}
	want := []RunTag{
		{TagID: "A1", CategoryID: "A", MentionCount: 2, FrequencyPct: 66.67, TotalEngagement: 34, AverageEngagement: 17, XMentions: 2},
		{TagID: "B2", CategoryID: "B", MentionCount: 1, FrequencyPct: 33.33, TotalEngagement: 6, AverageEngagement: 6, TruthMentions: 1},
	}
	if diff := cmp.Diff(want, tags); diff != "" {
		t.Errorf("GetRunTags() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetRunByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetRunByID(42)
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRunByID() error = %v, want ErrRunNotFound", err)
	}
	if _, err := db.LatestRunID(); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("LatestRunID() error = %v, want ErrRunNotFound", err)
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := db.InsertRun(testRun(), testTags())
		if err != nil {
			t.Fatalf("InsertRun() error = %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(ListRuns(2)) = %d, want 2", len(runs))
	}
	if runs[0].RunID != ids[2] || runs[1].RunID != ids[1] {
		t.Errorf("ListRuns() order = %d, %d; want %d, %d", runs[0].RunID, runs[1].RunID, ids[2], ids[1])
	}

	all, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns(0) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(ListRuns(0)) = %d, want 3", len(all))
	}

	latest, err := db.LatestRunID()
	if err != nil {
		t.Fatalf("LatestRunID() error = %v", err)
	}
	if latest != ids[2] {
		t.Errorf("LatestRunID() = %d, want %d", latest, ids[2])
	}
}

func TestFindRunByHash(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, found, err := db.FindRunByHash("abc", "def", "token"); err != nil || found {
		t.Fatalf("FindRunByHash() on empty db = found %v, err %v", found, err)
	}

	first, err := db.InsertRun(testRun(), testTags())
	if err != nil {
		t.Fatal(err)
	}
	second, err := db.InsertRun(testRun(), testTags())
	if err != nil {
		t.Fatal(err)
	}

	run, found, err := db.FindRunByHash("abc", "def", "token")
	if err != nil {
		t.Fatalf("FindRunByHash() error = %v", err)
	}
	if !found || run.RunID != second {
		t.Errorf("FindRunByHash() = %v, %v; want run %d (not %d)", run, found, second, first)
	}

	if _, found, _ := db.FindRunByHash("abc", "def", "substring"); found {
		t.Error("FindRunByHash() matched a different match mode")
	}
}
