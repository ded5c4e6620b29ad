package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/policy-engagement/models"
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run represents one recorded pipeline run
type Run struct {
	RunID        int64
	CreatedAt    time.Time
	InputPath    string
	InputHash    string
	TaxonomyHash string
	MatchMode    string
	RecordCount  int64
	TagCount     int
	OutputDir    string
	Outputs      []Output
}

// Output is one file written by a run.
type Output struct {
	Kind string
	Path string
}

// RunTag is a stored tag-level row.
type RunTag struct {
	TagID             string
	CategoryID        string
	MentionCount      int64
	FrequencyPct      float64
	TotalEngagement   int64
	AverageEngagement float64
	XMentions         int64
	TruthMentions     int64
}

// InsertRun stores a run with its outputs and tag rows in one transaction
// and returns the new run id.
func (db *DB) InsertRun(run Run, tags []models.TagAggregate) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(`
		INSERT INTO runs (input_path, input_hash, taxonomy_hash, match_mode, record_count, tag_count, output_dir)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.InputPath, run.InputHash, run.TaxonomyHash, run.MatchMode, run.RecordCount, len(tags), run.OutputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	for _, o := range run.Outputs {
		if _, err := tx.Exec(`
			INSERT INTO run_outputs (run_id, kind, path) VALUES (?, ?, ?)
		`, runID, o.Kind, o.Path); err != nil {
			return 0, fmt.Errorf("failed to insert run output %s: %w", o.Kind, err)
		}
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_tags (run_id, position, tag_id, category_id, mention_count, frequency_pct,
			total_engagement, average_engagement, x_mention_count, truth_mention_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare tag insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tags {
		if _, err := stmt.Exec(runID, i, t.TagID, t.CategoryID, t.MentionCount, t.FrequencyPct,
			t.TotalEngagement, t.AverageEngagement,
			t.PlatformMentions[models.PlatformX], t.PlatformMentions[models.PlatformTruthSocial]); err != nil {
			return 0, fmt.Errorf("failed to insert tag %s: %w", t.TagID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

const runColumns = `run_id, created_at, input_path, input_hash, taxonomy_hash, match_mode, record_count, tag_count, output_dir`

func scanRun(row interface{ Scan(...any) error }) (*Run, error) {
	var r Run
	err := row.Scan(
		&r.RunID,
		&r.CreatedAt,
		&r.InputPath,
		&r.InputHash,
		&r.TaxonomyHash,
		&r.MatchMode,
		&r.RecordCount,
		&r.TagCount,
		&r.OutputDir,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRunByID retrieves a run and its outputs
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	run, err := scanRun(db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	rows, err := db.Query(`SELECT kind, path FROM run_outputs WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run outputs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o Output
		if err := rows.Scan(&o.Kind, &o.Path); err != nil {
			return nil, fmt.Errorf("failed to scan run output: %w", err)
		}
		run.Outputs = append(run.Outputs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read run outputs: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 means all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY run_id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}

// GetRunTags returns a run's tag rows in their stored order
func (db *DB) GetRunTags(runID int64) ([]RunTag, error) {
	rows, err := db.Query(`
		SELECT tag_id, category_id, mention_count, frequency_pct, total_engagement,
			average_engagement, x_mention_count, truth_mention_count
		FROM run_tags
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run tags: %w", err)
	}
	defer rows.Close()

	var tags []RunTag
	for rows.Next() {
		var t RunTag
		if err := rows.Scan(&t.TagID, &t.CategoryID, &t.MentionCount, &t.FrequencyPct,
			&t.TotalEngagement, &t.AverageEngagement, &t.XMentions, &t.TruthMentions); err != nil {
			return nil, fmt.Errorf("failed to scan run tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read run tags: %w", err)
	}
	return tags, nil
}

// FindRunByHash returns the most recent run over the same input, taxonomy
// and match mode. found is false when there is none.
func (db *DB) FindRunByHash(inputHash, taxonomyHash, matchMode string) (run *Run, found bool, err error) {
	run, err = scanRun(db.QueryRow(`
		SELECT `+runColumns+`
		FROM runs
		WHERE input_hash = ? AND taxonomy_hash = ? AND match_mode = ?
		ORDER BY run_id DESC
		LIMIT 1
	`, inputHash, taxonomyHash, matchMode))
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to find run: %w", err)
	}
	return run, true, nil
}

// LatestRunID returns the id of the newest run.
func (db *DB) LatestRunID() (int64, error) {
	var id int64
	err := db.QueryRow(`SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: no runs recorded", ErrRunNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return id, nil
}
