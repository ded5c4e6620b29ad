package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs: one row per full pipeline run
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    input_path TEXT NOT NULL,
    input_hash TEXT NOT NULL,
    taxonomy_hash TEXT NOT NULL,
    match_mode TEXT NOT NULL,
    record_count INTEGER NOT NULL DEFAULT 0,
    tag_count INTEGER NOT NULL DEFAULT 0,
    output_dir TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_hash ON runs(input_hash, taxonomy_hash, match_mode);

-- Output files written by a run, in write order
CREATE TABLE IF NOT EXISTS run_outputs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    kind TEXT NOT NULL,
    path TEXT NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_outputs_run ON run_outputs(run_id);

-- Tag-level results of a run
CREATE TABLE IF NOT EXISTS run_tags (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    tag_id TEXT NOT NULL,
    category_id TEXT NOT NULL,
    mention_count INTEGER NOT NULL,
    frequency_pct REAL NOT NULL,
    total_engagement INTEGER NOT NULL,
    average_engagement REAL NOT NULL,
    x_mention_count INTEGER NOT NULL DEFAULT 0,
    truth_mention_count INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_run_tags_run ON run_tags(run_id);
`
