package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are re-run on every open,
// so each one is idempotent or tolerated when its column already exists.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillSourcePath(db); err != nil {
		return fmt.Errorf("backfilling runs.source_path: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id                TEXT PRIMARY KEY,
		dataset           TEXT NOT NULL,
		status            TEXT NOT NULL
		                  CHECK(status IN ('optimal','feasible','infeasible','unknown','model_invalid')),
		objective         INTEGER NOT NULL DEFAULT 0,
		solution_count    INTEGER NOT NULL DEFAULT 0,
		tie_break_applied INTEGER NOT NULL DEFAULT 0,
		nodes             INTEGER NOT NULL DEFAULT 0,
		wall_ms           INTEGER NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_dataset ON runs(dataset)`,

	`CREATE TABLE IF NOT EXISTS run_solutions (
		run_id          TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		rank            INTEGER NOT NULL,
		discovery_index INTEGER NOT NULL,
		makespan        INTEGER NOT NULL,
		tiebreak_score  INTEGER NOT NULL,
		PRIMARY KEY (run_id, rank)
	)`,

	`CREATE TABLE IF NOT EXISTS run_assignments (
		run_id     TEXT NOT NULL,
		rank       INTEGER NOT NULL,
		project_id INTEGER NOT NULL,
		job_id     INTEGER NOT NULL,
		start      INTEGER NOT NULL,
		"end"      INTEGER NOT NULL,
		PRIMARY KEY (run_id, rank, project_id, job_id),
		FOREIGN KEY (run_id, rank) REFERENCES run_solutions(run_id, rank) ON DELETE CASCADE
	)`,

	// v2: where the dataset came from and how its rows were laid out.
	`ALTER TABLE runs ADD COLUMN source_path TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE runs ADD COLUMN row_layout TEXT NOT NULL DEFAULT 'stride'`,
}

// migrateBackfillSourcePath fills source_path for runs recorded before the
// column existed; the dataset name was the file path then.
func migrateBackfillSourcePath(db *sql.DB) error {
	_, err := db.Exec(`UPDATE runs SET source_path = dataset WHERE source_path = ''`)
	return err
}
