package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/rcpsp/internal/db"
	"github.com/alexanderramin/rcpsp/internal/domain"
)

const runColumns = `id, dataset, source_path, row_layout, status, objective,
		solution_count, tie_break_applied, nodes, wall_ms, created_at`

// SQLiteRunRepo implements RunRepo using a SQLite database.
type SQLiteRunRepo struct {
	db db.DBTX
}

func NewSQLiteRunRepo(conn db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: conn}
}

// Create writes the run row, then one row per ranked solution and one per
// job assignment. Callers wanting all-or-nothing semantics bind the repo to
// a transaction.
func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.Run, solutions []domain.RankedSolution) error {
	query := `INSERT INTO runs (` + runColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Dataset,
		run.SourcePath,
		string(run.RowLayout),
		string(run.Status),
		run.Objective,
		run.SolutionCount,
		boolToInt(run.TieBreakApplied),
		run.Nodes,
		run.WallTime.Milliseconds(),
		formatTime(run.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, rs := range solutions {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO run_solutions (run_id, rank, discovery_index, makespan, tiebreak_score)
			VALUES (?, ?, ?, ?, ?)`,
			run.ID, rs.Rank, rs.Solution.Index, rs.Solution.Makespan, rs.TieBreakScore)
		if err != nil {
			return fmt.Errorf("inserting solution rank %d: %w", rs.Rank, err)
		}
		for _, key := range rs.Solution.Assignment.Keys() {
			span := rs.Solution.Assignment[key]
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO run_assignments (run_id, rank, project_id, job_id, start, "end")
				VALUES (?, ?, ?, ?, ?, ?)`,
				run.ID, rs.Rank, key.ProjectID, key.JobID, span.Start, span.End)
			if err != nil {
				return fmt.Errorf("inserting assignment %s of rank %d: %w", key, rs.Rank, err)
			}
		}
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	return run, nil
}

func (r *SQLiteRunRepo) ResolveID(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("run id: %w", ErrNotFound)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE substr(id, 1, ?) = ? ORDER BY id LIMIT 2`, len(prefix), prefix)
	if err != nil {
		return "", fmt.Errorf("resolving run id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scanning run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating run ids: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("run %s: %w", prefix, ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("run %s: %w", prefix, ErrAmbiguousID)
	}
}

func (r *SQLiteRunRepo) List(ctx context.Context, limit int) ([]*domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// ListSolutions returns the run's solutions in rank order with their
// assignments. A run without solutions yields an empty slice; an unknown
// run yields ErrNotFound.
func (r *SQLiteRunRepo) ListSolutions(ctx context.Context, runID string) ([]domain.RankedSolution, error) {
	if _, err := r.GetByID(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT rank, discovery_index, makespan, tiebreak_score
		FROM run_solutions WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing solutions: %w", err)
	}
	var out []domain.RankedSolution
	byRank := make(map[int]int)
	for rows.Next() {
		var rs domain.RankedSolution
		if err := rows.Scan(&rs.Rank, &rs.Solution.Index, &rs.Solution.Makespan, &rs.TieBreakScore); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning solution row: %w", err)
		}
		rs.Solution.Assignment = make(domain.Assignment)
		byRank[rs.Rank] = len(out)
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating solutions: %w", err)
	}
	rows.Close()

	arows, err := r.db.QueryContext(ctx,
		`SELECT rank, project_id, job_id, start, "end"
		FROM run_assignments WHERE run_id = ? ORDER BY rank, project_id, job_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer arows.Close()
	for arows.Next() {
		var (
			rank int
			key  domain.JobKey
			span domain.Span
		)
		if err := arows.Scan(&rank, &key.ProjectID, &key.JobID, &span.Start, &span.End); err != nil {
			return nil, fmt.Errorf("scanning assignment row: %w", err)
		}
		if i, ok := byRank[rank]; ok {
			out[i].Solution.Assignment[key] = span
		}
	}
	if err := arows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}

func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.Run, error) {
	var (
		run       domain.Run
		layout    string
		status    string
		tieBreak  int
		wallMS    int64
		createdAt string
	)
	err := row.Scan(
		&run.ID, &run.Dataset, &run.SourcePath, &layout, &status, &run.Objective,
		&run.SolutionCount, &tieBreak, &run.Nodes, &wallMS, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	run.RowLayout = domain.RowLayout(layout)
	run.Status = domain.SolveStatus(status)
	run.TieBreakApplied = intToBool(tieBreak)
	run.WallTime = time.Duration(wallMS) * time.Millisecond
	run.CreatedAt = parseTime(createdAt)
	return &run, nil
}
