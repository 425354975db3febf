package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/intern-rota/pkg/db"
)

// InsertRun stores a run and its assignments in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, assignments []db.Assignment) error {
	id, err := uuid.Parse(run.ID)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", run.ID, err)
	}

	return pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO run (id, created_at, interns, start_date, status, fairness, objective, reason, solve_millis)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, id, run.CreatedAt.UTC(), run.Interns, run.StartDate, run.Status,
			run.Fairness, run.Objective, run.Reason, run.SolveMillis)
		if err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}

		if len(assignments) == 0 {
			return nil
		}

		rows := make([][]any, len(assignments))
		for i, a := range assignments {
			rows[i] = []any{id, a.Day, a.Shift, a.Intern}
		}

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"assignment"},
			[]string{"run_id", "day", "shift", "intern"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignments: %w", err)
		}

		return nil
	})
}

// GetRuns retrieves all runs, newest first
func (d *DB) GetRuns(ctx context.Context) ([]db.Run, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, created_at, interns, start_date, status, fairness, objective, reason, solve_millis, published_at
		FROM run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.Run
	for rows.Next() {
		var r db.Run
		var startDate time.Time
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Interns, &startDate, &r.Status,
			&r.Fairness, &r.Objective, &r.Reason, &r.SolveMillis, &r.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartDate = startDate.Format("2006-01-02")
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetAssignments retrieves the assignments of a run in no particular order
func (d *DB) GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT run_id, day, shift, intern
		FROM assignment
		WHERE run_id = $1
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}

	assignments, err := pgx.CollectRows(rows, pgx.RowToStructByPos[db.Assignment])
	if err != nil {
		return nil, fmt.Errorf("failed to scan assignments: %w", err)
	}

	return assignments, nil
}

// SetRunPublishedAt records when a run was published
func (d *DB) SetRunPublishedAt(ctx context.Context, runID string, publishedAt time.Time) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE run SET published_at = $2 WHERE id = $1
	`, runID, publishedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to set run published_at: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}
	return nil
}
