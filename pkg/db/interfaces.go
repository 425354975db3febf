package db

import (
	"context"
	"time"
)

// RunStore defines the database operations on scheduling runs
type RunStore interface {
	InsertRun(ctx context.Context, run *Run, assignments []Assignment) error
	GetRuns(ctx context.Context) ([]Run, error)
	GetAssignments(ctx context.Context, runID string) ([]Assignment, error)
	SetRunPublishedAt(ctx context.Context, runID string, publishedAt time.Time) error
}
