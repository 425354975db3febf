package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
	"github.com/jakechorley/intern-rota/pkg/db"
)

// RunReader defines the database reads shared by the run commands
type RunReader interface {
	GetRuns(ctx context.Context) ([]db.Run, error)
	GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error)
}

// RunView is a stored run together with its schedule, if it has one
type RunView struct {
	Run      *db.Run
	Schedule *rota.Schedule
}

// ListRuns returns every stored run, newest first
func ListRuns(ctx context.Context, store RunReader, logger *zap.Logger) ([]db.Run, error) {
	runs, err := store.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	logger.Debug("Fetched runs", zap.Int("count", len(runs)))
	return runs, nil
}

// ViewRun loads a run and rebuilds its schedule. An empty runID selects the latest run.
func ViewRun(ctx context.Context, store RunReader, logger *zap.Logger, runID string) (*RunView, error) {
	return viewRun(ctx, store, logger, runID, false)
}

// ViewScheduledRun is ViewRun for callers that need a schedule. An empty runID
// selects the latest run that produced one, skipping newer INFEASIBLE or UNKNOWN runs.
func ViewScheduledRun(ctx context.Context, store RunReader, logger *zap.Logger, runID string) (*RunView, error) {
	return viewRun(ctx, store, logger, runID, true)
}

func viewRun(ctx context.Context, store RunReader, logger *zap.Logger, runID string, scheduled bool) (*RunView, error) {
	runs, err := store.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	run, err := findRun(runs, runID, scheduled)
	if err != nil {
		return nil, err
	}
	logger.Debug("Viewing run", zap.String("run_id", run.ID), zap.String("status", run.Status))

	if !run.HasSchedule() {
		return &RunView{Run: run}, nil
	}

	assignments, err := store.GetAssignments(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	schedule, err := scheduleFromAssignments(run.Interns, assignments)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild schedule for run %s: %w", run.ID, err)
	}

	return &RunView{Run: run, Schedule: schedule}, nil
}

// scheduleFromAssignments rebuilds a schedule ordered by day then shift
func scheduleFromAssignments(interns int, stored []db.Assignment) (*rota.Schedule, error) {
	assignments := make([]rota.Assignment, 0, len(stored))
	for _, a := range stored {
		shift, err := shifts.Parse(a.Shift)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, rota.Assignment{Day: a.Day, Shift: shift, Intern: a.Intern})
	}

	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].Day != assignments[j].Day {
			return assignments[i].Day < assignments[j].Day
		}
		return assignments[i].Shift < assignments[j].Shift
	})

	return rota.NewSchedule(interns, assignments), nil
}
