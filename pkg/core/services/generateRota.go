package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/rota/rules"
	"github.com/jakechorley/intern-rota/pkg/db"
)

// GenerateParams describes one scheduling request
type GenerateParams struct {
	Interns int

	// StartDate is the calendar date of day 0; zero means next Sunday
	StartDate time.Time

	// DryRun solves without persisting the run
	DryRun bool

	// Rules defaults to rules.Default()
	Rules []rota.Rule
}

// GenerateRotaResult is a solved request and the run record describing it
type GenerateRotaResult struct {
	Run    *db.Run
	Result *rota.Result
}

// GenerateRotaStore defines the database operations needed for generating a rota
type GenerateRotaStore interface {
	InsertRun(ctx context.Context, run *db.Run, assignments []db.Assignment) error
}

// GenerateRota solves a rota for params.Interns interns and records the run.
// Infeasible and indeterminate outcomes are recorded without assignments. The run is
// not stored when params.DryRun is set or store is nil.
func GenerateRota(
	ctx context.Context,
	store GenerateRotaStore,
	solver cpmodel.Solver,
	logger *zap.Logger,
	params GenerateParams,
) (*GenerateRotaResult, error) {
	if params.Interns <= 0 {
		return nil, &rota.ConfigurationError{Field: "interns", Reason: fmt.Sprintf("must be positive, got %d", params.Interns)}
	}

	ruleSet := params.Rules
	if len(ruleSet) == 0 {
		ruleSet = rules.Default()
	}

	startDate := params.StartDate
	if startDate.IsZero() {
		startDate = nextSunday(time.Now())
	}

	logger.Info("Generating rota",
		zap.Int("interns", params.Interns),
		zap.String("start_date", startDate.Format(dateLayout)),
		zap.Int("rules", len(ruleSet)))

	started := time.Now()
	result, err := rota.Generate(ctx, solver, params.Interns, ruleSet)
	elapsed := time.Since(started)
	if err != nil {
		return nil, fmt.Errorf("failed to generate rota: %w", err)
	}

	logger.Info("Solver finished",
		zap.String("status", result.Status.String()),
		zap.Duration("elapsed", elapsed),
		zap.Int("variables", result.Variables),
		zap.Int("constraints", result.Constraints))

	run := &db.Run{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		Interns:     params.Interns,
		StartDate:   startDate.Format(dateLayout),
		Status:      result.Status.String(),
		Reason:      result.Reason,
		SolveMillis: elapsed.Milliseconds(),
	}

	var assignments []db.Assignment
	if result.Schedule != nil {
		fairness, objective := result.Fairness, result.Objective
		run.Fairness = &fairness
		run.Objective = &objective
		assignments = toDBAssignments(run.ID, result.Schedule)

		logger.Info("Rota generated",
			zap.Int64("fairness", fairness),
			zap.Int64("objective", objective),
			zap.Int("assignments", len(assignments)))
	} else {
		logger.Warn("No rota produced", zap.String("status", run.Status), zap.String("reason", run.Reason))
	}

	if params.DryRun || store == nil {
		logger.Debug("Skipping run persistence", zap.Bool("dry_run", params.DryRun))
		return &GenerateRotaResult{Run: run, Result: result}, nil
	}

	if err := store.InsertRun(ctx, run, assignments); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}
	logger.Debug("Run saved", zap.String("run_id", run.ID))

	return &GenerateRotaResult{Run: run, Result: result}, nil
}

func toDBAssignments(runID string, schedule *rota.Schedule) []db.Assignment {
	assignments := make([]db.Assignment, 0, schedule.Len())
	for _, a := range schedule.Assignments {
		assignments = append(assignments, db.Assignment{
			RunID:  runID,
			Day:    a.Day,
			Shift:  a.Shift.String(),
			Intern: a.Intern,
		})
	}
	return assignments
}
