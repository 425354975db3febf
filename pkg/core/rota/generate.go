package rota

import (
	"context"
	"fmt"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
)

// Result is the outcome of one scheduling request.
// INFEASIBLE and UNKNOWN are ordinary results with a nil Schedule; only
// configuration problems and solver faults are returned as errors.
type Result struct {
	Status cpmodel.Status

	// Schedule is set when Status is OPTIMAL or FEASIBLE
	Schedule *Schedule

	// Fairness is the largest gap in total scaled workload between two interns
	Fairness int64

	// Objective is the fairness value reported by the solver, an upper bound on Fairness
	Objective int64

	// Reason carries the solver's explanation for INFEASIBLE or UNKNOWN
	Reason string

	Variables   int
	Constraints int
}

// Infeasible reports whether no schedule satisfies every hard rule
func (r *Result) Infeasible() bool {
	return r.Status == cpmodel.StatusInfeasible
}

// Indeterminate reports whether the solver stopped before finding any schedule
func (r *Result) Indeterminate() bool {
	return r.Status == cpmodel.StatusUnknown
}

// BuildModel creates the full model for interns interns: assignment variables,
// every rule's constraints and the fairness objective. Each intern's variables
// form one group, and when Construct finds a schedule it is posted as the hint.
func BuildModel(interns int, rules []Rule) (*Encoding, *Objective, error) {
	if interns <= 0 {
		return nil, nil, &ConfigurationError{Field: "interns", Reason: fmt.Sprintf("must be positive, got %d", interns)}
	}
	if len(rules) == 0 {
		return nil, nil, &ConfigurationError{Field: "rules", Reason: "must not be empty"}
	}

	enc := NewEncoding(cpmodel.NewModel(), interns)
	for _, r := range rules {
		r.Encode(enc)
	}

	obj, err := BuildObjective(enc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build objective: %w", err)
	}

	enc.Group()
	if seed, ok := Construct(interns, rules); ok {
		enc.Hint(seed)
	}

	return enc, obj, nil
}

// Generate builds the model, solves it once and decodes the answer.
// The schedule returned for OPTIMAL or FEASIBLE has been checked against
// every rule.
func Generate(ctx context.Context, solver cpmodel.Solver, interns int, rules []Rule) (*Result, error) {
	if solver == nil {
		return nil, &ConfigurationError{Field: "solver", Reason: "must not be nil"}
	}

	enc, obj, err := BuildModel(interns, rules)
	if err != nil {
		return nil, err
	}

	solution, err := solver.Solve(ctx, enc.Model)
	if err != nil {
		return nil, &SolverFault{Status: cpmodel.StatusError, Err: err}
	}
	if solution == nil {
		return nil, &SolverFault{Err: fmt.Errorf("solver returned no solution")}
	}

	result := &Result{
		Status:      solution.Status,
		Reason:      solution.Reason,
		Variables:   enc.Model.NumVars(),
		Constraints: len(enc.Model.Constraints()),
	}

	switch solution.Status {
	case cpmodel.StatusInfeasible, cpmodel.StatusUnknown:
		return result, nil
	case cpmodel.StatusOptimal, cpmodel.StatusFeasible:
	default:
		return nil, &SolverFault{Status: solution.Status, Err: fmt.Errorf("solver reported %s: %s", solution.Status, solution.Reason)}
	}

	schedule, err := Decode(enc, solution)
	if err != nil {
		return nil, &SolverFault{Status: solution.Status, Err: err}
	}

	if violations := ValidateSchedule(schedule, rules); len(violations) > 0 {
		return nil, &SolverFault{Status: solution.Status, Violations: violations}
	}

	result.Schedule = schedule
	result.Fairness = schedule.Fairness()
	result.Objective = solution.Value(obj.Fairness)

	return result, nil
}
