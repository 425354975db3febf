package cpmodel

import (
	"context"
	"fmt"
)

// Status is the outcome reported by a Solver
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusUnknown:
		return "UNKNOWN"
	case StatusError:
		return "ERROR"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// HasSolution reports whether a solution with this status carries variable values
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// ParseStatus is the inverse of Status.String
func ParseStatus(name string) (Status, error) {
	for _, s := range []Status{StatusOptimal, StatusFeasible, StatusInfeasible, StatusUnknown, StatusError} {
		if s.String() == name {
			return s, nil
		}
	}
	return StatusUnknown, fmt.Errorf("unknown solver status %q", name)
}

// Solution is what a Solver returns for a model
type Solution struct {
	Status Status

	// Values holds one value per model variable when Status.HasSolution()
	Values []int64

	// Objective is the objective value of Values, when the model has one
	Objective int64

	// Reason optionally explains INFEASIBLE or UNKNOWN outcomes
	Reason string
}

// Value returns the value assigned to v
func (s *Solution) Value(v Var) int64 {
	if int(v) >= len(s.Values) {
		return 0
	}
	return s.Values[v]
}

// BoolValue returns true if v is set to a non-zero value
func (s *Solution) BoolValue(v Var) bool {
	return s.Value(v) != 0
}

// Solver is the capability every search backend provides.
// Implementations must not modify the model. When ctx is done before the
// search completes they return the best solution found so far as FEASIBLE, or
// UNKNOWN when there is none. Errors are reserved for backend failures.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Solution, error)
}

// SolverFunc adapts a function to the Solver interface
type SolverFunc func(ctx context.Context, m *Model) (*Solution, error)

func (f SolverFunc) Solve(ctx context.Context, m *Model) (*Solution, error) {
	return f(ctx, m)
}
