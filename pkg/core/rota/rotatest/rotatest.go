// Package rotatest provides schedules and fake solvers for testing code that
// builds or consumes rotas.
package rotatest

import (
	"context"
	"fmt"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

// Interns is the staff size of the fixture schedule.
// Every shift type runs every day, so 60 interns is the smallest staff that
// leaves each intern at most one weekend shift.
const Interns = 60

// Fairness is the workload spread of the fixture schedule in scaled units
const Fairness = 4

// Assignments returns a schedule for Interns interns that satisfies every hard rule.
// Even interns work one Friday night and one weekday night fifteen days apart,
// odd interns work one Saturday night plus one regular weekday and one regular Friday.
func Assignments() []rota.Assignment {
	assignments := make([]rota.Assignment, 0, rota.SlotsPerIntern)
	for d := 0; d < shifts.Days; d++ {
		for _, s := range shifts.All {
			assignments = append(assignments, rota.Assignment{Day: d, Shift: s, Intern: fixtureIntern(d, s)})
		}
	}
	return assignments
}

func fixtureIntern(day int, shift shifts.Type) int {
	switch shift {
	case shifts.NightFriday:
		return 2 * day
	case shifts.NightSaturday:
		return 2*day + 1
	case shifts.NightWeekday:
		return 2 * ((day + 15) % shifts.Days)
	case shifts.RegularWeekday:
		return (2*day + 3) % Interns
	default:
		return (2*day + 5) % Interns
	}
}

// Schedule returns the fixture as a schedule
func Schedule() *rota.Schedule {
	return rota.NewSchedule(Interns, Assignments())
}

// Values builds a full variable assignment for a model produced by rota.BuildModel
// that matches the schedule. Pairwise differences and the fairness variable are
// derived from the schedule's totals.
func Values(m *cpmodel.Model, schedule *rota.Schedule) ([]int64, error) {
	values := make([]int64, m.NumVars())
	totals := schedule.Totals()

	for d := 0; d < shifts.Days; d++ {
		for _, s := range shifts.All {
			for i := 0; i < schedule.Interns; i++ {
				if schedule.Works(i, d, s) {
					values[rota.VarIndex(i, d, s)] = 1
				}
			}
		}
	}

	for v, variable := range m.Variables() {
		if v < schedule.Interns*rota.SlotsPerIntern {
			continue
		}

		var i, j int
		switch {
		case variable.Name == "fairness_value":
			values[v] = schedule.Fairness()
		case scan(variable.Name, "diff_%d_%d", &i, &j):
			values[v] = totals[i] - totals[j]
		default:
			return nil, fmt.Errorf("unexpected variable %q", variable.Name)
		}
	}

	return values, nil
}

func scan(name, format string, args ...any) bool {
	n, err := fmt.Sscanf(name, format, args...)
	return err == nil && n == len(args)
}

// Solver returns a solver that answers every model with the given schedule
// and status, without searching
func Solver(schedule *rota.Schedule, status cpmodel.Status) cpmodel.Solver {
	return cpmodel.SolverFunc(func(ctx context.Context, m *cpmodel.Model) (*cpmodel.Solution, error) {
		values, err := Values(m, schedule)
		if err != nil {
			return nil, err
		}

		objective, _ := m.Objective()
		return &cpmodel.Solution{
			Status:    status,
			Values:    values,
			Objective: objective.Eval(values),
		}, nil
	})
}

// StatusSolver returns a solver that always reports status with no values
func StatusSolver(status cpmodel.Status, reason string) cpmodel.Solver {
	return cpmodel.SolverFunc(func(ctx context.Context, m *cpmodel.Model) (*cpmodel.Solution, error) {
		return &cpmodel.Solution{Status: status, Reason: reason}, nil
	})
}
