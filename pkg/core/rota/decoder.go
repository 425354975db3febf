package rota

import (
	"fmt"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

// Decode turns a solved assignment into a schedule ordered by day, shift and
// intern. It fails if any slot has no intern or more than one, which means the
// solution does not honour the coverage constraints.
func Decode(enc *Encoding, solution *cpmodel.Solution) (*Schedule, error) {
	if solution == nil || !solution.Status.HasSolution() {
		return nil, fmt.Errorf("cannot decode a solution without values")
	}

	assignments := make([]Assignment, 0, SlotsPerIntern)
	for d := 0; d < shifts.Days; d++ {
		for _, s := range shifts.All {
			staffed := 0
			for i := 0; i < enc.Interns; i++ {
				if solution.BoolValue(enc.Var(i, d, s)) {
					assignments = append(assignments, Assignment{Day: d, Shift: s, Intern: i})
					staffed++
				}
			}
			if staffed != 1 {
				return nil, fmt.Errorf("day %d %s has %d interns assigned, want exactly one", d, s, staffed)
			}
		}
	}

	return NewSchedule(enc.Interns, assignments), nil
}
