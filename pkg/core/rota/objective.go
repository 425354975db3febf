package rota

import (
	"fmt"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

// DiffBound bounds the pairwise workload differences and the fairness value, in scaled units
const DiffBound = 1000

// Constraint families emitted by the objective
const (
	FamilyTotalDiff     = "total_diff"
	FamilyFairnessBound = "fairness_bound"
)

// PairDiff is the variable holding total[I] - total[J]
type PairDiff struct {
	I, J int
	Var  cpmodel.Var
}

// Objective is the fairness objective attached to a model
type Objective struct {
	// Totals holds each intern's workload over the whole rotation
	Totals []cpmodel.LinearExpr

	Diffs []PairDiff

	// Fairness is bounded below by |diff| for every pair and minimised
	Fairness cpmodel.Var
}

// BuildObjective adds the fairness objective to the encoding's model.
// Both fairness >= diff and fairness >= -diff are posted for every pair
// unconditionally, so at the optimum fairness equals the largest gap.
func BuildObjective(enc *Encoding) (*Objective, error) {
	m := enc.Model
	obj := &Objective{Totals: make([]cpmodel.LinearExpr, enc.Interns)}

	for i := 0; i < enc.Interns; i++ {
		obj.Totals[i] = enc.Units(i, 0, shifts.Days)
	}

	fairness, err := m.NewIntVar(0, DiffBound, "fairness_value")
	if err != nil {
		return nil, fmt.Errorf("failed to create fairness variable: %w", err)
	}
	obj.Fairness = fairness

	for i := 0; i < enc.Interns; i++ {
		for j := i + 1; j < enc.Interns; j++ {
			diff, err := m.NewIntVar(-DiffBound, DiffBound, fmt.Sprintf("diff_%d_%d", i, j))
			if err != nil {
				return nil, fmt.Errorf("failed to create diff variable: %w", err)
			}

			// total_i - total_j - diff == 0
			m.AddEquality(FamilyTotalDiff, obj.Totals[i].Minus(obj.Totals[j]).Minus(cpmodel.Sum(diff)), 0)

			// diff - fairness <= 0 and -diff - fairness <= 0
			m.AddLessOrEqual(FamilyFairnessBound, cpmodel.Sum(diff).Minus(cpmodel.Sum(fairness)), 0)
			m.AddLessOrEqual(FamilyFairnessBound, cpmodel.Sum(diff).Negate().Minus(cpmodel.Sum(fairness)), 0)

			obj.Diffs = append(obj.Diffs, PairDiff{I: i, J: j, Var: diff})
		}
	}

	m.Minimize(cpmodel.Sum(fairness))

	return obj, nil
}
