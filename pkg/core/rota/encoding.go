// Package rota turns an intern count into a constraint model, hands it to a
// solver and decodes the answer into a schedule.
package rota

import (
	"fmt"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

// SlotsPerIntern is the number of (day, shift) pairs in the rotation
const SlotsPerIntern = shifts.Days * shifts.Count

// VarIndex returns the position of the (intern, day, shift) assignment variable
// in the dense variable table
func VarIndex(intern, day int, shift shifts.Type) int {
	return intern*SlotsPerIntern + day*shifts.Count + int(shift)
}

// Encoding holds the assignment variables of a model, one boolean per
// (intern, day, shift). They are the first variables created in the model so
// that the handle of each equals its VarIndex.
type Encoding struct {
	Model   *cpmodel.Model
	Interns int

	vars []cpmodel.Var
}

// NewEncoding creates the assignment variables for interns interns in m
func NewEncoding(m *cpmodel.Model, interns int) *Encoding {
	enc := &Encoding{
		Model:   m,
		Interns: interns,
		vars:    make([]cpmodel.Var, interns*SlotsPerIntern),
	}

	for i := 0; i < interns; i++ {
		for d := 0; d < shifts.Days; d++ {
			for _, s := range shifts.All {
				enc.vars[VarIndex(i, d, s)] = m.NewBoolVar(fmt.Sprintf("intern_%d_day_%d_%s", i, d, s))
			}
		}
	}

	return enc
}

// Var returns the assignment variable for (intern, day, shift)
func (e *Encoding) Var(intern, day int, shift shifts.Type) cpmodel.Var {
	return e.vars[VarIndex(intern, day, shift)]
}

// SlotVars returns the variables of every intern for one (day, shift)
func (e *Encoding) SlotVars(day int, shift shifts.Type) []cpmodel.Var {
	vars := make([]cpmodel.Var, e.Interns)
	for i := range vars {
		vars[i] = e.Var(i, day, shift)
	}
	return vars
}

// Vars returns the intern's variables for the given shift types on days [from, to)
func (e *Encoding) Vars(intern, from, to int, types []shifts.Type) []cpmodel.Var {
	vars := make([]cpmodel.Var, 0, (to-from)*len(types))
	for d := from; d < to; d++ {
		for _, s := range types {
			vars = append(vars, e.Var(intern, d, s))
		}
	}
	return vars
}

// Units returns the intern's weighted workload over days [from, to) in scaled units
func (e *Encoding) Units(intern, from, to int) cpmodel.LinearExpr {
	var expr cpmodel.LinearExpr
	for d := from; d < to; d++ {
		for _, s := range shifts.All {
			expr.AddTerm(e.Var(intern, d, s), s.Weight())
		}
	}
	return expr
}

// Group declares each intern's variables as one group of the model so a
// search can move shifts between a few interns at a time
func (e *Encoding) Group() {
	for i := 0; i < e.Interns; i++ {
		e.Model.AddGroup(fmt.Sprintf("intern_%d", i), e.Vars(i, 0, shifts.Days, shifts.All)...)
	}
}

// Hint suggests the schedule as the starting point of the search
func (e *Encoding) Hint(schedule *Schedule) {
	for i := 0; i < e.Interns; i++ {
		for d := 0; d < shifts.Days; d++ {
			for _, s := range shifts.All {
				var value int64
				if schedule.Works(i, d, s) {
					value = 1
				}
				e.Model.AddHint(e.Var(i, d, s), value)
			}
		}
	}
}
