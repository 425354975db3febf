// Package cpmodel is a backend-neutral description of a constraint model over
// boolean and bounded integer variables, together with the Solver capability
// that any search backend must provide to solve it.
package cpmodel

import (
	"fmt"
)

// Var is a handle to a variable in a Model. Handles are dense and start at 0
// in creation order.
type Var int

// VarKind distinguishes boolean decision variables from bounded integers
type VarKind int

const (
	KindBool VarKind = iota
	KindInt
)

// Variable describes a single model variable and its domain
type Variable struct {
	Name string
	Kind VarKind
	Lo   int64
	Hi   int64
}

// ConstraintKind identifies the shape of a constraint
type ConstraintKind int

const (
	// ExactlyOne requires exactly one of Vars to be true
	ExactlyOne ConstraintKind = iota
	// LessOrEqual requires Expr <= RHS
	LessOrEqual
)

// Constraint is one constraint of the model.
// Family groups constraints that were emitted by the same rule so that
// presolve and diagnostics can reason about them together.
type Constraint struct {
	Kind   ConstraintKind
	Family string
	Vars   []Var
	Expr   LinearExpr
	RHS    int64
}

// Model collects variables, constraints and an optional minimisation objective
type Model struct {
	vars        []Variable
	constraints []Constraint
	objective   *LinearExpr

	hints     []Hint
	hintIndex map[Var]int
	groups    []Group
}

// NewModel returns an empty model
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar adds a boolean variable
func (m *Model) NewBoolVar(name string) Var {
	m.vars = append(m.vars, Variable{Name: name, Kind: KindBool, Lo: 0, Hi: 1})
	return Var(len(m.vars) - 1)
}

// NewIntVar adds an integer variable with the inclusive domain [lo, hi]
func (m *Model) NewIntVar(lo, hi int64, name string) (Var, error) {
	if lo > hi {
		return 0, fmt.Errorf("empty domain [%d, %d] for variable %q", lo, hi, name)
	}
	m.vars = append(m.vars, Variable{Name: name, Kind: KindInt, Lo: lo, Hi: hi})
	return Var(len(m.vars) - 1), nil
}

// AddExactlyOne requires exactly one of vars to be true. All vars must be boolean.
func (m *Model) AddExactlyOne(family string, vars ...Var) {
	m.constraints = append(m.constraints, Constraint{
		Kind:   ExactlyOne,
		Family: family,
		Vars:   append([]Var(nil), vars...),
	})
}

// AddLessOrEqual requires expr <= rhs
func (m *Model) AddLessOrEqual(family string, expr LinearExpr, rhs int64) {
	m.constraints = append(m.constraints, Constraint{
		Kind:   LessOrEqual,
		Family: family,
		Expr:   expr.clone(),
		RHS:    rhs,
	})
}

// AddGreaterOrEqual requires expr >= rhs
func (m *Model) AddGreaterOrEqual(family string, expr LinearExpr, rhs int64) {
	m.AddLessOrEqual(family, expr.Negate(), -rhs)
}

// AddEquality requires expr == rhs, expressed as two inequalities
func (m *Model) AddEquality(family string, expr LinearExpr, rhs int64) {
	m.AddLessOrEqual(family, expr, rhs)
	m.AddGreaterOrEqual(family, expr, rhs)
}

// Minimize sets the objective. A later call replaces the earlier one.
func (m *Model) Minimize(expr LinearExpr) {
	obj := expr.clone()
	m.objective = &obj
}

// Variables returns the variables in handle order
func (m *Model) Variables() []Variable {
	return m.vars
}

// Variable returns the description of v
func (m *Model) Variable(v Var) Variable {
	return m.vars[v]
}

// NumVars returns the number of variables
func (m *Model) NumVars() int {
	return len(m.vars)
}

// Constraints returns the constraints in insertion order
func (m *Model) Constraints() []Constraint {
	return m.constraints
}

// Objective returns the minimisation objective if one was set
func (m *Model) Objective() (LinearExpr, bool) {
	if m.objective == nil {
		return LinearExpr{}, false
	}
	return *m.objective, true
}

// Validate checks that every constraint refers to existing variables and that
// exactly-one constraints only contain booleans
func (m *Model) Validate() error {
	for i, c := range m.constraints {
		switch c.Kind {
		case ExactlyOne:
			if len(c.Vars) == 0 {
				return fmt.Errorf("constraint %d (%s): exactly-one over no variables", i, c.Family)
			}
			for _, v := range c.Vars {
				if err := m.checkVar(v); err != nil {
					return fmt.Errorf("constraint %d (%s): %w", i, c.Family, err)
				}
				if m.vars[v].Kind != KindBool {
					return fmt.Errorf("constraint %d (%s): exactly-one over non-boolean variable %q", i, c.Family, m.vars[v].Name)
				}
			}
		case LessOrEqual:
			for _, t := range c.Expr.Terms {
				if err := m.checkVar(t.Var); err != nil {
					return fmt.Errorf("constraint %d (%s): %w", i, c.Family, err)
				}
			}
		default:
			return fmt.Errorf("constraint %d (%s): unknown kind %d", i, c.Family, c.Kind)
		}
	}

	if m.objective != nil {
		for _, t := range m.objective.Terms {
			if err := m.checkVar(t.Var); err != nil {
				return fmt.Errorf("objective: %w", err)
			}
		}
	}

	for _, h := range m.hints {
		if err := m.checkVar(h.Var); err != nil {
			return fmt.Errorf("hint: %w", err)
		}
		if v := m.vars[h.Var]; h.Value < v.Lo || h.Value > v.Hi {
			return fmt.Errorf("hint for %q: %d outside [%d, %d]", v.Name, h.Value, v.Lo, v.Hi)
		}
	}

	for _, g := range m.groups {
		for _, v := range g.Vars {
			if err := m.checkVar(v); err != nil {
				return fmt.Errorf("group %s: %w", g.Name, err)
			}
		}
	}

	return nil
}

func (m *Model) checkVar(v Var) error {
	if v < 0 || int(v) >= len(m.vars) {
		return fmt.Errorf("unknown variable %d", v)
	}
	return nil
}
