package cpmodel

import (
	"fmt"
	"sort"
)

// CapacityConflict describes a constraint family whose combined capacity is
// smaller than the least demand the exactly-one constraints can place on it
type CapacityConflict struct {
	Family   string
	Demand   int64
	Capacity int64
}

func (c *CapacityConflict) String() string {
	return fmt.Sprintf("%s needs at least %d but allows at most %d", c.Family, c.Demand, c.Capacity)
}

// CheckAggregateCapacity runs a surrogate relaxation that can prove a model
// infeasible without search. It returns nil when no conflict was found, which
// does not imply the model is feasible.
//
// For each family of <= constraints whose terms are all non-negative
// coefficients over booleans, the family's constraints are summed into one.
// Every exactly-one group must set one member, so it adds at least the
// smallest summed coefficient among its members to the left-hand side. If
// those minimums exceed the summed right-hand sides, no assignment exists.
// Groups must be pairwise disjoint; otherwise the check is skipped.
func CheckAggregateCapacity(m *Model) *CapacityConflict {
	var groups [][]Var
	owner := make(map[Var]bool)
	for _, c := range m.constraints {
		if c.Kind != ExactlyOne {
			continue
		}
		for _, v := range c.Vars {
			if owner[v] {
				return nil
			}
			owner[v] = true
		}
		groups = append(groups, c.Vars)
	}
	if len(groups) == 0 {
		return nil
	}

	families := make(map[string][]Constraint)
	ineligible := make(map[string]bool)
	for _, c := range m.constraints {
		if c.Kind != LessOrEqual || ineligible[c.Family] {
			continue
		}
		if !m.isPackingConstraint(c) {
			ineligible[c.Family] = true
			delete(families, c.Family)
			continue
		}
		families[c.Family] = append(families[c.Family], c)
	}

	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var capacity int64
		load := make(map[Var]int64)
		for _, c := range families[name] {
			capacity += c.RHS - c.Expr.Offset
			for _, t := range c.Expr.Terms {
				load[t.Var] += t.Coef
			}
		}

		var demand int64
		for _, g := range groups {
			least := load[g[0]]
			for _, v := range g[1:] {
				least = min(least, load[v])
			}
			demand += least
		}

		if demand > capacity {
			return &CapacityConflict{Family: name, Demand: demand, Capacity: capacity}
		}
	}

	return nil
}

func (m *Model) isPackingConstraint(c Constraint) bool {
	for _, t := range c.Expr.Terms {
		if t.Coef < 0 || m.vars[t.Var].Kind != KindBool {
			return false
		}
	}
	return true
}
