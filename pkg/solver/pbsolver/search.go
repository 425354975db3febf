package pbsolver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/crillab/gophersat/solver"
	"go.uber.org/zap"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
)

// familyObjectiveBound names the constraint that asks a move for a strictly
// lower objective
const familyObjectiveBound = "objective_bound"

// incumbent turns the model's hints into a full assignment. Hinted variables
// are fixed and the rest are completed as in complete. It returns false when
// the model has no hints or they cannot be completed.
func (s *Solver) incumbent(m *cpmodel.Model, cons []linear) ([]int64, bool, error) {
	hints := m.Hints()
	if len(hints) == 0 {
		return nil, false, nil
	}

	doms := modelDomains(m)
	for _, h := range hints {
		doms[h.Var] = domain{lo: h.Value, hi: h.Value}
	}

	values, status, err := s.complete(m, cons, doms, nil)
	if err != nil {
		return nil, false, err
	}
	if status != solver.Sat {
		s.logger.Info("Hinted assignment cannot be completed", zap.Int("hints", len(hints)))
		return nil, false, nil
	}
	return values, true, nil
}

// complete finds an assignment within doms that satisfies the model and
// extra. Propagation runs first. When the domains it leaves already give an
// assignment that works, no search is needed; otherwise gophersat searches
// what remains on the calling goroutine.
func (s *Solver) complete(m *cpmodel.Model, cons []linear, doms []domain, extra []cpmodel.Constraint) ([]int64, solver.Status, error) {
	if len(extra) > 0 {
		cons = append(cons[:len(cons):len(cons)], linearise(extra)...)
	}
	if !tighten(cons, doms) {
		return nil, solver.Unsat, nil
	}

	values := leanest(m, doms)
	if satisfies(m, extra, values) {
		return values, solver.Sat, nil
	}

	enc, err := encodeWithin(m, doms, extra)
	if errors.Is(err, errTriviallyFalse) {
		return nil, solver.Unsat, nil
	}
	if err != nil {
		return nil, solver.Indet, err
	}
	if enc.nbVars == 0 {
		return nil, solver.Unsat, nil
	}

	pb := solver.New(enc.problem())
	if status := pb.Solve(); status != solver.Sat {
		return nil, status, nil
	}

	values = enc.values(pb.Model())
	if !satisfies(m, extra, values) {
		return nil, solver.Indet, fmt.Errorf("search returned an assignment that breaks the model")
	}
	return values, solver.Sat, nil
}

// improve runs a large neighbourhood search from best. Each move fixes every
// group except a pair to its value in best and asks for a strictly lower
// objective. It stops when ctx is done, when the objective reaches its lower
// bound, or after a round of moves with no improvement. The flag is true only
// when best is proven optimal.
func (s *Solver) improve(ctx context.Context, m *cpmodel.Model, cons []linear, best []int64) ([]int64, bool, error) {
	objective, ok := m.Objective()
	if !ok {
		return best, true, nil
	}

	value := objective.Eval(best)
	lower := lowerBound(objective, modelDomains(m))
	groups := m.Groups()
	moves := s.moves(len(groups))

	for idle, next := 0, 0; idle < len(moves); next = (next + 1) % len(moves) {
		if value <= lower {
			return best, true, nil
		}
		if ctx.Err() != nil {
			return best, false, nil
		}

		move := moves[next]
		bound := cpmodel.Constraint{
			Kind:   cpmodel.LessOrEqual,
			Family: familyObjectiveBound,
			Expr:   objective,
			RHS:    value - 1,
		}

		values, status, err := s.complete(m, cons, neighbourhood(m, groups, move, best), []cpmodel.Constraint{bound})
		if err != nil {
			return best, false, err
		}

		switch {
		case status == solver.Sat:
			best, value, idle = values, objective.Eval(values), 0
			s.logger.Debug("Found improving assignment",
				zap.Int64("objective", value),
				zap.Strings("groups", groupNames(groups, move)))
		case status == solver.Unsat && len(move) == len(groups):
			// every group was free, so no better assignment exists
			return best, true, nil
		default:
			idle++
		}
	}

	return best, value <= lower, nil
}

// moves lists the neighbourhoods over n groups in seeded random order.
// Each is a pair of groups, or all of them when there are two or fewer.
func (s *Solver) moves(n int) [][]int {
	if n == 0 {
		return nil
	}
	if n <= 2 {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return [][]int{all}
	}

	moves := make([][]int, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			moves = append(moves, []int{i, j})
		}
	}

	rng := rand.New(rand.NewSource(s.seed))
	rng.Shuffle(len(moves), func(a, b int) {
		moves[a], moves[b] = moves[b], moves[a]
	})
	return moves
}

// neighbourhood returns the model's domains with every grouped variable
// outside the move fixed to its value in best
func neighbourhood(m *cpmodel.Model, groups []cpmodel.Group, move []int, best []int64) []domain {
	free := make(map[cpmodel.Var]bool)
	for _, g := range move {
		for _, v := range groups[g].Vars {
			free[v] = true
		}
	}

	doms := modelDomains(m)
	for _, g := range groups {
		for _, v := range g.Vars {
			if !free[v] {
				doms[v] = domain{lo: best[v], hi: best[v]}
			}
		}
	}
	return doms
}

func groupNames(groups []cpmodel.Group, move []int) []string {
	names := make([]string, len(move))
	for i, g := range move {
		names[i] = groups[g].Name
	}
	return names
}

// leanest reads an assignment off doms, taking for each variable the end of
// its domain that lowers the objective
func leanest(m *cpmodel.Model, doms []domain) []int64 {
	coefs := make(map[cpmodel.Var]int64)
	if objective, ok := m.Objective(); ok {
		for _, t := range objective.Merged().Terms {
			coefs[t.Var] = t.Coef
		}
	}

	values := make([]int64, len(doms))
	for v, d := range doms {
		values[v] = d.lo
		if coefs[cpmodel.Var(v)] < 0 {
			values[v] = d.hi
		}
	}
	return values
}

// satisfies checks values against the model and the extra upper bounds
func satisfies(m *cpmodel.Model, extra []cpmodel.Constraint, values []int64) bool {
	if m.Check(values) != nil {
		return false
	}
	for _, c := range extra {
		if c.Expr.Eval(values) > c.RHS {
			return false
		}
	}
	return true
}
