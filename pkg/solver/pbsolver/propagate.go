package pbsolver

import "github.com/jakechorley/intern-rota/pkg/core/cpmodel"

// maxRounds bounds the passes tighten makes over the constraints
const maxRounds = 32

// linear is sum(terms) <= rhs
type linear struct {
	terms []cpmodel.Term
	rhs   int64
}

func upperBound(expr cpmodel.LinearExpr, rhs int64) linear {
	merged := expr.Merged()
	return linear{terms: merged.Terms, rhs: rhs - merged.Offset}
}

// linearise rewrites every constraint as one or two upper bounds
func linearise(constraints []cpmodel.Constraint) []linear {
	out := make([]linear, 0, len(constraints))
	for _, c := range constraints {
		switch c.Kind {
		case cpmodel.ExactlyOne:
			sum := cpmodel.Sum(c.Vars...)
			out = append(out, upperBound(sum, 1), upperBound(sum.Negate(), -1))
		case cpmodel.LessOrEqual:
			out = append(out, upperBound(c.Expr, c.RHS))
		}
	}
	return out
}

// tighten shrinks doms in place by interval reasoning over every constraint
// until a pass changes nothing. It returns false when a constraint cannot hold
// within doms, which proves no assignment exists.
func tighten(cons []linear, doms []domain) bool {
	for round := 0; round < maxRounds; round++ {
		changed := false
		for _, c := range cons {
			var least int64
			for _, t := range c.terms {
				least += minTerm(t, doms[t.Var])
			}
			if least > c.rhs {
				return false
			}

			for _, t := range c.terms {
				d := &doms[t.Var]
				if d.lo == d.hi {
					continue
				}

				// t.Coef * x <= slack
				slack := c.rhs - least + minTerm(t, *d)
				if t.Coef > 0 {
					if hi := floorDiv(slack, t.Coef); hi < d.hi {
						d.hi = hi
						changed = true
					}
				} else {
					if lo := -floorDiv(slack, -t.Coef); lo > d.lo {
						d.lo = lo
						changed = true
					}
				}
				if d.lo > d.hi {
					return false
				}
			}
		}
		if !changed {
			break
		}
	}
	return true
}

// minTerm is the smallest value t takes over d
func minTerm(t cpmodel.Term, d domain) int64 {
	if t.Coef > 0 {
		return t.Coef * d.lo
	}
	return t.Coef * d.hi
}

// floorDiv divides rounding towards negative infinity. b must be positive.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// lowerBound is the least value expr takes over doms
func lowerBound(expr cpmodel.LinearExpr, doms []domain) int64 {
	merged := expr.Merged()
	least := merged.Offset
	for _, t := range merged.Terms {
		least += minTerm(t, doms[t.Var])
	}
	return least
}
