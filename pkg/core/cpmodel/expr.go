package cpmodel

// Term is a single coefficient * variable product
type Term struct {
	Var  Var
	Coef int64
}

// LinearExpr is sum(Coef * Var) + Offset
type LinearExpr struct {
	Terms  []Term
	Offset int64
}

// Sum returns the expression v1 + v2 + ...
func Sum(vars ...Var) LinearExpr {
	e := LinearExpr{Terms: make([]Term, 0, len(vars))}
	for _, v := range vars {
		e.Terms = append(e.Terms, Term{Var: v, Coef: 1})
	}
	return e
}

// WeightedSum returns sum(coefs[i] * vars[i]). Both slices must have the same length.
func WeightedSum(vars []Var, coefs []int64) LinearExpr {
	e := LinearExpr{Terms: make([]Term, 0, len(vars))}
	for i, v := range vars {
		e.Terms = append(e.Terms, Term{Var: v, Coef: coefs[i]})
	}
	return e
}

// AddTerm appends coef * v to the expression in place
func (e *LinearExpr) AddTerm(v Var, coef int64) {
	e.Terms = append(e.Terms, Term{Var: v, Coef: coef})
}

// Plus returns e + o
func (e LinearExpr) Plus(o LinearExpr) LinearExpr {
	out := LinearExpr{
		Terms:  make([]Term, 0, len(e.Terms)+len(o.Terms)),
		Offset: e.Offset + o.Offset,
	}
	out.Terms = append(out.Terms, e.Terms...)
	out.Terms = append(out.Terms, o.Terms...)
	return out
}

// Minus returns e - o
func (e LinearExpr) Minus(o LinearExpr) LinearExpr {
	return e.Plus(o.Negate())
}

// Negate returns -e
func (e LinearExpr) Negate() LinearExpr {
	out := LinearExpr{Terms: make([]Term, len(e.Terms)), Offset: -e.Offset}
	for i, t := range e.Terms {
		out.Terms[i] = Term{Var: t.Var, Coef: -t.Coef}
	}
	return out
}

// Eval computes the value of the expression for an assignment indexed by Var
func (e LinearExpr) Eval(values []int64) int64 {
	total := e.Offset
	for _, t := range e.Terms {
		total += t.Coef * values[t.Var]
	}
	return total
}

// Merged returns an equivalent expression with at most one term per variable
// and no zero coefficients. Term order follows first appearance.
func (e LinearExpr) Merged() LinearExpr {
	index := make(map[Var]int, len(e.Terms))
	out := LinearExpr{Offset: e.Offset}
	for _, t := range e.Terms {
		if i, ok := index[t.Var]; ok {
			out.Terms[i].Coef += t.Coef
			continue
		}
		index[t.Var] = len(out.Terms)
		out.Terms = append(out.Terms, t)
	}

	kept := out.Terms[:0]
	for _, t := range out.Terms {
		if t.Coef != 0 {
			kept = append(kept, t)
		}
	}
	out.Terms = kept
	return out
}

func (e LinearExpr) clone() LinearExpr {
	return LinearExpr{Terms: append([]Term(nil), e.Terms...), Offset: e.Offset}
}
