package pbsolver

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/crillab/gophersat/solver"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
)

// errTriviallyFalse marks a constraint that no assignment can satisfy
var errTriviallyFalse = errors.New("constraint can never be satisfied")

// maxIntRange bounds the domain width of an integer variable
const maxIntRange = 1 << 30

// binding maps one model variable to pseudo-boolean variables.
// A variable in [lo, hi] is lo plus a binary number over len(bits) PB
// variables, least significant first, so a free boolean uses a single PB
// variable and a fixed one uses none.
type binding struct {
	lo   int64
	bits []int
}

// encoding is a model translated into pseudo-boolean constraints.
// PB variables are numbered from 1 as gophersat expects.
type encoding struct {
	bindings    []binding
	nbVars      int
	constraints []solver.PBConstr
	costLits    []solver.Lit
	costWeights []int
	costOffset  int64
	hasCost     bool
}

// pbTerm is weight * lit where lit is a signed PB variable
type pbTerm struct {
	lit    int
	weight int64
}

// domain is the inclusive range a variable may take within one encoding
type domain struct {
	lo, hi int64
}

func modelDomains(m *cpmodel.Model) []domain {
	doms := make([]domain, m.NumVars())
	for v, variable := range m.Variables() {
		doms[v] = domain{lo: variable.Lo, hi: variable.Hi}
	}
	return doms
}

// encode translates the whole model, objective included
func encode(m *cpmodel.Model) (*encoding, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}

	enc, err := encodeWithin(m, modelDomains(m), nil)
	if err != nil {
		return nil, err
	}
	if objective, ok := m.Objective(); ok {
		enc.setCost(objective)
	}
	return enc, nil
}

// encodeWithin translates the model's constraints plus extra, with each
// variable restricted to doms. A variable whose domain is a single value
// becomes a constant and uses no PB variables. The objective is left out and
// m must already be valid.
func encodeWithin(m *cpmodel.Model, doms []domain, extra []cpmodel.Constraint) (*encoding, error) {
	enc := &encoding{bindings: make([]binding, m.NumVars())}
	for v, variable := range m.Variables() {
		if err := enc.bind(v, variable, doms[v]); err != nil {
			return nil, err
		}
	}

	constraints := m.Constraints()
	if len(extra) > 0 {
		constraints = append(constraints[:len(constraints):len(constraints)], extra...)
	}
	for i, c := range constraints {
		var err error
		switch c.Kind {
		case cpmodel.ExactlyOne:
			err = enc.addExactlyOne(c.Vars)
		case cpmodel.LessOrEqual:
			err = enc.addLessOrEqual(c.Expr, c.RHS)
		}
		if err != nil {
			return nil, fmt.Errorf("constraint %d (%s): %w", i, c.Family, err)
		}
	}

	// make sure gophersat sizes its model to cover every variable
	if enc.nbVars > 0 {
		enc.constraints = append(enc.constraints, solver.PBConstr{Lits: []int{enc.nbVars}, Weights: []int{1}, AtLeast: 0})
	}

	return enc, nil
}

func (e *encoding) newVar() int {
	e.nbVars++
	return e.nbVars
}

func (e *encoding) bind(v int, variable cpmodel.Variable, d domain) error {
	switch variable.Kind {
	case cpmodel.KindBool, cpmodel.KindInt:
	default:
		return fmt.Errorf("variable %q has unknown kind %d", variable.Name, variable.Kind)
	}

	width := d.hi - d.lo
	if width < 0 || width > maxIntRange {
		return fmt.Errorf("variable %q has unsupported domain [%d, %d]", variable.Name, d.lo, d.hi)
	}

	b := binding{lo: d.lo, bits: make([]int, bits.Len64(uint64(width)))}
	for k := range b.bits {
		b.bits[k] = e.newVar()
	}
	e.bindings[v] = b

	// cap the binary number at the domain width unless every bit pattern is in range
	if width != 1<<len(b.bits)-1 {
		var terms []pbTerm
		for k, lit := range b.bits {
			terms = append(terms, pbTerm{lit: lit, weight: 1 << k})
		}
		if err := e.addAtMost(terms, width); err != nil {
			return fmt.Errorf("variable %q: %w", variable.Name, err)
		}
	}

	return nil
}

// expand rewrites a linear expression over model variables as PB terms plus a constant
func (e *encoding) expand(expr cpmodel.LinearExpr) ([]pbTerm, int64) {
	constant := expr.Offset
	var terms []pbTerm
	for _, t := range expr.Merged().Terms {
		b := e.bindings[t.Var]
		constant += t.Coef * b.lo
		for k, lit := range b.bits {
			terms = append(terms, pbTerm{lit: lit, weight: t.Coef << k})
		}
	}
	return terms, constant
}

func (e *encoding) addExactlyOne(vars []cpmodel.Var) error {
	terms, constant := e.expand(cpmodel.Sum(vars...))
	if err := e.addAtLeast(terms, 1-constant); err != nil {
		return err
	}
	return e.addAtMost(terms, 1-constant)
}

func (e *encoding) addLessOrEqual(expr cpmodel.LinearExpr, rhs int64) error {
	terms, constant := e.expand(expr)
	return e.addAtMost(terms, rhs-constant)
}

// addAtMost posts sum(terms) <= bound as -sum(terms) >= -bound
func (e *encoding) addAtMost(terms []pbTerm, bound int64) error {
	negated := make([]pbTerm, len(terms))
	for i, t := range terms {
		negated[i] = pbTerm{lit: t.lit, weight: -t.weight}
	}
	return e.addAtLeast(negated, -bound)
}

// addAtLeast posts sum(terms) >= bound after rewriting it with positive
// weights only. Constraints that always hold are dropped.
func (e *encoding) addAtLeast(terms []pbTerm, bound int64) error {
	merged, shift := normalise(terms)
	bound -= shift

	if bound <= 0 {
		return nil
	}

	var total int64
	constr := solver.PBConstr{
		Lits:    make([]int, 0, len(merged)),
		Weights: make([]int, 0, len(merged)),
		AtLeast: int(bound),
	}
	for _, t := range merged {
		constr.Lits = append(constr.Lits, t.lit)
		constr.Weights = append(constr.Weights, int(t.weight))
		total += t.weight
	}
	if total < bound {
		return errTriviallyFalse
	}

	e.constraints = append(e.constraints, constr)
	return nil
}

// normalise merges terms on the same PB variable and flips negative weights
// using w*x = w + (-w)*not(x). It returns the positive terms and the constant
// that was moved out of them.
func normalise(terms []pbTerm) ([]pbTerm, int64) {
	byVar := make(map[int]int64, len(terms))
	order := make([]int, 0, len(terms))
	var shift int64

	for _, t := range terms {
		v, w := t.lit, t.weight
		if v < 0 {
			// w*not(x) = w - w*x
			v = -v
			shift += w
			w = -w
		}
		if _, seen := byVar[v]; !seen {
			order = append(order, v)
		}
		byVar[v] += w
	}

	out := make([]pbTerm, 0, len(order))
	for _, v := range order {
		w := byVar[v]
		switch {
		case w > 0:
			out = append(out, pbTerm{lit: v, weight: w})
		case w < 0:
			shift += w
			out = append(out, pbTerm{lit: -v, weight: -w})
		}
	}
	return out, shift
}

func (e *encoding) setCost(objective cpmodel.LinearExpr) {
	terms, constant := e.expand(objective)
	merged, shift := normalise(terms)

	e.hasCost = true
	e.costOffset = constant + shift
	for _, t := range merged {
		e.costLits = append(e.costLits, solver.IntToLit(int32(t.lit)))
		e.costWeights = append(e.costWeights, int(t.weight))
	}
}

// problem builds the gophersat problem for the encoding
func (e *encoding) problem() *solver.Problem {
	pb := solver.ParsePBConstrs(e.constraints)
	if len(e.costLits) > 0 {
		pb.SetCostFunc(e.costLits, e.costWeights)
	}
	return pb
}

// values reads model variable values from a gophersat model, where model[i]
// holds PB variable i+1. Variables missing from a short model read as false.
func (e *encoding) values(model []bool) []int64 {
	set := func(lit int) bool {
		return lit-1 < len(model) && model[lit-1]
	}

	values := make([]int64, len(e.bindings))
	for v, b := range e.bindings {
		value := b.lo
		for k, lit := range b.bits {
			if set(lit) {
				value += 1 << k
			}
		}
		values[v] = value
	}
	return values
}
