package pbsolver

import (
	"context"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/rota/rotatest"
	"github.com/jakechorley/intern-rota/pkg/core/rota/rules"
)

func solve(t *testing.T, m *cpmodel.Model, opts ...Option) *cpmodel.Solution {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	solution, err := New(opts...).Solve(ctx, m)
	require.NoError(t, err)
	require.NotNil(t, solution)
	if solution.Status.HasSolution() {
		require.NoError(t, m.Check(solution.Values))
	}
	return solution
}

func TestSolve_MinimisesObjective(t *testing.T) {
	m := cpmodel.NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	c := m.NewBoolVar("c")
	m.AddExactlyOne("pick", a, b, c)
	m.Minimize(cpmodel.WeightedSum([]cpmodel.Var{a, b, c}, []int64{3, 1, 2}))

	solution := solve(t, m)

	assert.Equal(t, cpmodel.StatusOptimal, solution.Status)
	assert.Equal(t, []int64{0, 1, 0}, solution.Values)
	assert.Equal(t, int64(1), solution.Objective)
}

func TestSolve_NoObjective(t *testing.T) {
	m := cpmodel.NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddExactlyOne("pick", a, b)
	m.AddLessOrEqual("not_a", cpmodel.Sum(a), 0)

	solution := solve(t, m)

	assert.Equal(t, cpmodel.StatusOptimal, solution.Status)
	assert.False(t, solution.BoolValue(a))
	assert.True(t, solution.BoolValue(b))
}

func TestSolve_Infeasible(t *testing.T) {
	m := cpmodel.NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddExactlyOne("pick", a, b)
	m.AddGreaterOrEqual("both", cpmodel.Sum(a, b), 2)

	solution := solve(t, m)

	assert.Equal(t, cpmodel.StatusInfeasible, solution.Status)
	assert.Empty(t, solution.Values)
}

func TestSolve_TriviallyFalseConstraint(t *testing.T) {
	m := cpmodel.NewModel()
	a := m.NewBoolVar("a")
	m.AddLessOrEqual("negative", cpmodel.Sum(a), -1)

	solution := solve(t, m)

	assert.Equal(t, cpmodel.StatusInfeasible, solution.Status)
	assert.Contains(t, solution.Reason, "never be satisfied")
}

func TestSolve_IntegerDomains(t *testing.T) {
	m := cpmodel.NewModel()
	x, err := m.NewIntVar(3, 10, "x")
	require.NoError(t, err)
	y, err := m.NewIntVar(-5, 5, "y")
	require.NoError(t, err)
	m.AddGreaterOrEqual("x_floor", cpmodel.Sum(x), 5)
	m.Minimize(cpmodel.Sum(x).Minus(cpmodel.Sum(y)))

	solution := solve(t, m)

	assert.Equal(t, cpmodel.StatusOptimal, solution.Status)
	assert.Equal(t, int64(5), solution.Value(x))
	assert.Equal(t, int64(5), solution.Value(y))
	assert.Equal(t, int64(0), solution.Objective)
}

// balanceModel splits four weighted slots between two workers and minimises
// the gap between their totals, the same shape as the rota objective
func balanceModel(t *testing.T) *cpmodel.Model {
	weights := []int64{10, 16, 32, 38}

	m := cpmodel.NewModel()
	var totals [2]cpmodel.LinearExpr
	for _, w := range weights {
		first := m.NewBoolVar("first")
		second := m.NewBoolVar("second")
		m.AddExactlyOne("cover", first, second)
		totals[0].AddTerm(first, w)
		totals[1].AddTerm(second, w)
	}

	diff, err := m.NewIntVar(-1000, 1000, "diff")
	require.NoError(t, err)
	gap, err := m.NewIntVar(0, 1000, "gap")
	require.NoError(t, err)

	m.AddEquality("diff", totals[0].Minus(totals[1]).Minus(cpmodel.Sum(diff)), 0)
	m.AddLessOrEqual("gap", cpmodel.Sum(diff).Minus(cpmodel.Sum(gap)), 0)
	m.AddLessOrEqual("gap", cpmodel.Sum(diff).Negate().Minus(cpmodel.Sum(gap)), 0)
	m.Minimize(cpmodel.Sum(gap))

	return m
}

func TestSolve_Balance(t *testing.T) {
	m := balanceModel(t)

	solution := solve(t, m)

	// 10+38 and 16+32 split evenly
	assert.Equal(t, cpmodel.StatusOptimal, solution.Status)
	assert.Equal(t, int64(0), solution.Objective)
}

func TestSolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solution, err := New().Solve(ctx, balanceModel(t))
	require.NoError(t, err)

	assert.Equal(t, cpmodel.StatusUnknown, solution.Status)
	assert.Contains(t, solution.Reason, "canceled")
}

func TestSolve_PresolveProvesRotaInfeasible(t *testing.T) {
	for _, interns := range []int{3, 10, 59} {
		enc, _, err := rota.BuildModel(interns, rules.Default())
		require.NoError(t, err)

		solution := solve(t, enc.Model)

		assert.Equal(t, cpmodel.StatusInfeasible, solution.Status, "interns %d", interns)
		assert.NotEmpty(t, solution.Reason)
	}
}

func TestSolve_PresolveReason(t *testing.T) {
	enc, _, err := rota.BuildModel(3, rules.Default())
	require.NoError(t, err)

	solution := solve(t, enc.Model)

	// 21 night slots in the first week against two nights for each of three interns
	assert.Equal(t, "night_cap[w0] needs at least 21 but allows at most 6", solution.Reason)
}

func TestSolve_PresolveDisabled(t *testing.T) {
	m := cpmodel.NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddExactlyOne("pick", a, b)
	m.AddLessOrEqual("cap", cpmodel.Sum(a, b), 0)

	solution := solve(t, m, WithPresolve(false))
	assert.Equal(t, cpmodel.StatusInfeasible, solution.Status)
	assert.NotContains(t, solution.Reason, "needs at least")

	solution = solve(t, m)
	assert.Equal(t, cpmodel.StatusInfeasible, solution.Status)
	assert.Equal(t, "cap needs at least 1 but allows at most 0", solution.Reason)
}

func TestSolve_FullRota(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := rota.Generate(ctx, New(WithLogger(zaptest.NewLogger(t))), rotatest.Interns, rules.Default())
	require.NoError(t, err)

	require.Contains(t, []cpmodel.Status{cpmodel.StatusOptimal, cpmodel.StatusFeasible}, result.Status, result.Reason)
	require.NotNil(t, result.Schedule)
	assert.Equal(t, rota.SlotsPerIntern, result.Schedule.Len())
	assert.Empty(t, rota.ValidateSchedule(result.Schedule, rules.Default()))

	// 70 and 74 units are the closest totals sixty interns can reach
	assert.Equal(t, int64(rotatest.Fairness), result.Fairness)
	assert.Equal(t, result.Fairness, result.Objective)
}

func TestSolve_CancelledSearchesLeaveNoGoroutines(t *testing.T) {
	s := New()
	before := runtime.NumGoroutine()

	for range 3 {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		result, err := rota.Generate(ctx, s, rotatest.Interns+1, rules.Default())
		cancel()

		require.NoError(t, err)
		assert.True(t, result.Status.HasSolution(), result.Reason)
	}

	assert.LessOrEqual(t, runtime.NumGoroutine(), before)
}

func TestSolve_RefusesWhileEarlierSearchRuns(t *testing.T) {
	s := New(WithLogger(zaptest.NewLogger(t)))
	s.abandoned = 1

	solution, err := s.Solve(context.Background(), balanceModel(t))
	require.NoError(t, err)
	assert.Equal(t, cpmodel.StatusUnknown, solution.Status)
	assert.Equal(t, errSearchRunning.Error(), solution.Reason)

	// a hinted model is searched on the caller's goroutine and still runs
	m := balanceModel(t)
	hintBalanced(m)

	solution, err = s.Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, cpmodel.StatusOptimal, solution.Status)
	assert.Equal(t, int64(0), solution.Objective)
}

// hintBalanced hints 10+38 to the first worker and 16+32 to the second
func hintBalanced(m *cpmodel.Model) {
	for slot, first := range []bool{true, false, false, true} {
		var value int64
		if first {
			value = 1
		}
		m.AddHint(cpmodel.Var(2*slot), value)
		m.AddHint(cpmodel.Var(2*slot+1), 1-value)
	}
}

// hintUnbalanced hints every slot to the first worker
func hintUnbalanced(m *cpmodel.Model) {
	for slot := 0; slot < 4; slot++ {
		m.AddHint(cpmodel.Var(2*slot), 1)
		m.AddHint(cpmodel.Var(2*slot+1), 0)
	}
}

func TestSolve_HintWithoutGroups(t *testing.T) {
	m := balanceModel(t)
	hintUnbalanced(m)

	solution := solve(t, m)

	// nothing may be re-solved, so the completed hint is returned as is
	assert.Equal(t, cpmodel.StatusFeasible, solution.Status)
	assert.Equal(t, int64(96), solution.Objective)
}

func TestSolve_ImprovesHintOverAllGroups(t *testing.T) {
	m := balanceModel(t)
	hintUnbalanced(m)
	m.AddGroup("first", 0, 2, 4, 6)
	m.AddGroup("second", 1, 3, 5, 7)

	solution := solve(t, m)

	// both groups fit in one move, so its failure to improve proves optimality
	assert.Equal(t, cpmodel.StatusOptimal, solution.Status)
	assert.Equal(t, int64(0), solution.Objective)
}

func TestSolve_ImprovesHintPairwise(t *testing.T) {
	m := balanceModel(t)
	hintUnbalanced(m)
	for slot := 0; slot < 4; slot++ {
		m.AddGroup(fmt.Sprintf("slot_%d", slot), cpmodel.Var(2*slot), cpmodel.Var(2*slot+1))
	}

	solution := solve(t, m, WithSeed(7))

	assert.True(t, solution.Status.HasSolution())
	assert.Less(t, solution.Objective, int64(96))
}

func TestSolve_InfeasibleHintFallsBackToSearch(t *testing.T) {
	m := cpmodel.NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddExactlyOne("pick", a, b)
	m.AddLessOrEqual("not_a", cpmodel.Sum(a), 0)
	m.AddHint(a, 1)
	m.AddHint(b, 0)

	solution := solve(t, m)

	assert.Equal(t, cpmodel.StatusOptimal, solution.Status)
	assert.True(t, solution.BoolValue(b))
}

func TestSolve_PartialHintIsCompleted(t *testing.T) {
	m := balanceModel(t)
	for slot, first := range []bool{true, false, false, true} {
		if first {
			m.AddHint(cpmodel.Var(2*slot), 1)
		}
	}

	solution := solve(t, m)

	assert.True(t, solution.Status.HasSolution())
	assert.Equal(t, int64(1), solution.Value(0))
	assert.Equal(t, int64(1), solution.Value(6))
}
