package rota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

func TestBuildObjective_Structure(t *testing.T) {
	enc := NewEncoding(cpmodel.NewModel(), 3)

	obj, err := BuildObjective(enc)
	require.NoError(t, err)

	assert.Len(t, obj.Totals, 3)
	require.Len(t, obj.Diffs, 3)
	assert.Equal(t, 0, obj.Diffs[0].I)
	assert.Equal(t, 1, obj.Diffs[0].J)
	assert.Equal(t, 1, obj.Diffs[2].I)
	assert.Equal(t, 2, obj.Diffs[2].J)

	fairness := enc.Model.Variable(obj.Fairness)
	assert.Equal(t, "fairness_value", fairness.Name)
	assert.Equal(t, int64(0), fairness.Lo)
	assert.Equal(t, int64(DiffBound), fairness.Hi)

	diff := enc.Model.Variable(obj.Diffs[1].Var)
	assert.Equal(t, "diff_0_2", diff.Name)
	assert.Equal(t, int64(-DiffBound), diff.Lo)
	assert.Equal(t, int64(DiffBound), diff.Hi)

	// two inequalities for the equality and two fairness bounds per pair
	families := map[string]int{}
	for _, c := range enc.Model.Constraints() {
		families[c.Family]++
	}
	assert.Equal(t, 6, families[FamilyTotalDiff])
	assert.Equal(t, 6, families[FamilyFairnessBound])

	objective, ok := enc.Model.Objective()
	require.True(t, ok)
	assert.Equal(t, cpmodel.Sum(obj.Fairness), objective)
}

func TestBuildObjective_SingleIntern(t *testing.T) {
	enc := NewEncoding(cpmodel.NewModel(), 1)

	obj, err := BuildObjective(enc)
	require.NoError(t, err)

	assert.Empty(t, obj.Diffs)
	assert.Empty(t, enc.Model.Constraints())

	values := make([]int64, enc.Model.NumVars())
	assert.NoError(t, enc.Model.Check(values))
}

func TestBuildObjective_FairnessBoundsBothDirections(t *testing.T) {
	enc := NewEncoding(cpmodel.NewModel(), 2)
	obj, err := BuildObjective(enc)
	require.NoError(t, err)

	values := make([]int64, enc.Model.NumVars())
	values[enc.Var(1, 0, shifts.NightSaturday)] = 1
	values[obj.Diffs[0].Var] = -48

	// fairness must cover |diff| even when diff is negative
	values[obj.Fairness] = 48
	assert.NoError(t, enc.Model.Check(values))

	values[obj.Fairness] = 47
	assert.Error(t, enc.Model.Check(values))

	// diff is tied to the totals
	values[obj.Fairness] = 48
	values[obj.Diffs[0].Var] = 48
	assert.Error(t, enc.Model.Check(values))
}
