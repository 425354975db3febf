package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

func TestNightRest_Encode(t *testing.T) {
	enc := encode(t, NewNightRest(), 1)

	constraints := enc.Model.Constraints()
	nights := len(shifts.Night)
	require.Len(t, constraints, (shifts.Days-shifts.RestDays)*shifts.RestDays*nights*nights)

	for _, c := range constraints {
		assert.Equal(t, FamilyNightRest, c.Family)
		assert.Equal(t, int64(1), c.RHS)
		require.Len(t, c.Expr.Terms, 2)
	}

	// the first pair links day 0 with day 1, never a day with itself
	first := constraints[0].Expr.Terms
	assert.Equal(t, enc.Var(0, 0, shifts.NightWeekday), first[0].Var)
	assert.Equal(t, enc.Var(0, 1, shifts.NightWeekday), first[1].Var)

	// the last pair starts on day 27 and reaches day 29
	last := constraints[len(constraints)-1].Expr.Terms
	assert.Equal(t, enc.Var(0, 27, shifts.NightSaturday), last[0].Var)
	assert.Equal(t, enc.Var(0, 29, shifts.NightSaturday), last[1].Var)
}

func TestNightRest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		nights     []int
		violations int
	}{
		{"consecutive nights", []int{4, 5}, 1},
		{"one day between", []int{4, 6}, 1},
		{"two days between", []int{4, 7}, 0},
		{"three in a row", []int{10, 11, 12}, 3},
		{"last days of rotation", []int{28, 29}, 0},
		{"day 27 then 29", []int{27, 29}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var assignments []rota.Assignment
			for _, d := range tt.nights {
				assignments = append(assignments, rota.Assignment{Day: d, Shift: shifts.NightWeekday, Intern: 0})
			}

			violations := NewNightRest().Validate(rota.NewSchedule(1, assignments))
			assert.Len(t, violations, tt.violations)
		})
	}
}

func TestNightRest_DifferentNightTypes(t *testing.T) {
	schedule := rota.NewSchedule(1, []rota.Assignment{
		{Day: 3, Shift: shifts.NightFriday, Intern: 0},
		{Day: 4, Shift: shifts.NightSaturday, Intern: 0},
	})

	violations := NewNightRest().Validate(schedule)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Description, "days 3 and 4")
}
