package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

func TestWeeklyHours_Encode(t *testing.T) {
	enc := encode(t, NewWeeklyHours(), 2)

	constraints := enc.Model.Constraints()
	require.Len(t, constraints, shifts.WeekCount*2)

	last := constraints[len(constraints)-1]
	assert.Equal(t, "weekly_hours[w4]", last.Family)
	assert.Equal(t, int64(shifts.WeeklyCapUnits), last.RHS)
	// the two-day window still covers every shift of both days
	assert.Len(t, last.Expr.Terms, 2*shifts.Count)

	first := constraints[0]
	assert.Equal(t, "weekly_hours[w0]", first.Family)
	assert.Len(t, first.Expr.Terms, shifts.DaysPerWeek*shifts.Count)
}

func TestWeeklyHours_Validate(t *testing.T) {
	// 144 units in the two-day window, one over the cap
	over := rota.NewSchedule(1, []rota.Assignment{
		{Day: 28, Shift: shifts.NightSaturday, Intern: 0},
		{Day: 29, Shift: shifts.NightSaturday, Intern: 0},
		{Day: 29, Shift: shifts.NightFriday, Intern: 0},
		{Day: 29, Shift: shifts.RegularFriday, Intern: 0},
	})
	violations := NewWeeklyHours().Validate(over)
	require.Len(t, violations, 1)
	assert.Equal(t, 0, violations[0].Intern)
	assert.Equal(t, 28, violations[0].Day)
	assert.Contains(t, violations[0].Description, "72.0 hours")

	// weights are all even so 142 is the most a window can hold
	atCap := rota.NewSchedule(1, []rota.Assignment{
		{Day: 0, Shift: shifts.NightSaturday, Intern: 0},
		{Day: 1, Shift: shifts.NightSaturday, Intern: 0},
		{Day: 2, Shift: shifts.RegularWeekday, Intern: 0},
		{Day: 3, Shift: shifts.RegularFriday, Intern: 0},
		{Day: 4, Shift: shifts.RegularFriday, Intern: 0},
		{Day: 5, Shift: shifts.RegularFriday, Intern: 0},
	})
	assert.Equal(t, int64(shifts.WeeklyCapUnits-1), atCap.Units(0, 0, 7))
	assert.Empty(t, NewWeeklyHours().Validate(atCap))
}
