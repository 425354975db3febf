package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

func TestWeekendCap_Encode(t *testing.T) {
	enc := encode(t, NewWeekendCap(), 4)

	constraints := enc.Model.Constraints()
	require.Len(t, constraints, 4)
	for _, c := range constraints {
		assert.Equal(t, FamilyWeekendCap, c.Family)
		assert.Equal(t, int64(shifts.WeekendCap), c.RHS)
		assert.Len(t, c.Expr.Terms, shifts.Days*len(shifts.Weekend))
	}
}

func TestWeekendCap_Validate(t *testing.T) {
	// intern 0 works Friday night on day 0
	schedule := withIntern(20, shifts.NightSaturday, 0)

	violations := NewWeekendCap().Validate(schedule)

	require.Len(t, violations, 1)
	assert.Equal(t, 0, violations[0].Intern)
	assert.Equal(t, -1, violations[0].Day)
	assert.Contains(t, violations[0].Description, "2 weekend shifts")
}
