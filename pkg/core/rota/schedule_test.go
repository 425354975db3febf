package rota_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/rota/rotatest"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

func TestSchedule_Fixture(t *testing.T) {
	schedule := rotatest.Schedule()

	assert.Equal(t, rota.SlotsPerIntern, schedule.Len())
	for d := 0; d < shifts.Days; d++ {
		for _, s := range shifts.All {
			assert.Equal(t, 1, schedule.Staffing(d, s), "day %d %s", d, s)
		}
	}

	intern, ok := schedule.Intern(0, shifts.NightFriday)
	assert.True(t, ok)
	assert.Equal(t, 0, intern)

	intern, ok = schedule.Intern(3, shifts.NightSaturday)
	assert.True(t, ok)
	assert.Equal(t, 7, intern)

	assert.Equal(t, int64(rotatest.Fairness), schedule.Fairness())
}

func TestSchedule_Workload(t *testing.T) {
	workload := rotatest.Schedule().Workload()

	assert.Len(t, workload, rotatest.Interns)

	// intern 0 works Friday night on day 0 and a weekday night on day 15
	assert.Equal(t, rota.InternWorkload{Intern: 0, Units: 70, Hours: 35, Shifts: 2, Nights: 2, Weekends: 1}, workload[0])

	// intern 1 works Saturday night on day 0 and regular shifts on days 28 and 29
	assert.Equal(t, rota.InternWorkload{Intern: 1, Units: 74, Hours: 37, Shifts: 3, Nights: 1, Weekends: 1}, workload[1])
}

func TestSchedule_WorksAndCounts(t *testing.T) {
	schedule := rotatest.Schedule()

	assert.True(t, schedule.Works(0, 15, shifts.NightWeekday))
	assert.False(t, schedule.Works(0, 15, shifts.RegularWeekday))
	assert.True(t, schedule.NightOn(0, 0))
	assert.False(t, schedule.NightOn(0, 1))

	assert.Equal(t, int64(38), schedule.Units(0, 0, 7))
	assert.Equal(t, int64(32), schedule.Units(0, 14, 21))
	assert.Equal(t, 2, schedule.Count(0, 0, shifts.Days, shifts.Night))
	assert.Equal(t, 0, schedule.Count(0, 1, 15, shifts.All))
}

func TestSchedule_OutOfRange(t *testing.T) {
	schedule := rota.NewSchedule(2, []rota.Assignment{
		{Day: 0, Shift: shifts.RegularWeekday, Intern: 0},
		{Day: 0, Shift: shifts.RegularWeekday, Intern: 1},
		{Day: 30, Shift: shifts.RegularWeekday, Intern: 0},
		{Day: 1, Shift: shifts.Type(9), Intern: 0},
		{Day: 1, Shift: shifts.NightWeekday, Intern: 5},
	})

	assert.Equal(t, 5, schedule.Len())
	assert.Equal(t, 2, schedule.Staffing(0, shifts.RegularWeekday))
	assert.Equal(t, 0, schedule.Staffing(1, shifts.NightWeekday))
	assert.False(t, schedule.Works(0, 30, shifts.RegularWeekday))
	assert.False(t, schedule.Works(-1, 0, shifts.RegularWeekday))

	_, ok := schedule.Intern(0, shifts.RegularWeekday)
	assert.False(t, ok, "double-booked slot has no single intern")

	_, ok = schedule.Intern(1, shifts.NightWeekday)
	assert.False(t, ok)
}

func TestSchedule_FairnessSingleIntern(t *testing.T) {
	schedule := rota.NewSchedule(1, []rota.Assignment{{Day: 0, Shift: shifts.NightSaturday, Intern: 0}})
	assert.Equal(t, int64(0), schedule.Fairness())
	assert.Equal(t, []int64{48}, schedule.Totals())
}

func TestSchedule_FairnessIsMaxPairwiseGap(t *testing.T) {
	schedule := rota.NewSchedule(3, []rota.Assignment{
		{Day: 0, Shift: shifts.RegularWeekday, Intern: 0},
		{Day: 0, Shift: shifts.NightSaturday, Intern: 1},
		{Day: 1, Shift: shifts.RegularFriday, Intern: 2},
	})
	assert.Equal(t, int64(48-10), schedule.Fairness())
}
