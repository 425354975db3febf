package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/rota/rotatest"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
	"github.com/jakechorley/intern-rota/pkg/db"
)

func TestListRuns_NewestFirst(t *testing.T) {
	runs, err := ListRuns(context.Background(), storeWithFixture(), zap.NewNop())
	require.NoError(t, err)

	require.Len(t, runs, 2)
	assert.Equal(t, "run-solved", runs[0].ID)
	assert.Equal(t, "run-infeasible", runs[1].ID)
}

func TestListRuns_StoreError(t *testing.T) {
	_, err := ListRuns(context.Background(), &mockRunStore{getErr: errors.New("boom")}, zap.NewNop())
	assert.ErrorContains(t, err, "failed to fetch runs")
}

func TestViewRun_LatestByDefault(t *testing.T) {
	view, err := ViewRun(context.Background(), storeWithFixture(), zap.NewNop(), "")
	require.NoError(t, err)

	assert.Equal(t, "run-solved", view.Run.ID)
	require.NotNil(t, view.Schedule)
	assert.Equal(t, shifts.Days*shifts.Count, view.Schedule.Len())
	assert.Equal(t, int64(rotatest.Fairness), view.Schedule.Fairness())

	intern, ok := view.Schedule.Intern(0, shifts.NightFriday)
	require.True(t, ok)
	assert.Equal(t, 0, intern)
}

func TestViewRun_WithoutSchedule(t *testing.T) {
	view, err := ViewRun(context.Background(), storeWithFixture(), zap.NewNop(), "run-infeasible")
	require.NoError(t, err)

	assert.Equal(t, "INFEASIBLE", view.Run.Status)
	assert.Nil(t, view.Schedule)
}

func TestViewRun_NotFound(t *testing.T) {
	_, err := ViewRun(context.Background(), storeWithFixture(), zap.NewNop(), "missing")
	assert.EqualError(t, err, "run not found: missing")
}

func TestViewRun_NoRuns(t *testing.T) {
	_, err := ViewRun(context.Background(), &mockRunStore{}, zap.NewNop(), "")
	assert.EqualError(t, err, "no runs found")
}

func TestScheduleFromAssignments_Sorted(t *testing.T) {
	stored := []db.Assignment{
		{Day: 1, Shift: "regular_weekday", Intern: 2},
		{Day: 0, Shift: "night_saturday", Intern: 1},
		{Day: 0, Shift: "regular_weekday", Intern: 0},
	}

	schedule, err := scheduleFromAssignments(3, stored)
	require.NoError(t, err)

	require.Equal(t, 3, schedule.Len())
	assert.Equal(t, 0, schedule.Assignments[0].Day)
	assert.Equal(t, shifts.RegularWeekday, schedule.Assignments[0].Shift)
	assert.Equal(t, shifts.NightSaturday, schedule.Assignments[1].Shift)
	assert.Equal(t, 1, schedule.Assignments[2].Day)
}

func TestScheduleFromAssignments_UnknownShift(t *testing.T) {
	_, err := scheduleFromAssignments(1, []db.Assignment{{Day: 0, Shift: "lunch", Intern: 0}})
	assert.ErrorContains(t, err, `unknown shift type "lunch"`)
}

func TestViewScheduledRun_SkipsNewerRunWithoutSchedule(t *testing.T) {
	store := storeWithFixture()
	store.runs = append(store.runs, db.Run{
		ID:        "run-timeout",
		CreatedAt: time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC),
		Interns:   rotatest.Interns,
		StartDate: "2025-01-05",
		Status:    "UNKNOWN",
		Reason:    "context deadline exceeded",
	})

	view, err := ViewRun(context.Background(), store, zap.NewNop(), "")
	require.NoError(t, err)
	assert.Equal(t, "run-timeout", view.Run.ID)
	assert.Nil(t, view.Schedule)

	view, err = ViewScheduledRun(context.Background(), store, zap.NewNop(), "")
	require.NoError(t, err)
	assert.Equal(t, "run-solved", view.Run.ID)
	require.NotNil(t, view.Schedule)
	assert.Equal(t, rota.SlotsPerIntern, view.Schedule.Len())
}
