package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/intern-rota/pkg/core/shifts"
	"github.com/jakechorley/intern-rota/pkg/db"
)

const (
	dateLayout    = "2006-01-02"
	displayLayout = "Mon Jan 02 2006"
)

// nextSunday returns the next Sunday from the given date
func nextSunday(from time.Time) time.Time {
	normalized := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	// Sunday is 0; today being Sunday moves to the following week
	daysUntilSunday := (7 - int(normalized.Weekday())) % 7
	if daysUntilSunday == 0 {
		daysUntilSunday = 7
	}

	return normalized.AddDate(0, 0, daysUntilSunday)
}

// RotationDates maps rota days to calendar dates by expanding rule from start.
// An empty rule means consecutive days.
func RotationDates(start time.Time, rule string) ([]time.Time, error) {
	if rule == "" {
		rule = "FREQ=DAILY"
	}

	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date rule: %w", err)
	}
	opt.Dtstart = start
	opt.Count = shifts.Days

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("failed to build date rule: %w", err)
	}

	dates := r.All()
	if len(dates) < shifts.Days {
		return nil, fmt.Errorf("date rule %q yields %d dates, need %d", rule, len(dates), shifts.Days)
	}
	return dates, nil
}

// InternLabel is the display name for a 0-based intern index
func InternLabel(intern int) string {
	return fmt.Sprintf("Intern %d", intern+1)
}

// findRun returns the run with the given id. An empty id selects the most
// recently created run, or with scheduled set the most recent one that
// produced a schedule.
func findRun(runs []db.Run, id string, scheduled bool) (*db.Run, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs found")
	}

	if id == "" {
		var latest *db.Run
		for i := range runs {
			if scheduled && !runs[i].HasSchedule() {
				continue
			}
			if latest == nil || runs[i].CreatedAt.After(latest.CreatedAt) {
				latest = &runs[i]
			}
		}
		if latest == nil {
			return nil, fmt.Errorf("no run with a schedule found")
		}
		return latest, nil
	}

	for i := range runs {
		if runs[i].ID == id {
			return &runs[i], nil
		}
	}
	return nil, fmt.Errorf("run not found: %s", id)
}
