package rules

import (
	"fmt"

	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

// WeeklyHours caps each intern's weighted workload in every week window.
//
// Encoding:
//   - For every intern and window, the sum of weight over worked shifts is at most the cap
//   - The short final window is held to the same cap as the full weeks
//
// Validation:
//   - Reports every (intern, window) whose workload exceeds the cap
type WeeklyHours struct {
	capUnits int64
}

// NewWeeklyHours creates a new WeeklyHours rule with the standard cap
func NewWeeklyHours() *WeeklyHours {
	return &WeeklyHours{capUnits: shifts.WeeklyCapUnits}
}

func (r *WeeklyHours) Name() string {
	return "WeeklyHours"
}

func (r *WeeklyHours) Encode(enc *rota.Encoding) {
	for _, w := range shifts.WeekWindows() {
		family := fmt.Sprintf("%s[w%d]", FamilyWeekly, w.Index)
		for i := 0; i < enc.Interns; i++ {
			enc.Model.AddLessOrEqual(family, enc.Units(i, w.Start, w.End), r.capUnits)
		}
	}
}

func (r *WeeklyHours) Validate(schedule *rota.Schedule) []rota.Violation {
	var violations []rota.Violation
	for _, w := range shifts.WeekWindows() {
		for i := 0; i < schedule.Interns; i++ {
			if units := schedule.Units(i, w.Start, w.End); units > r.capUnits {
				violations = append(violations, rota.Violation{
					Rule:   r.Name(),
					Intern: i,
					Day:    w.Start,
					Description: fmt.Sprintf("intern %d works %.1f hours in days %d-%d, cap is %.1f",
						i, shifts.UnitsToHours(units), w.Start, w.End-1, shifts.UnitsToHours(r.capUnits)),
				})
			}
		}
	}
	return violations
}
