package rules

import (
	"fmt"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

// NightCap limits how many night shifts an intern works in each week window.
//
// Encoding:
//   - For every intern and window, the count of worked night shifts is at most the cap
//
// Validation:
//   - Reports every (intern, window) with too many nights
type NightCap struct {
	limit int
}

// NewNightCap creates a new NightCap rule with the standard limit
func NewNightCap() *NightCap {
	return &NightCap{limit: shifts.WeeklyNightCap}
}

func (r *NightCap) Name() string {
	return "NightCap"
}

func (r *NightCap) Encode(enc *rota.Encoding) {
	for _, w := range shifts.WeekWindows() {
		family := fmt.Sprintf("%s[w%d]", FamilyNightCap, w.Index)
		for i := 0; i < enc.Interns; i++ {
			enc.Model.AddLessOrEqual(family, cpmodel.Sum(enc.Vars(i, w.Start, w.End, shifts.Night)...), int64(r.limit))
		}
	}
}

func (r *NightCap) Validate(schedule *rota.Schedule) []rota.Violation {
	var violations []rota.Violation
	for _, w := range shifts.WeekWindows() {
		for i := 0; i < schedule.Interns; i++ {
			if n := schedule.Count(i, w.Start, w.End, shifts.Night); n > r.limit {
				violations = append(violations, rota.Violation{
					Rule:        r.Name(),
					Intern:      i,
					Day:         w.Start,
					Description: fmt.Sprintf("intern %d works %d nights in days %d-%d, limit is %d", i, n, w.Start, w.End-1, r.limit),
				})
			}
		}
	}
	return violations
}
