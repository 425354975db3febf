package rules

import (
	"fmt"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

// WeekendCap limits how many weekend shifts an intern works over the whole rotation
type WeekendCap struct {
	limit int
}

// NewWeekendCap creates a new WeekendCap rule with the standard limit
func NewWeekendCap() *WeekendCap {
	return &WeekendCap{limit: shifts.WeekendCap}
}

func (r *WeekendCap) Name() string {
	return "WeekendCap"
}

func (r *WeekendCap) Encode(enc *rota.Encoding) {
	for i := 0; i < enc.Interns; i++ {
		enc.Model.AddLessOrEqual(FamilyWeekendCap, cpmodel.Sum(enc.Vars(i, 0, shifts.Days, shifts.Weekend)...), int64(r.limit))
	}
}

func (r *WeekendCap) Validate(schedule *rota.Schedule) []rota.Violation {
	var violations []rota.Violation
	for i := 0; i < schedule.Interns; i++ {
		if n := schedule.Count(i, 0, shifts.Days, shifts.Weekend); n > r.limit {
			violations = append(violations, rota.Violation{
				Rule:        r.Name(),
				Intern:      i,
				Day:         -1,
				Description: fmt.Sprintf("intern %d works %d weekend shifts, limit is %d", i, n, r.limit),
			})
		}
	}
	return violations
}
