package rules

import (
	"fmt"

	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

// Coverage requires every (day, shift) slot to be staffed by exactly one intern.
//
// Encoding:
//   - One exactly-one constraint over the interns' variables for every slot
//
// Validation:
//   - Reports every slot with no intern or more than one
type Coverage struct{}

// NewCoverage creates a new Coverage rule
func NewCoverage() *Coverage {
	return &Coverage{}
}

func (r *Coverage) Name() string {
	return "Coverage"
}

func (r *Coverage) Encode(enc *rota.Encoding) {
	for d := 0; d < shifts.Days; d++ {
		for _, s := range shifts.All {
			enc.Model.AddExactlyOne(FamilyCoverage, enc.SlotVars(d, s)...)
		}
	}
}

func (r *Coverage) Validate(schedule *rota.Schedule) []rota.Violation {
	var violations []rota.Violation
	for d := 0; d < shifts.Days; d++ {
		for _, s := range shifts.All {
			if n := schedule.Staffing(d, s); n != 1 {
				violations = append(violations, rota.Violation{
					Rule:        r.Name(),
					Intern:      -1,
					Day:         d,
					Description: fmt.Sprintf("day %d %s staffed by %d interns", d, s, n),
				})
			}
		}
	}
	return violations
}
