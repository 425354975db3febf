package rules

import (
	"fmt"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

// NightRest stops an intern working nights in quick succession.
//
// Encoding:
//   - For every intern and every day d in [0, Days-RestDays), each night variable on d is
//     paired with each night variable on d+1 .. d+RestDays: a + b <= 1
//   - Pairs are posted individually rather than aggregated per day
//
// Validation:
//   - Reports an intern working a night on d and again within the following RestDays days,
//     for the same range of d as the encoding
type NightRest struct {
	restDays int
}

// NewNightRest creates a new NightRest rule with the standard rest period
func NewNightRest() *NightRest {
	return &NightRest{restDays: shifts.RestDays}
}

func (r *NightRest) Name() string {
	return "NightRest"
}

// lastStart is the exclusive bound on the first night of a checked pair
func (r *NightRest) lastStart() int {
	return shifts.Days - r.restDays
}

func (r *NightRest) Encode(enc *rota.Encoding) {
	for i := 0; i < enc.Interns; i++ {
		for d := 0; d < r.lastStart(); d++ {
			for k := 1; k <= r.restDays && d+k < shifts.Days; k++ {
				for _, a := range shifts.Night {
					for _, b := range shifts.Night {
						expr := cpmodel.Sum(enc.Var(i, d, a), enc.Var(i, d+k, b))
						enc.Model.AddLessOrEqual(FamilyNightRest, expr, 1)
					}
				}
			}
		}
	}
}

func (r *NightRest) Validate(schedule *rota.Schedule) []rota.Violation {
	var violations []rota.Violation
	for i := 0; i < schedule.Interns; i++ {
		for d := 0; d < r.lastStart(); d++ {
			if !schedule.NightOn(i, d) {
				continue
			}
			for k := 1; k <= r.restDays && d+k < shifts.Days; k++ {
				if schedule.NightOn(i, d+k) {
					violations = append(violations, rota.Violation{
						Rule:        r.Name(),
						Intern:      i,
						Day:         d,
						Description: fmt.Sprintf("intern %d works nights on days %d and %d", i, d, d+k),
					})
				}
			}
		}
	}
	return violations
}
