package services

import (
	"sort"

	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

// WorkloadSummary aggregates per-intern totals for one schedule
type WorkloadSummary struct {
	Interns  []rota.InternWorkload // heaviest first, ties by intern index
	MinHours float64
	MaxHours float64

	// Fairness is the spread between the busiest and idlest intern in scaled half-hour units
	Fairness int64
}

// SummariseWorkload computes per-intern totals for a schedule
func SummariseWorkload(schedule *rota.Schedule) *WorkloadSummary {
	workload := schedule.Workload()
	sort.SliceStable(workload, func(i, j int) bool {
		if workload[i].Units != workload[j].Units {
			return workload[i].Units > workload[j].Units
		}
		return workload[i].Intern < workload[j].Intern
	})

	summary := &WorkloadSummary{
		Interns:  workload,
		Fairness: schedule.Fairness(),
	}
	if len(workload) > 0 {
		summary.MaxHours = shifts.UnitsToHours(workload[0].Units)
		summary.MinHours = shifts.UnitsToHours(workload[len(workload)-1].Units)
	}
	return summary
}
