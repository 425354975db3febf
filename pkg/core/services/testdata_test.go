package services

import (
	"time"

	"github.com/jakechorley/intern-rota/pkg/core/rota/rotatest"
	"github.com/jakechorley/intern-rota/pkg/db"
)

// storeWithFixture returns a store holding an older infeasible run and a newer solved run
func storeWithFixture() *mockRunStore {
	fairness, objective := int64(rotatest.Fairness), int64(rotatest.Fairness)
	solved := db.Run{
		ID:        "run-solved",
		CreatedAt: time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC),
		Interns:   rotatest.Interns,
		StartDate: "2025-01-05",
		Status:    "OPTIMAL",
		Fairness:  &fairness,
		Objective: &objective,
	}
	infeasible := db.Run{
		ID:        "run-infeasible",
		CreatedAt: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		Interns:   10,
		StartDate: "2025-01-05",
		Status:    "INFEASIBLE",
		Reason:    "weekend_cap needs at least 60",
	}

	return &mockRunStore{
		runs: []db.Run{infeasible, solved},
		assignments: map[string][]db.Assignment{
			solved.ID: toDBAssignments(solved.ID, rotatest.Schedule()),
		},
	}
}
