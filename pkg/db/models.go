package db

import "time"

// Run is one scheduling request and its outcome
type Run struct {
	ID        string
	CreatedAt time.Time
	Interns   int
	StartDate string // Format: "2006-01-02"
	Status    string

	// Fairness and Objective are set when the run produced a schedule
	Fairness  *int64
	Objective *int64

	Reason      string
	SolveMillis int64
	PublishedAt *time.Time
}

// HasSchedule reports whether assignments were stored for the run
func (r *Run) HasSchedule() bool {
	return r.Fairness != nil
}

// Assignment is one staffed slot of a run
type Assignment struct {
	RunID  string
	Day    int
	Shift  string
	Intern int
}
