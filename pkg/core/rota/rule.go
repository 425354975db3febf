package rota

import "fmt"

// Violation describes one breach of a hard rule found in a decoded schedule.
// Intern and Day are -1 when the violation is not tied to one of them.
type Violation struct {
	Rule        string
	Intern      int
	Day         int
	Description string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Description)
}

// Rule is one family of hard constraints.
// A rule both encodes itself into a model and checks a decoded schedule, so the
// same definition drives the solver and verifies what the solver returned.
type Rule interface {
	// Name returns a human-readable identifier for this rule
	Name() string

	// Encode adds the rule's constraints to the encoding's model
	Encode(enc *Encoding)

	// Validate checks a schedule against the rule and returns every breach
	Validate(schedule *Schedule) []Violation
}

// ValidateSchedule runs every rule against the schedule
func ValidateSchedule(schedule *Schedule, rules []Rule) []Violation {
	var violations []Violation
	for _, r := range rules {
		violations = append(violations, r.Validate(schedule)...)
	}
	return violations
}
