package rota

import (
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

// Assignment is one staffed slot: an intern working a shift on a day
type Assignment struct {
	Day    int
	Shift  shifts.Type
	Intern int
}

// InRange reports whether the assignment refers to a valid day, shift and intern
func (a Assignment) InRange(interns int) bool {
	return a.Day >= 0 && a.Day < shifts.Days && a.Shift.Valid() && a.Intern >= 0 && a.Intern < interns
}

// Schedule is an ordered list of assignments for a rotation staffed by Interns interns
type Schedule struct {
	Interns     int
	Assignments []Assignment

	// worked is indexed by VarIndex
	worked []bool
	// staffed counts interns per (day, shift), indexed by day*shifts.Count+shift
	staffed []int
}

// InternWorkload summarises one intern's share of a schedule
type InternWorkload struct {
	Intern   int
	Units    int64
	Hours    float64
	Shifts   int
	Nights   int
	Weekends int
}

// NewSchedule builds a schedule from assignments in the given order.
// Out-of-range assignments are kept but not indexed.
func NewSchedule(interns int, assignments []Assignment) *Schedule {
	s := &Schedule{
		Interns:     interns,
		Assignments: assignments,
		worked:      make([]bool, max(interns, 0)*SlotsPerIntern),
		staffed:     make([]int, SlotsPerIntern),
	}

	for _, a := range assignments {
		if !a.InRange(interns) {
			continue
		}
		s.worked[VarIndex(a.Intern, a.Day, a.Shift)] = true
		s.staffed[a.Day*shifts.Count+int(a.Shift)]++
	}

	return s
}

// Len returns the number of assignments
func (s *Schedule) Len() int {
	return len(s.Assignments)
}

// Works reports whether the intern works the shift on the day
func (s *Schedule) Works(intern, day int, shift shifts.Type) bool {
	if intern < 0 || intern >= s.Interns || day < 0 || day >= shifts.Days || !shift.Valid() {
		return false
	}
	return s.worked[VarIndex(intern, day, shift)]
}

// Staffing returns how many interns are assigned to the (day, shift) slot
func (s *Schedule) Staffing(day int, shift shifts.Type) int {
	if day < 0 || day >= shifts.Days || !shift.Valid() {
		return 0
	}
	return s.staffed[day*shifts.Count+int(shift)]
}

// Intern returns the intern assigned to the slot, and false unless exactly one is
func (s *Schedule) Intern(day int, shift shifts.Type) (int, bool) {
	if s.Staffing(day, shift) != 1 {
		return -1, false
	}
	for i := 0; i < s.Interns; i++ {
		if s.Works(i, day, shift) {
			return i, true
		}
	}
	return -1, false
}

// Units returns the intern's weighted workload over days [from, to)
func (s *Schedule) Units(intern, from, to int) int64 {
	var total int64
	for d := from; d < to; d++ {
		for _, sh := range shifts.All {
			if s.Works(intern, d, sh) {
				total += sh.Weight()
			}
		}
	}
	return total
}

// Count returns how many of the given shift types the intern works over days [from, to)
func (s *Schedule) Count(intern, from, to int, types []shifts.Type) int {
	count := 0
	for d := from; d < to; d++ {
		for _, sh := range types {
			if s.Works(intern, d, sh) {
				count++
			}
		}
	}
	return count
}

// NightOn reports whether the intern works any night shift on the day
func (s *Schedule) NightOn(intern, day int) bool {
	return s.Count(intern, day, day+1, shifts.Night) > 0
}

// Totals returns every intern's workload over the whole rotation
func (s *Schedule) Totals() []int64 {
	totals := make([]int64, s.Interns)
	for i := range totals {
		totals[i] = s.Units(i, 0, shifts.Days)
	}
	return totals
}

// Fairness returns the largest absolute difference in total workload between
// any two interns, which is the spread between the busiest and the idlest
func (s *Schedule) Fairness() int64 {
	totals := s.Totals()
	if len(totals) < 2 {
		return 0
	}

	lo, hi := totals[0], totals[0]
	for _, t := range totals[1:] {
		lo = min(lo, t)
		hi = max(hi, t)
	}
	return hi - lo
}

// Workload summarises every intern's share of the schedule
func (s *Schedule) Workload() []InternWorkload {
	out := make([]InternWorkload, s.Interns)
	for i := range out {
		units := s.Units(i, 0, shifts.Days)
		out[i] = InternWorkload{
			Intern:   i,
			Units:    units,
			Hours:    shifts.UnitsToHours(units),
			Shifts:   s.Count(i, 0, shifts.Days, shifts.All),
			Nights:   s.Count(i, 0, shifts.Days, shifts.Night),
			Weekends: s.Count(i, 0, shifts.Days, shifts.Weekend),
		}
	}
	return out
}
