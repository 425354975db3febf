package rota

import (
	"sort"

	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

// Construct builds a schedule slot by slot without search. Slots are filled
// heaviest shift first, each going to the least loaded intern who can take it
// without breaching a rule on their own assignments. It returns false when a
// slot has no such intern or the finished schedule still breaks a rule.
func Construct(interns int, rules []Rule) (*Schedule, bool) {
	if interns <= 0 {
		return nil, false
	}

	slots := make([]Assignment, 0, SlotsPerIntern)
	for d := 0; d < shifts.Days; d++ {
		for _, s := range shifts.All {
			slots = append(slots, Assignment{Day: d, Shift: s})
		}
	}
	sort.SliceStable(slots, func(a, b int) bool {
		return slots[a].Shift.Weight() > slots[b].Shift.Weight()
	})

	own := make([][]Assignment, interns)
	totals := make([]int64, interns)
	order := make([]int, interns)

	for k, slot := range slots {
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return totals[order[a]] < totals[order[b]]
		})

		chosen := -1
		for _, i := range order {
			if admits(own[i], slot, rules) {
				chosen = i
				break
			}
		}
		if chosen < 0 {
			return nil, false
		}

		slots[k].Intern = chosen
		own[chosen] = append(own[chosen], slots[k])
		totals[chosen] += slot.Shift.Weight()
	}

	sort.Slice(slots, func(a, b int) bool {
		if slots[a].Day != slots[b].Day {
			return slots[a].Day < slots[b].Day
		}
		return slots[a].Shift < slots[b].Shift
	})

	schedule := NewSchedule(interns, slots)
	if len(ValidateSchedule(schedule, rules)) > 0 {
		return nil, false
	}
	return schedule, true
}

// admits reports whether an intern already working own can also take slot.
// The check runs on a one-intern schedule, so breaches that belong to no
// intern, such as unstaffed slots, are ignored.
func admits(own []Assignment, slot Assignment, rules []Rule) bool {
	trial := make([]Assignment, 0, len(own)+1)
	for _, a := range own {
		a.Intern = 0
		trial = append(trial, a)
	}
	slot.Intern = 0
	trial = append(trial, slot)

	schedule := NewSchedule(1, trial)
	for _, r := range rules {
		for _, v := range r.Validate(schedule) {
			if v.Intern == 0 {
				return false
			}
		}
	}
	return true
}
