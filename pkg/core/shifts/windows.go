package shifts

// Window is a contiguous half-open range of days over which weekly caps apply
type Window struct {
	Index int
	Start int
	End   int
}

// Len returns the number of days covered by the window
func (w Window) Len() int {
	return w.End - w.Start
}

// Contains reports whether day falls inside the window
func (w Window) Contains(day int) bool {
	return day >= w.Start && day < w.End
}

// WeekCount is the number of weekly windows needed to cover the rotation
const WeekCount = (Days + DaysPerWeek - 1) / DaysPerWeek

// WeekWindows returns the weekly windows over the rotation.
// Every window spans seven days except the last, which covers only days 28
// and 29 and is still held to the full weekly caps.
func WeekWindows() []Window {
	windows := make([]Window, 0, WeekCount)
	for w := 0; w < WeekCount; w++ {
		start := w * DaysPerWeek
		end := min(start+DaysPerWeek, Days)
		windows = append(windows, Window{Index: w, Start: start, End: end})
	}
	return windows
}

// WindowOf returns the window containing day, or false if day is outside the rotation
func WindowOf(day int) (Window, bool) {
	for _, w := range WeekWindows() {
		if w.Contains(day) {
			return w, true
		}
	}
	return Window{}, false
}
