package shifts

import "fmt"

// Type identifies one of the fixed shift kinds staffed every day of the rotation
type Type int

const (
	RegularWeekday Type = iota
	NightWeekday
	RegularFriday
	NightFriday
	NightSaturday
)

// Count is the number of shift types in the catalog
const Count = 5

// Rotation limits, all hour values are in scaled half-hour units
const (
	Days           = 30
	DaysPerWeek    = 7
	WeeklyCapUnits = 143
	WeeklyNightCap = 2
	WeekendCap     = 1
	RestDays       = 2
)

var names = [Count]string{
	"regular_weekday",
	"night_weekday",
	"regular_friday",
	"night_friday",
	"night_saturday",
}

// weights are durations in half hours so that all arithmetic stays integral
var weights = [Count]int64{16, 32, 10, 38, 48}

// All lists every shift type in catalog order
var All = []Type{RegularWeekday, NightWeekday, RegularFriday, NightFriday, NightSaturday}

// Night lists the shift types that count towards night caps and the rest rule
var Night = []Type{NightWeekday, NightFriday, NightSaturday}

// Weekend lists the shift types that count towards the weekend cap
var Weekend = []Type{NightFriday, NightSaturday}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("shift(%d)", int(t))
	}
	return names[t]
}

// Valid reports whether t is part of the catalog
func (t Type) Valid() bool {
	return t >= 0 && int(t) < Count
}

// Weight returns the shift duration in scaled half-hour units
func (t Type) Weight() int64 {
	return weights[t]
}

// RealHours converts the scaled weight back to hours
func (t Type) RealHours() float64 {
	return float64(weights[t]) / 2
}

func (t Type) IsNight() bool {
	return t == NightWeekday || t == NightFriday || t == NightSaturday
}

func (t Type) IsWeekend() bool {
	return t == NightFriday || t == NightSaturday
}

// Parse resolves a shift type from its catalog name
func Parse(name string) (Type, error) {
	for i, n := range names {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shift type %q", name)
}

// UnitsToHours converts scaled units to real hours
func UnitsToHours(units int64) float64 {
	return float64(units) / 2
}
