// Package rules holds the hard constraint families of the rota model.
package rules

import "github.com/jakechorley/intern-rota/pkg/core/rota"

// Constraint families emitted by the rules in this package
const (
	FamilyCoverage   = "coverage"
	FamilyWeekly     = "weekly_hours"
	FamilyNightCap   = "night_cap"
	FamilyWeekendCap = "weekend_cap"
	FamilyNightRest  = "night_rest"
)

// Default returns every hard rule in the order they are encoded
func Default() []rota.Rule {
	return []rota.Rule{
		NewCoverage(),
		NewWeeklyHours(),
		NewNightCap(),
		NewWeekendCap(),
		NewNightRest(),
	}
}
