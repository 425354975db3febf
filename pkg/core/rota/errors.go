package rota

import (
	"fmt"
	"strings"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
)

// ConfigurationError reports an invalid scheduling request
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// SolverFault reports that the solver backend failed, or returned something
// that cannot be a valid answer to the model it was given
type SolverFault struct {
	Status     cpmodel.Status
	Err        error
	Violations []Violation
}

func (e *SolverFault) Error() string {
	var b strings.Builder
	b.WriteString("solver fault")
	if e.Status != cpmodel.StatusUnknown {
		fmt.Fprintf(&b, " (status %s)", e.Status)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Violations) > 0 {
		fmt.Fprintf(&b, ": %d rule violations, first: %s", len(e.Violations), e.Violations[0])
	}
	return b.String()
}

func (e *SolverFault) Unwrap() error {
	return e.Err
}
