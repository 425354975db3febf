package cpmodel

import "fmt"

// Check verifies that values satisfies every domain and constraint of the model
func (m *Model) Check(values []int64) error {
	if len(values) != len(m.vars) {
		return fmt.Errorf("expected %d values, got %d", len(m.vars), len(values))
	}

	for i, v := range m.vars {
		if values[i] < v.Lo || values[i] > v.Hi {
			return fmt.Errorf("variable %q = %d outside [%d, %d]", v.Name, values[i], v.Lo, v.Hi)
		}
	}

	for i, c := range m.constraints {
		switch c.Kind {
		case ExactlyOne:
			count := 0
			for _, v := range c.Vars {
				if values[v] != 0 {
					count++
				}
			}
			if count != 1 {
				return fmt.Errorf("constraint %d (%s): %d variables true, want exactly one", i, c.Family, count)
			}
		case LessOrEqual:
			if lhs := c.Expr.Eval(values); lhs > c.RHS {
				return fmt.Errorf("constraint %d (%s): %d > %d", i, c.Family, lhs, c.RHS)
			}
		}
	}

	return nil
}
