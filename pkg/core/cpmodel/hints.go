package cpmodel

// Hint suggests a starting value for a variable. Backends may seed their
// search from hints but must not assume the hinted assignment is feasible.
type Hint struct {
	Var   Var
	Value int64
}

// Group is a named block of variables that a local search may re-solve
// together while the rest of an assignment stays fixed
type Group struct {
	Name string
	Vars []Var
}

// AddHint suggests value for v. A later hint for the same variable replaces the earlier one.
func (m *Model) AddHint(v Var, value int64) {
	if m.hintIndex == nil {
		m.hintIndex = make(map[Var]int)
	}
	if i, ok := m.hintIndex[v]; ok {
		m.hints[i].Value = value
		return
	}
	m.hintIndex[v] = len(m.hints)
	m.hints = append(m.hints, Hint{Var: v, Value: value})
}

// Hints returns the hints in the order their variables were first hinted
func (m *Model) Hints() []Hint {
	return m.hints
}

// AddGroup declares a block of variables that belong together
func (m *Model) AddGroup(name string, vars ...Var) {
	m.groups = append(m.groups, Group{Name: name, Vars: append([]Var(nil), vars...)})
}

// Groups returns the groups in insertion order
func (m *Model) Groups() []Group {
	return m.groups
}
