package ir

// Machine is a linked program.
type Machine struct {
	// Symbols is sorted and deduplicated. The blank symbol is never listed.
	Symbols []Symbol
	// States holds the referenced declarations, plain states first.
	States []*State
	Init   StateRef
}

// InitialState instantiates the initial reference.
func (m *Machine) InitialState() *State {
	return m.Init.Instantiate(Context{})
}

// Overloads returns the states declared under name, in machine order.
func (m *Machine) Overloads(name string) []*State {
	var ret []*State
	for _, state := range m.States {
		if state.name == name {
			ret = append(ret, state)
		}
	}
	return ret
}

// Find returns the state declared as name with the given number of parameters.
func (m *Machine) Find(name string, arity int) *State {
	for _, state := range m.Overloads(name) {
		if len(state.params) == arity {
			return state
		}
	}
	return nil
}
