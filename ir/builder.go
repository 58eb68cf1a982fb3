package ir

import "slices"

// StateBuilder fills one state. The state pointer is available before its rules are
// known so that references to it can be resolved first; it cannot be dispatched on
// until Build.
type StateBuilder struct {
	state *State
}

func NewStateBuilder(name string, params []string) *StateBuilder {
	return &StateBuilder{
		state: &State{
			name:   name,
			params: slices.Clone(params),
			index:  map[Symbol]int{},
		},
	}
}

func (b *StateBuilder) State() *State {
	return b.state
}

func (b *StateBuilder) mustOpen() {
	if b.state.built {
		internal(ErrSealed, "state %s", b.state.name)
	}
}

// AddRule sets the exact-match rule for sym. A later rule for the same symbol replaces
// the earlier one.
func (b *StateBuilder) AddRule(sym Symbol, rule RuleNode) {
	b.mustOpen()
	b.state.put(sym, rule)
}

// SetDefault sets the default rule and its capture name. It reports false if the
// state already has one.
func (b *StateBuilder) SetDefault(capture string, rule RuleNode) bool {
	b.mustOpen()
	if b.state.fallback != nil {
		return false
	}
	if capture == Wildcard {
		capture = ""
	}
	b.state.capture = capture
	b.state.fallback = rule
	return true
}

func (b *StateBuilder) HasDefault() bool {
	return b.state.fallback != nil
}

func (b *StateBuilder) Build() *State {
	b.mustOpen()
	b.state.built = true
	return b.state
}
