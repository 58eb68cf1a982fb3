package ir

import (
	"cmp"
	"iter"
	"maps"
	"slices"
	"strings"
)

// State is a plain state when it has no parameters, an m-function template otherwise.
// States are filled through a StateBuilder and never change after Build.
type State struct {
	name     string
	params   []string
	entries  []ruleEntry
	index    map[Symbol]int
	capture  string
	fallback RuleNode
	args     Context
	template *State
	built    bool
	sentinel bool
}

type ruleEntry struct {
	symbol Symbol
	rule   RuleNode
}

var (
	Accept = newSentinel("ACCEPT")
	Reject = newSentinel("REJECT")
)

// rejectRule is what a state without a matching rule and without a default rule does.
var rejectRule = &Rule{
	Target: DirectRef{State: Reject},
}

func newSentinel(name string) *State {
	return &State{
		name:     name,
		index:    map[Symbol]int{},
		built:    true,
		sentinel: true,
	}
}

func (s *State) Name() string {
	return s.name
}

func (s *State) Params() []string {
	return slices.Clone(s.params)
}

func (s *State) Arity() int {
	return len(s.params)
}

func (s *State) IsSentinel() bool {
	return s.sentinel
}

// Template returns the m-function s was instantiated from, nil for declared states.
func (s *State) Template() *State {
	return s.template
}

// Args returns the argument context of an instantiated m-function.
func (s *State) Args() Context {
	return s.args
}

// Rules yields the exact-match rules in declaration order.
func (s *State) Rules() iter.Seq2[Symbol, RuleNode] {
	return func(yield func(Symbol, RuleNode) bool) {
		for _, entry := range s.entries {
			if !yield(entry.symbol, entry.rule) {
				return
			}
		}
	}
}

func (s *State) Rule(sym Symbol) (RuleNode, bool) {
	i, ok := s.index[sym]
	if !ok {
		return nil, false
	}
	return s.entries[i].rule, true
}

// Default returns the default rule and the name the read symbol is captured under.
// An empty capture means the rule was declared with the anonymous wildcard.
func (s *State) Default() (string, RuleNode) {
	return s.capture, s.fallback
}

func (s *State) String() string {
	return s.name
}

func (s *State) mustBuilt() {
	if !s.built {
		internal(ErrNotBuilt, "state %s", s.name)
	}
}

// put inserts or replaces the rule for key. A replaced rule keeps its position.
func (s *State) put(key Symbol, rule RuleNode) {
	if i, ok := s.index[key]; ok {
		s.entries[i].rule = rule
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, ruleEntry{
		symbol: key,
		rule:   rule,
	})
}

// Instantiate specializes an m-function template. Only the template's own parameters
// are visible to its rules. Plain states are returned as is.
func (s *State) Instantiate(ctx Context) *State {
	if len(s.params) == 0 {
		return s
	}
	s.mustBuilt()
	scope := ctx.Restrict(s.params)

	ret := &State{
		name:     s.instanceName(scope),
		index:    make(map[Symbol]int, len(s.entries)),
		capture:  s.capture,
		args:     scope,
		template: s,
		built:    true,
	}
	for _, entry := range s.entries {
		key := entry.symbol
		if slices.Contains(s.params, string(key)) {
			if v, ok := scope.Lookup(string(key)); ok {
				if sym, ok := v.(Symbol); ok {
					key = sym
				}
			}
		}
		ret.put(key, entry.rule.Bind(scope))
	}
	if s.fallback != nil {
		ret.fallback = s.fallback.Bind(scope)
	}
	return ret
}

func (s *State) instanceName(scope Context) string {
	var b strings.Builder
	b.WriteString(s.name)
	b.WriteString("(")
	for i, param := range s.params {
		if i > 0 {
			b.WriteString(", ")
		}
		v, _ := scope.Lookup(param)
		b.WriteString(param)
		b.WriteString("=")
		b.WriteString(v.String())
	}
	b.WriteString(")")
	return b.String()
}

// RuleFor returns the executable rule for the symbol under the head.
func (s *State) RuleFor(sym Symbol) *Rule {
	s.mustBuilt()
	if i, ok := s.index[sym]; ok {
		return s.entries[i].rule.Instantiate(Context{})
	}
	if s.fallback != nil {
		return s.fallback.Instantiate(NewContext(map[string]Value{
			cmp.Or(s.capture, Wildcard): sym,
		}))
	}
	return rejectRule
}

// Keys returns the exact-match symbols in sorted order.
func (s *State) Keys() []Symbol {
	return slices.Sorted(maps.Keys(s.index))
}
