package ir

import (
	"errors"
	"slices"
	"testing"
)

func build(name string, params []string, fn func(b *StateBuilder)) *State {
	b := NewStateBuilder(name, params)
	if fn != nil {
		fn(b)
	}
	return b.Build()
}

func symbols(kv ...string) Context {
	vars := make(map[string]Value)
	for i := 0; i+1 < len(kv); i += 2 {
		vars[kv[i]] = Symbol(kv[i+1])
	}
	return NewContext(vars)
}

func ruleKeys(s *State) []Symbol {
	var keys []Symbol
	for sym := range s.Rules() {
		keys = append(keys, sym)
	}
	return keys
}

func expectInternal(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		p := recover()
		if p == nil {
			t.Fatal("should panic")
		}
		err, ok := p.(InternalError)
		if !ok {
			t.Fatalf("got %v", p)
		}
		if !errors.Is(err, target) {
			t.Fatalf("got %v", err)
		}
	}()
	fn()
}

func TestFinalNodes(t *testing.T) {
	s := build("S", nil, nil)
	rule := &Rule{
		Actions: []Action{Left{}, Print{Symbol: "x"}, Right{}},
		Target:  DirectRef{State: s},
	}
	for _, ctx := range []Context{
		{},
		symbols("a", "1"),
		symbols("a", "1", "b", "2").With("S", DirectRef{State: Accept}),
	} {
		if rule.Instantiate(ctx) != rule {
			t.Fatal()
		}
		if rule.Bind(ctx) != RuleNode(rule) {
			t.Fatal()
		}
		for _, action := range rule.Actions {
			if action.Instantiate(ctx) != action {
				t.Fatalf("got %v", action.Instantiate(ctx))
			}
		}
		ref := DirectRef{State: s}
		if ref.Bind(ctx) != StateRef(ref) {
			t.Fatal()
		}
		if ref.Instantiate(ctx) != s {
			t.Fatal()
		}
		if s.Instantiate(ctx) != s {
			t.Fatal()
		}
	}
}

func TestBindComposition(t *testing.T) {
	f := build("F", []string{"_x"}, func(b *StateBuilder) {
		b.AddRule("_x", &Rule{
			Target: DirectRef{State: Accept},
		})
	})
	template := &RuleTemplate{
		Actions: []Action{
			PrintVar{Name: "a"},
			Right{},
			PrintVar{Name: "b"},
		},
		Target: &CallRef{
			State: f,
			Args:  []Arg{SymbolVar{Name: "b"}},
		},
	}

	c1 := symbols("a", "1", "b", "2")
	c2 := symbols("b", "3")
	bound := template.Bind(c1).Bind(c2).Instantiate(Context{})
	direct := template.Instantiate(c1.Merge(c2))

	if bound.String() != direct.String() {
		t.Fatalf("got %s, %s", bound, direct)
	}
	if str := bound.String(); str != "P:1 -> P:3 F(3)" {
		t.Fatalf("got %s", str)
	}
	if a, b := bound.Next().Name(), direct.Next().Name(); a != b || a != "F(_x=3)" {
		t.Fatalf("got %s, %s", a, b)
	}
	if bound.Actions[2] != (Print{Symbol: "3"}) {
		t.Fatalf("got %#v", bound.Actions[2])
	}
}

func TestDefaultDispatch(t *testing.T) {
	s := build("S", nil, func(b *StateBuilder) {
		b.AddRule("1", &Rule{
			Actions: []Action{Print{Symbol: "0"}},
			Target:  DirectRef{State: Reject},
		})
		if !b.SetDefault("_x", &RuleTemplate{
			Actions: []Action{PrintVar{Name: "_x"}},
			Target:  DirectRef{State: Accept},
		}) {
			t.Fatal()
		}
	})

	rule := s.RuleFor("7")
	if len(rule.Actions) != 1 || rule.Actions[0] != (Print{Symbol: "7"}) {
		t.Fatalf("got %v", rule)
	}
	if rule.Next() != Accept {
		t.Fatal()
	}

	rule = s.RuleFor("1")
	if rule.Actions[0] != (Print{Symbol: "0"}) || rule.Next() != Reject {
		t.Fatalf("got %v", rule)
	}
}

func TestAnonymousDefault(t *testing.T) {
	s := build("S", nil, func(b *StateBuilder) {
		b.SetDefault(Wildcard, &RuleTemplate{
			Actions: []Action{PrintVar{Name: Wildcard}},
			Target:  DirectRef{State: Accept},
		})
	})
	if capture, _ := s.Default(); capture != "" {
		t.Fatalf("got %q", capture)
	}
	if rule := s.RuleFor("z"); rule.Actions[0] != (Print{Symbol: "z"}) {
		t.Fatalf("got %v", rule)
	}
}

func TestNoMatchRejects(t *testing.T) {
	s := build("S", nil, func(b *StateBuilder) {
		b.AddRule("a", &Rule{Target: DirectRef{State: Accept}})
	})
	rule := s.RuleFor("b")
	if len(rule.Actions) != 0 || rule.Next() != Reject {
		t.Fatalf("got %v", rule)
	}
	if rule := s.RuleFor(Blank); rule.Next() != Reject {
		t.Fatalf("got %v", rule)
	}
}

func TestParamKeySubstitution(t *testing.T) {
	f := build("F", []string{"_s"}, func(b *StateBuilder) {
		b.AddRule("9", &Rule{Target: DirectRef{State: Reject}})
		b.AddRule("_s", &RuleTemplate{
			Actions: []Action{PrintVar{Name: "_s"}},
			Target:  DirectRef{State: Accept},
		})
		b.AddRule("a", &Rule{Target: DirectRef{State: Reject}})
	})

	inst := f.Instantiate(symbols("_s", "9", "unrelated", "x"))
	if inst.Name() != "F(_s=9)" {
		t.Fatalf("got %s", inst.Name())
	}
	if inst.Template() != f {
		t.Fatal()
	}
	if inst.Args().Len() != 1 {
		t.Fatalf("got %v", inst.Args())
	}
	// later declaration wins the collision
	rule := inst.RuleFor("9")
	if rule.Next() != Accept || rule.Actions[0] != (Print{Symbol: "9"}) {
		t.Fatalf("got %v", rule)
	}
	// the replaced entry keeps the position of the earlier declaration
	if keys := ruleKeys(inst); !slices.Equal(keys, []Symbol{"9", "a"}) {
		t.Fatalf("got %v", keys)
	}
	if inst.RuleFor("_s").Next() != Reject {
		t.Fatal()
	}

	inst = f.Instantiate(symbols("_s", "1"))
	if keys := ruleKeys(inst); !slices.Equal(keys, []Symbol{"9", "1", "a"}) {
		t.Fatalf("got %v", keys)
	}
	if inst.RuleFor("1").Next() != Accept {
		t.Fatal()
	}
	if inst.RuleFor("9").Next() != Reject {
		t.Fatal()
	}
}

func TestPlaceholderChain(t *testing.T) {
	h := build("H", []string{"A"}, func(b *StateBuilder) {
		b.AddRule("x", &RuleTemplate{
			Target: Placeholder{Name: "A"},
		})
	})
	k := build("K", []string{"B"}, func(b *StateBuilder) {
		b.AddRule("y", &RuleTemplate{
			Target: &CallRef{
				State: h,
				Args:  []Arg{Placeholder{Name: "B"}},
			},
		})
	})
	start := (&CallRef{
		State: k,
		Args:  []Arg{DirectRef{State: Accept}},
	}).Instantiate(Context{})
	if start.Name() != "K(B=ACCEPT)" {
		t.Fatalf("got %s", start.Name())
	}
	next := start.RuleFor("y").Next()
	if next.Name() != "H(A=ACCEPT)" {
		t.Fatalf("got %s", next.Name())
	}
	if next.RuleFor("x").Next() != Accept {
		t.Fatal()
	}
}

func TestRecursiveTemplate(t *testing.T) {
	// R(_a) prints _a forever to the right, stops on blank
	b := NewStateBuilder("R", []string{"_a"})
	r := b.State()
	b.AddRule(Blank, &Rule{Target: DirectRef{State: Accept}})
	b.SetDefault(Wildcard, &RuleTemplate{
		Actions: []Action{PrintVar{Name: "_a"}, Right{}},
		Target: &CallRef{
			State: r,
			Args:  []Arg{SymbolVar{Name: "_a"}},
		},
	})
	b.Build()

	state := (&CallRef{State: r, Args: []Arg{Symbol("q")}}).Instantiate(Context{})
	for range 100 {
		rule := state.RuleFor("z")
		if rule.Actions[0] != (Print{Symbol: "q"}) {
			t.Fatalf("got %v", rule)
		}
		state = rule.Next()
		if state.Name() != "R(_a=q)" {
			t.Fatalf("got %s", state.Name())
		}
	}
	if state.RuleFor(Blank).Next() != Accept {
		t.Fatal()
	}
}

func TestInternalErrors(t *testing.T) {
	expectInternal(t, ErrUnboundName, func() {
		PrintVar{Name: "x"}.Instantiate(Context{})
	})
	expectInternal(t, ErrKindMismatch, func() {
		PrintVar{Name: "x"}.Instantiate(Context{}.With("x", DirectRef{State: Accept}))
	})
	expectInternal(t, ErrUnboundName, func() {
		Placeholder{Name: "A"}.Instantiate(symbols("B", "1"))
	})
	f := build("F", []string{"_a", "_b"}, nil)
	expectInternal(t, ErrUnboundName, func() {
		f.Instantiate(symbols("_a", "1"))
	})
	expectInternal(t, ErrArity, func() {
		(&CallRef{State: f, Args: []Arg{Symbol("1")}}).Instantiate(Context{})
	})
	expectInternal(t, ErrArity, func() {
		DirectRef{State: f}.Instantiate(Context{})
	})
}

func TestBuilder(t *testing.T) {
	b := NewStateBuilder("S", nil)
	if b.HasDefault() {
		t.Fatal()
	}
	expectInternal(t, ErrNotBuilt, func() {
		b.State().RuleFor("a")
	})
	if !b.SetDefault("_x", &Rule{Target: DirectRef{State: Accept}}) {
		t.Fatal()
	}
	if b.SetDefault("_y", &Rule{Target: DirectRef{State: Reject}}) {
		t.Fatal()
	}
	b.AddRule("a", &Rule{Target: DirectRef{State: Reject}})
	b.AddRule("b", &Rule{Target: DirectRef{State: Reject}})
	b.AddRule("a", &Rule{Target: DirectRef{State: Accept}})
	s := b.Build()

	var keys []Symbol
	for sym := range s.Rules() {
		keys = append(keys, sym)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("got %v", keys)
	}
	if s.RuleFor("a").Next() != Accept {
		t.Fatal()
	}
	expectInternal(t, ErrSealed, func() {
		b.AddRule("c", &Rule{Target: DirectRef{State: Accept}})
	})
}

func TestSentinels(t *testing.T) {
	if !Accept.IsSentinel() || !Reject.IsSentinel() {
		t.Fatal()
	}
	if Accept.Name() != "ACCEPT" || Reject.Name() != "REJECT" {
		t.Fatal()
	}
	if Accept.Arity() != 0 {
		t.Fatal()
	}
}

func TestMachine(t *testing.T) {
	s := build("S", nil, nil)
	f1 := build("F", []string{"_a"}, nil)
	f2 := build("F", []string{"_a", "B"}, nil)
	m := &Machine{
		States: []*State{s, f1, f2},
		Init:   DirectRef{State: s},
	}
	if m.InitialState() != s {
		t.Fatal()
	}
	if len(m.Overloads("F")) != 2 {
		t.Fatal()
	}
	if m.Find("F", 2) != f2 {
		t.Fatal()
	}
	if m.Find("G", 0) != nil {
		t.Fatal()
	}
}
