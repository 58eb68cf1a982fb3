package linker

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/reusee/amc/ast"
	"github.com/reusee/amc/ir"
)

const (
	acceptName = "ACCEPT"
	rejectName = "REJECT"
)

type Options struct {
	// Include loads the declarations of an included document. Without it, an
	// ast.Include fails the link.
	Include func(path string) ([]ast.Decl, error)
}

type key struct {
	name  string
	kinds string
}

func keyOf(name string, kinds []ast.ArgKind) key {
	var b strings.Builder
	for _, kind := range kinds {
		b.WriteByte(byte('0' + kind))
	}
	return key{
		name:  name,
		kinds: b.String(),
	}
}

type entry struct {
	key        key
	name       string
	params     []ast.Param
	rules      []ast.Rule
	builder    *ir.StateBuilder
	referenced bool
	linked     []linkedRule
}

func (e *entry) signature() []ast.ArgKind {
	ret := make([]ast.ArgKind, 0, len(e.params))
	for _, param := range e.params {
		ret = append(ret, param.Kind)
	}
	return ret
}

func (e *entry) String() string {
	if len(e.params) == 0 {
		return e.name
	}
	return ast.FormatSignature(e.name, e.signature())
}

type linkedRule struct {
	match     ir.Symbol
	isDefault bool
	capture   string
	node      ir.RuleNode
}

type linker struct {
	opts    Options
	entries map[key]*entry
	order   []*entry
	symbols map[ir.Symbol]struct{}
	initial ast.StateRef
	last    *entry
}

// Link resolves declarations into a machine. Only states reachable from the initial
// state are linked and kept.
func Link(decls []ast.Decl, opts Options) (*ir.Machine, error) {
	l := &linker{
		opts:    opts,
		entries: make(map[key]*entry),
		symbols: make(map[ir.Symbol]struct{}),
	}

	decls, err := l.expand(decls, nil)
	if err != nil {
		return nil, err
	}

	if err := l.declare(decls); err != nil {
		return nil, err
	}

	init, err := l.selectInitial()
	if err != nil {
		return nil, err
	}

	var referenced []*entry
	for _, e := range l.order {
		if e.referenced {
			referenced = append(referenced, e)
		}
	}
	slices.SortStableFunc(referenced, func(a, b *entry) int {
		return cmp.Or(
			cmp.Compare(min(len(a.params), 1), min(len(b.params), 1)),
			cmp.Compare(a.name, b.name),
			cmp.Compare(len(a.params), len(b.params)),
			cmp.Compare(a.key.kinds, b.key.kinds),
		)
	})
	states := make([]*ir.State, 0, len(referenced))
	for _, e := range referenced {
		states = append(states, l.materialize(e))
	}

	return &ir.Machine{
		Symbols: slices.Sorted(maps.Keys(l.symbols)),
		States:  states,
		Init:    init,
	}, nil
}

// expand replaces includes by the declarations they name, depth first.
func (l *linker) expand(decls []ast.Decl, stack []string) ([]ast.Decl, error) {
	var ret []ast.Decl
	for _, decl := range decls {
		include, ok := decl.(ast.Include)
		if !ok {
			ret = append(ret, decl)
			continue
		}
		if l.opts.Include == nil {
			return nil, &Error{
				Err:  ErrUnexpandedInclude,
				Name: include.Path,
			}
		}
		if slices.Contains(stack, include.Path) {
			return nil, &Error{
				Err:  ErrIncludeCycle,
				Name: include.Path,
			}
		}
		included, err := l.opts.Include(include.Path)
		if err != nil {
			return nil, err
		}
		included, err = l.expand(included, append(stack, include.Path))
		if err != nil {
			return nil, err
		}
		ret = append(ret, included...)
	}
	return ret, nil
}

func (l *linker) declare(decls []ast.Decl) error {
	for _, decl := range decls {
		switch decl := decl.(type) {

		case ast.Symbols:
			for _, sym := range decl.Symbols {
				l.addSymbol(ir.Symbol(sym.Name))
			}

		case ast.Initial:
			l.initial = decl.Ref

		case ast.State:
			e, err := l.register(decl.Name, nil, decl.Rules)
			if err != nil {
				return err
			}
			l.last = e

		case ast.MFunction:
			if _, err := l.register(decl.Name, decl.Params, decl.Rules); err != nil {
				return err
			}

		case ast.Include:
			return &Error{
				Err:  ErrUnexpandedInclude,
				Name: decl.Path,
			}

		default:
			unknown(ErrUnknownDeclarationKind, decl)
		}
	}
	return nil
}

func (l *linker) register(name string, params []ast.Param, rules []ast.Rule) (*entry, error) {
	e := &entry{
		name:   name,
		params: params,
		rules:  rules,
	}
	e.key = keyOf(name, e.signature())
	if _, ok := l.entries[e.key]; ok || name == acceptName || name == rejectName {
		return nil, &Error{
			Err:       ErrDuplicateDefinition,
			Name:      name,
			Signature: e.signature(),
		}
	}
	names := make([]string, 0, len(params))
	for _, param := range params {
		if slices.Contains(names, param.Name) {
			return nil, &Error{
				Err:       ErrDuplicateDefinition,
				Name:      param.Name,
				Signature: []ast.ArgKind{param.Kind},
				In:        e.String(),
			}
		}
		names = append(names, param.Name)
	}
	e.builder = ir.NewStateBuilder(name, names)
	l.entries[e.key] = e
	l.order = append(l.order, e)
	return e, nil
}

func (l *linker) selectInitial() (ir.StateRef, error) {
	if l.initial != nil {
		ref, _, err := l.resolveRef(nil, nil, l.initial)
		return ref, err
	}
	if l.last == nil {
		return nil, &Error{
			Err: ErrNoInitialState,
		}
	}
	if err := l.visit(l.last); err != nil {
		return nil, err
	}
	return ir.DirectRef{
		State: l.last.builder.State(),
	}, nil
}

func (l *linker) addSymbol(sym ir.Symbol) {
	if sym == ir.Blank {
		return
	}
	l.symbols[sym] = struct{}{}
}

// scope is the parameter environment of the declaration being linked.
type scope struct {
	entry   *entry
	states  map[string]bool
	symbols map[string]bool
}

func newScope(e *entry) *scope {
	s := &scope{
		entry:   e,
		states:  make(map[string]bool),
		symbols: make(map[string]bool),
	}
	for _, param := range e.params {
		switch param.Kind {
		case ast.ArgState:
			s.states[param.Name] = true
		case ast.ArgSymbol:
			s.symbols[param.Name] = true
		}
	}
	return s
}

func (s *scope) String() string {
	if s == nil {
		return ""
	}
	return s.entry.String()
}

// visit links every rule of a declaration the first time it is reached.
func (l *linker) visit(e *entry) error {
	if e.referenced {
		return nil
	}
	e.referenced = true

	sc := newScope(e)
	hasDefault := false
	for _, rule := range e.rules {
		linked, err := l.linkRule(sc, rule)
		if err != nil {
			return err
		}
		if linked.isDefault {
			if hasDefault {
				return &Error{
					Err:  ErrMultipleDefaultRules,
					Name: e.String(),
				}
			}
			hasDefault = true
		}
		e.linked = append(e.linked, linked)
	}
	return nil
}

func (l *linker) linkRule(sc *scope, rule ast.Rule) (ret linkedRule, err error) {
	bound := maps.Clone(sc.symbols)
	switch rule.Match.Kind {
	case ast.SymbolLiteral:
		ret.match = ir.Symbol(rule.Match.Name)
		l.addSymbol(ret.match)
	case ast.SymbolGeneric, ast.SymbolWildcard:
		if sc.symbols[rule.Match.Name] {
			// keyed by the parameter, replaced by the argument on instantiation
			ret.match = ir.Symbol(rule.Match.Name)
		} else {
			ret.isDefault = true
			ret.capture = rule.Match.Name
			bound[rule.Match.Name] = true
		}
	}

	dynamic := false
	actions := make([]ir.Action, 0, len(rule.Actions))
	for _, action := range rule.Actions {
		switch action := action.(type) {
		case ast.Left:
			actions = append(actions, ir.Left{})
		case ast.Right:
			actions = append(actions, ir.Right{})
		case ast.Print:
			if !action.Symbol.IsGeneric() {
				sym := ir.Symbol(action.Symbol.Name)
				l.addSymbol(sym)
				actions = append(actions, ir.Print{
					Symbol: sym,
				})
				break
			}
			if !bound[action.Symbol.Name] {
				return ret, &Error{
					Err:  ErrUnboundName,
					Name: action.Symbol.Name,
					In:   sc.String(),
				}
			}
			dynamic = true
			actions = append(actions, ir.PrintVar{
				Name: action.Symbol.Name,
			})
		default:
			unknown(ErrUnknownActionKind, action)
		}
	}

	target, targetDynamic, err := l.resolveRef(sc, bound, rule.Target)
	if err != nil {
		return ret, err
	}

	if dynamic || targetDynamic {
		ret.node = &ir.RuleTemplate{
			Actions: actions,
			Target:  target,
		}
	} else {
		ret.node = &ir.Rule{
			Actions: actions,
			Target:  target,
		}
	}
	return ret, nil
}

func sentinelRef(name string) ir.StateRef {
	switch name {
	case acceptName:
		return ir.DirectRef{State: ir.Accept}
	case rejectName:
		return ir.DirectRef{State: ir.Reject}
	}
	return nil
}

// resolveRef resolves a reference and visits the declaration it names. It reports
// whether the result depends on names bound at instantiation.
func (l *linker) resolveRef(sc *scope, bound map[string]bool, ref ast.StateRef) (ir.StateRef, bool, error) {
	switch ref := ref.(type) {

	case ast.Direct:
		if sc != nil && sc.states[ref.Name] {
			return ir.Placeholder{
				Name: ref.Name,
			}, true, nil
		}
		if sentinel := sentinelRef(ref.Name); sentinel != nil {
			return sentinel, false, nil
		}
		e, ok := l.entries[keyOf(ref.Name, nil)]
		if !ok {
			return nil, false, &Error{
				Err:  ErrUnresolvedReference,
				Name: ref.Name,
				In:   sc.String(),
			}
		}
		if err := l.visit(e); err != nil {
			return nil, false, err
		}
		return ir.DirectRef{
			State: e.builder.State(),
		}, false, nil

	case ast.Call:
		if len(ref.Args) == 0 {
			if sentinel := sentinelRef(ref.Name); sentinel != nil {
				return sentinel, false, nil
			}
		}
		dynamic := false
		args := make([]ir.Arg, 0, len(ref.Args))
		for _, arg := range ref.Args {
			switch arg := arg.(type) {
			case ast.Symbol:
				if !arg.IsGeneric() {
					sym := ir.Symbol(arg.Name)
					l.addSymbol(sym)
					args = append(args, sym)
					break
				}
				if !bound[arg.Name] {
					return nil, false, &Error{
						Err:  ErrUnboundName,
						Name: arg.Name,
						In:   sc.String(),
					}
				}
				dynamic = true
				args = append(args, ir.SymbolVar{
					Name: arg.Name,
				})
			case ast.StateRef:
				resolved, argDynamic, err := l.resolveRef(sc, bound, arg)
				if err != nil {
					return nil, false, err
				}
				dynamic = dynamic || argDynamic
				args = append(args, resolved)
			default:
				unknown(ErrUnknownArgumentKind, arg)
			}
		}
		signature := ref.Signature()
		e, ok := l.entries[keyOf(ref.Name, signature)]
		if !ok {
			return nil, false, &Error{
				Err:       ErrUnresolvedReference,
				Name:      ref.Name,
				Signature: signature,
				Call:      true,
				In:        sc.String(),
			}
		}
		if err := l.visit(e); err != nil {
			return nil, false, err
		}
		if len(args) == 0 {
			return ir.DirectRef{
				State: e.builder.State(),
			}, dynamic, nil
		}
		return &ir.CallRef{
			State: e.builder.State(),
			Args:  args,
		}, dynamic, nil

	default:
		unknown(ErrUnknownReferenceKind, ref)
	}
	panic("unreachable")
}

func (l *linker) materialize(e *entry) *ir.State {
	for _, rule := range e.linked {
		if rule.isDefault {
			e.builder.SetDefault(rule.capture, rule.node)
			continue
		}
		e.builder.AddRule(rule.match, rule.node)
	}
	return e.builder.Build()
}
