package ast

import "strings"

type Decl interface {
	decl()
}

// Include names another machine document. Producers normally expand includes
// before handing declarations to the linker.
type Include struct {
	Path string
}

type Symbols struct {
	Symbols []Symbol
}

type Initial struct {
	Ref StateRef
}

type MFunction struct {
	Name   string
	Params []Param
	Rules  []Rule
}

type State struct {
	Name  string
	Rules []Rule
}

func (Include) decl()   {}
func (Symbols) decl()   {}
func (Initial) decl()   {}
func (MFunction) decl() {}
func (State) decl()     {}

func (m MFunction) Signature() []ArgKind {
	ret := make([]ArgKind, 0, len(m.Params))
	for _, param := range m.Params {
		ret = append(ret, param.Kind)
	}
	return ret
}

type Param struct {
	Kind ArgKind
	Name string
}

type ArgKind uint8

const (
	ArgState ArgKind = iota
	ArgSymbol
)

func (k ArgKind) String() string {
	switch k {
	case ArgState:
		return "State"
	case ArgSymbol:
		return "Symbol"
	}
	return "Unknown"
}

// FormatSignature renders name(Kind, Kind...) as used in diagnostics.
func FormatSignature(name string, kinds []ArgKind) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString("(")
	for i, kind := range kinds {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(kind.String())
	}
	b.WriteString(")")
	return b.String()
}

type Rule struct {
	Match   Symbol
	Actions []Action
	Target  StateRef
}

type Action interface {
	action()
}

type Left struct{}

type Right struct{}

type Print struct {
	Symbol Symbol
}

func (Left) action()  {}
func (Right) action() {}
func (Print) action() {}

// Arg is a call argument: a Symbol or a StateRef.
type Arg interface {
	arg()
}

type StateRef interface {
	Arg
	stateRef()
	RefName() string
}

type Direct struct {
	Name string
}

type Call struct {
	Name string
	Args []Arg
}

func (Symbol) arg() {}
func (Direct) arg() {}
func (Call) arg()   {}

func (Direct) stateRef() {}
func (Call) stateRef()   {}

func (d Direct) RefName() string {
	return d.Name
}

func (c Call) RefName() string {
	return c.Name
}

func (c Call) Signature() []ArgKind {
	ret := make([]ArgKind, 0, len(c.Args))
	for _, arg := range c.Args {
		if _, ok := arg.(Symbol); ok {
			ret = append(ret, ArgSymbol)
		} else {
			ret = append(ret, ArgState)
		}
	}
	return ret
}
