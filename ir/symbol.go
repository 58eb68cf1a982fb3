package ir

type Symbol string

const (
	Blank    Symbol = ""
	Wildcard        = "..."
)

// Value is what a Context binds a name to: a Symbol or a StateRef.
type Value interface {
	value()
	String() string
}

// Arg is a call argument.
type Arg interface {
	resolve(ctx Context) Value
	describe(ctx Context) string
}

func (Symbol) value() {}

func (s Symbol) String() string {
	if s == Blank {
		return `\0`
	}
	return string(s)
}

func (s Symbol) resolve(Context) Value {
	return s
}

func (s Symbol) describe(Context) string {
	return s.String()
}

// SymbolVar is a generic symbol argument, looked up when the call is instantiated.
type SymbolVar struct {
	Name string
}

func (v SymbolVar) resolve(ctx Context) Value {
	return ctx.Symbol(v.Name)
}

func (v SymbolVar) describe(ctx Context) string {
	if value, ok := ctx.Lookup(v.Name); ok {
		if sym, ok := value.(Symbol); ok {
			return sym.String()
		}
	}
	return v.Name
}

func (v SymbolVar) String() string {
	return v.Name
}
