package ir

import "strings"

type StateRef interface {
	Value
	Arg
	Bind(ctx Context) StateRef
	Instantiate(ctx Context) *State
}

// DirectRef names a zero-parameter state.
type DirectRef struct {
	State *State
}

// CallRef names an m-function together with its positional arguments.
type CallRef struct {
	State *State
	Args  []Arg
}

// Placeholder is a state-kind parameter name of the enclosing m-function.
type Placeholder struct {
	Name string
}

type boundRef struct {
	template StateRef
	pending  Context
}

func (DirectRef) value()   {}
func (*CallRef) value()    {}
func (Placeholder) value() {}
func (*boundRef) value()   {}

func (d DirectRef) Bind(Context) StateRef {
	return d
}

func (d DirectRef) Instantiate(Context) *State {
	if len(d.State.params) > 0 {
		internal(ErrArity, "direct reference to m-function %s", d.State.name)
	}
	return d.State
}

func (d DirectRef) resolve(Context) Value {
	return d
}

func (d DirectRef) describe(Context) string {
	return d.State.name
}

func (d DirectRef) String() string {
	return d.State.name
}

func (c *CallRef) Bind(ctx Context) StateRef {
	return &boundRef{
		template: c,
		pending:  ctx,
	}
}

func (c *CallRef) Instantiate(ctx Context) *State {
	params := c.State.params
	if len(params) != len(c.Args) {
		internal(ErrArity, "%s takes %d arguments, got %d", c.State.name, len(params), len(c.Args))
	}
	vars := make(map[string]Value, len(params))
	for i, param := range params {
		vars[param] = c.Args[i].resolve(ctx)
	}
	return c.State.Instantiate(NewContext(vars))
}

func (c *CallRef) resolve(ctx Context) Value {
	return c.Bind(ctx)
}

func (c *CallRef) describe(ctx Context) string {
	var b strings.Builder
	b.WriteString(c.State.name)
	b.WriteString("(")
	for i, arg := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.describe(ctx))
	}
	b.WriteString(")")
	return b.String()
}

func (c *CallRef) String() string {
	return c.describe(Context{})
}

func (p Placeholder) Bind(ctx Context) StateRef {
	return &boundRef{
		template: p,
		pending:  ctx,
	}
}

// Instantiate collapses the placeholder: the bound reference carries its own pending
// context, so it is forced with an empty one.
func (p Placeholder) Instantiate(ctx Context) *State {
	return ctx.Ref(p.Name).Instantiate(Context{})
}

func (p Placeholder) resolve(ctx Context) Value {
	return p.Bind(ctx)
}

func (p Placeholder) describe(ctx Context) string {
	if v, ok := ctx.Lookup(p.Name); ok {
		if ref, ok := v.(StateRef); ok {
			return ref.describe(Context{})
		}
	}
	return p.Name
}

func (p Placeholder) String() string {
	return p.Name
}

func (b *boundRef) Bind(ctx Context) StateRef {
	return &boundRef{
		template: b.template,
		pending:  b.pending.Merge(ctx),
	}
}

func (b *boundRef) Instantiate(ctx Context) *State {
	return b.template.Instantiate(b.pending.Merge(ctx))
}

func (b *boundRef) resolve(ctx Context) Value {
	return b.Bind(ctx)
}

func (b *boundRef) describe(ctx Context) string {
	return b.template.describe(b.pending.Merge(ctx))
}

func (b *boundRef) String() string {
	return b.describe(Context{})
}
