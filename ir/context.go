package ir

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Context is an immutable name -> Value mapping. Contexts are chains of layers that
// share their tails, so binding on top of an existing context never copies it.
// The zero value is the empty context.
type Context struct {
	top *layer
}

type layer struct {
	parent *layer
	vars   map[string]Value
	depth  int
}

// chains longer than this are flattened on the next push
const maxContextDepth = 8

func NewContext(vars map[string]Value) Context {
	if len(vars) == 0 {
		return Context{}
	}
	return Context{
		top: &layer{
			vars:  maps.Clone(vars),
			depth: 1,
		},
	}
}

func (c Context) IsEmpty() bool {
	return c.top == nil
}

func (c Context) Lookup(name string) (Value, bool) {
	for l := c.top; l != nil; l = l.parent {
		if v, ok := l.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Symbol returns the symbol bound to name. Unbound names and names bound to state
// references are IR invariant violations.
func (c Context) Symbol(name string) Symbol {
	v, ok := c.Lookup(name)
	if !ok {
		internal(ErrUnboundName, "symbol %s in %s", name, c)
	}
	sym, ok := v.(Symbol)
	if !ok {
		internal(ErrKindMismatch, "%s is bound to state %s, not a symbol", name, v)
	}
	return sym
}

// Ref returns the state reference bound to name.
func (c Context) Ref(name string) StateRef {
	v, ok := c.Lookup(name)
	if !ok {
		internal(ErrUnboundName, "state %s in %s", name, c)
	}
	ref, ok := v.(StateRef)
	if !ok {
		internal(ErrKindMismatch, "%s is bound to symbol %s, not a state", name, v)
	}
	return ref
}

func (c Context) With(name string, value Value) Context {
	return c.push(map[string]Value{
		name: value,
	})
}

// Merge returns c with the bindings of over on top. Keys bound in both resolve to
// over's value.
func (c Context) Merge(over Context) Context {
	if over.top == nil {
		return c
	}
	if c.top == nil {
		return over
	}
	return c.push(over.flatten())
}

// Restrict returns a fresh context holding exactly names, all of which must be bound.
func (c Context) Restrict(names []string) Context {
	vars := make(map[string]Value, len(names))
	for _, name := range names {
		v, ok := c.Lookup(name)
		if !ok {
			internal(ErrUnboundName, "parameter %s in %s", name, c)
		}
		vars[name] = v
	}
	return NewContext(vars)
}

func (c Context) push(vars map[string]Value) Context {
	l := &layer{
		parent: c.top,
		vars:   vars,
		depth:  1,
	}
	if c.top != nil {
		l.depth = c.top.depth + 1
	}
	if l.depth > maxContextDepth {
		return NewContext(Context{top: l}.flatten())
	}
	return Context{top: l}
}

func (c Context) flatten() map[string]Value {
	var layers []*layer
	for l := c.top; l != nil; l = l.parent {
		layers = append(layers, l)
	}
	ret := make(map[string]Value)
	for _, l := range slices.Backward(layers) {
		maps.Copy(ret, l.vars)
	}
	return ret
}

func (c Context) Len() int {
	return len(c.flatten())
}

// All yields the visible bindings ordered by name.
func (c Context) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		vars := c.flatten()
		for _, name := range slices.Sorted(maps.Keys(vars)) {
			if !yield(name, vars[name]) {
				return
			}
		}
	}
}

func (c Context) Equal(other Context) bool {
	a := c.flatten()
	b := other.flatten()
	if len(a) != len(b) {
		return false
	}
	for name, v := range a {
		if w, ok := b[name]; !ok || v != w {
			return false
		}
	}
	return true
}

func (c Context) String() string {
	var b strings.Builder
	b.WriteString("{")
	i := 0
	for name, v := range c.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(v.String())
		i++
	}
	b.WriteString("}")
	return b.String()
}
