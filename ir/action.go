package ir

type Action interface {
	Bind(ctx Context) Action
	Instantiate(ctx Context) Action
	String() string
	action()
}

type Left struct{}

type Right struct{}

type Print struct {
	Symbol Symbol
}

// PrintVar prints the symbol bound to Name.
type PrintVar struct {
	Name string
}

type boundAction struct {
	template Action
	pending  Context
}

func (Left) action()         {}
func (Right) action()        {}
func (Print) action()        {}
func (PrintVar) action()     {}
func (*boundAction) action() {}

func (a Left) Bind(Context) Action {
	return a
}

func (a Left) Instantiate(Context) Action {
	return a
}

func (Left) String() string {
	return "<-"
}

func (a Right) Bind(Context) Action {
	return a
}

func (a Right) Instantiate(Context) Action {
	return a
}

func (Right) String() string {
	return "->"
}

func (a Print) Bind(Context) Action {
	return a
}

func (a Print) Instantiate(Context) Action {
	return a
}

func (a Print) String() string {
	return "P:" + a.Symbol.String()
}

func (a PrintVar) Bind(ctx Context) Action {
	return &boundAction{
		template: a,
		pending:  ctx,
	}
}

func (a PrintVar) Instantiate(ctx Context) Action {
	return Print{
		Symbol: ctx.Symbol(a.Name),
	}
}

func (a PrintVar) String() string {
	return "P:" + a.Name
}

func (b *boundAction) Bind(ctx Context) Action {
	return &boundAction{
		template: b.template,
		pending:  b.pending.Merge(ctx),
	}
}

func (b *boundAction) Instantiate(ctx Context) Action {
	return b.template.Instantiate(b.pending.Merge(ctx))
}

func (b *boundAction) String() string {
	return b.template.String() + b.pending.String()
}
