package ir

import "strings"

type RuleNode interface {
	Bind(ctx Context) RuleNode
	Instantiate(ctx Context) *Rule
	String() string
}

// Rule is an executable rule: its actions are final. Target may still carry a pending
// context; it is resolved by Next.
type Rule struct {
	Actions []Action
	Target  StateRef
}

// RuleTemplate is a rule as declared, possibly printing or calling with names bound
// by the enclosing state.
type RuleTemplate struct {
	Actions []Action
	Target  StateRef
}

type boundRule struct {
	template RuleNode
	pending  Context
}

func (r *Rule) Bind(Context) RuleNode {
	return r
}

func (r *Rule) Instantiate(Context) *Rule {
	return r
}

// Next resolves the state the rule transitions to.
func (r *Rule) Next() *State {
	return r.Target.Instantiate(Context{})
}

func (r *Rule) String() string {
	return formatRule(r.Actions, r.Target)
}

func (t *RuleTemplate) Bind(ctx Context) RuleNode {
	return &boundRule{
		template: t,
		pending:  ctx,
	}
}

func (t *RuleTemplate) Instantiate(ctx Context) *Rule {
	actions := make([]Action, 0, len(t.Actions))
	for _, action := range t.Actions {
		actions = append(actions, action.Instantiate(ctx))
	}
	return &Rule{
		Actions: actions,
		Target:  t.Target.Bind(ctx),
	}
}

func (t *RuleTemplate) String() string {
	return formatRule(t.Actions, t.Target)
}

func (b *boundRule) Bind(ctx Context) RuleNode {
	return &boundRule{
		template: b.template,
		pending:  b.pending.Merge(ctx),
	}
}

func (b *boundRule) Instantiate(ctx Context) *Rule {
	return b.template.Instantiate(b.pending.Merge(ctx))
}

func (b *boundRule) String() string {
	return b.template.String() + " " + b.pending.String()
}

func formatRule(actions []Action, target StateRef) string {
	var b strings.Builder
	for _, action := range actions {
		b.WriteString(action.String())
		b.WriteString(" ")
	}
	b.WriteString(target.String())
	return b.String()
}
