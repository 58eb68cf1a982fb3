package traces

import (
	"context"
	"slices"

	"github.com/reusee/amc/interp"
	"github.com/reusee/amc/ir"
)

// Options selects the events that are displayed or halted on. Halting on an event
// displays it too.
type Options struct {
	Print  bool `json:"print"`
	Action bool `json:"action"`
	State  bool `json:"state"`

	HaltPrint  bool `json:"halt_print"`
	HaltAction bool `json:"halt_action"`
	HaltState  bool `json:"halt_state"`

	// cells shown around the head
	Before int `json:"before"`
	After  int `json:"after"`
}

const (
	DefaultBefore = 50
	DefaultAfter  = 50
)

func (o Options) Enabled() bool {
	return o.Print || o.Action || o.State ||
		o.HaltPrint || o.HaltAction || o.HaltState
}

type Tracer struct {
	Options Options
	Printer *Printer
	Halter  *Halter
}

// Install sets the hooks of i for every selected event.
func (t *Tracer) Install(i *interp.Interpreter) {
	if t.Options.Print || t.Options.HaltPrint {
		i.OnPrint = t.hook("PRINT", t.Options.HaltPrint)
	}
	if t.Options.Action || t.Options.HaltAction {
		i.OnAction = t.hook("ACTION", t.Options.HaltAction)
	}
	if t.Options.State || t.Options.HaltState {
		i.OnState = t.hook("STATE", t.Options.HaltState)
	}
}

func (t *Tracer) hook(reason string, halt bool) interp.Hook {
	return func(i *interp.Interpreter) error {
		t.Printer.Print(reason, i)
		if halt && t.Halter != nil {
			return t.Halter.Halt(i)
		}
		return nil
	}
}

// Globals snapshots i for inspection in a repl. The functions read the live interpreter.
func Globals(i *interp.Interpreter) map[string]any {
	var tape []string
	for _, cell := range i.Tape() {
		tape = append(tape, string(cell))
	}
	var symbols []string
	for _, sym := range i.Machine.Symbols {
		symbols = append(symbols, string(sym))
	}
	var states []string
	for _, state := range i.Machine.States {
		states = append(states, state.Name())
	}
	globals := map[string]any{
		"tape":    tape,
		"head":    i.Head(),
		"read":    string(i.Read()),
		"state":   i.State().Name(),
		"steps":   i.Steps(),
		"outcome": i.Outcome().String(),
		"symbols": symbols,
		"states":  states,

		"cell": func(n int) string {
			return string(i.Cell(n))
		},
		"rule_for": func(sym string) string {
			return i.State().RuleFor(ir.Symbol(sym)).String()
		},
		"state_names": func() []string {
			var names []string
			for _, state := range i.Machine.States {
				if !slices.Contains(names, state.Name()) {
					names = append(names, state.Name())
				}
			}
			return names
		},
	}
	if previous := i.Previous(); previous != nil {
		globals["previous"] = previous.Name()
	}
	return globals
}

type (
	tapFunc  = func(ctx context.Context, what string, globals map[string]any)
	evalFunc = func(ctx context.Context, expr string, globals map[string]any) (string, error)
)

func tapInterpreter(ctx context.Context, tap tapFunc) func(*interp.Interpreter) {
	if tap == nil {
		return nil
	}
	return func(i *interp.Interpreter) {
		tap(ctx, "halt at "+i.State().Name(), Globals(i))
	}
}

func evalInterpreter(ctx context.Context, eval evalFunc) func(*interp.Interpreter, string) (string, error) {
	if eval == nil {
		return nil
	}
	return func(i *interp.Interpreter, expr string) (string, error) {
		return eval(ctx, expr, Globals(i))
	}
}
