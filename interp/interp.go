package interp

import (
	"context"
	"errors"
	"fmt"

	"github.com/reusee/amc/ir"
)

type Outcome uint8

const (
	Running Outcome = iota
	Accepted
	Rejected
	Stopped
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("Outcome(%d)", o)
}

var (
	// ErrStop is returned by hooks to stop the machine.
	ErrStop      = errors.New("stop")
	ErrStepLimit = errors.New("step limit reached")

	ErrUnknownAction = errors.New("unknown action")
)

// Hook observes the live interpreter. An error stops the run.
type Hook func(*Interpreter) error

// cancellation is checked once per this many steps
const checkInterval = 1024

type Interpreter struct {
	Machine *ir.Machine

	OnPrint  Hook
	OnAction Hook
	OnState  Hook

	// ShrinkTape drops a blank edge cell when the head leaves it.
	ShrinkTape bool
	// MaxSteps bounds the number of rules taken, 0 for no bound.
	MaxSteps int

	tape     *Tape
	head     int
	state    *ir.State
	previous *ir.State
	action   ir.Action
	steps    int
	outcome  Outcome
	err      error
}

// New starts m on tape. A head outside the tape extends it with blank cells.
func New(m *ir.Machine, tape []ir.Symbol, head int) *Interpreter {
	t := NewTape(tape)
	for ; head < 0; head++ {
		t.PushFront()
	}
	for t.Len() <= head {
		t.PushBack()
	}
	i := &Interpreter{
		Machine: m,
		tape:    t,
		head:    head,
		state:   m.InitialState(),
	}
	i.settle()
	return i
}

func (i *Interpreter) settle() {
	switch i.state {
	case ir.Accept:
		i.outcome = Accepted
	case ir.Reject:
		i.outcome = Rejected
	}
}

func (i *Interpreter) stop(err error) (Outcome, error) {
	i.outcome = Stopped
	if !errors.Is(err, ErrStop) {
		i.err = err
	}
	return i.outcome, i.err
}

func (i *Interpreter) call(hook Hook) error {
	if hook == nil {
		return nil
	}
	return hook(i)
}

// Run steps until the machine halts, a hook stops it or ctx is done.
func (i *Interpreter) Run(ctx context.Context) (Outcome, error) {
	for {
		if i.outcome != Running {
			return i.outcome, i.err
		}
		if i.steps%checkInterval == 0 {
			select {
			case <-ctx.Done():
				return i.stop(ctx.Err())
			default:
			}
		}
		if _, err := i.Step(); err != nil {
			return i.outcome, err
		}
	}
}

// Step takes one rule.
func (i *Interpreter) Step() (Outcome, error) {
	if i.outcome != Running {
		return i.outcome, i.err
	}
	if i.MaxSteps > 0 && i.steps >= i.MaxSteps {
		return i.stop(ErrStepLimit)
	}

	rule := i.state.RuleFor(i.tape.At(i.head))
	for _, action := range rule.Actions {
		i.action = action
		switch action := action.(type) {
		case ir.Left:
			i.moveLeft()
		case ir.Right:
			i.moveRight()
		case ir.Print:
			i.tape.Set(i.head, action.Symbol)
			if err := i.call(i.OnPrint); err != nil {
				return i.stop(err)
			}
		default:
			panic(ir.InternalError{
				Err:    ErrUnknownAction,
				Detail: fmt.Sprintf("%T", action),
			})
		}
		if err := i.call(i.OnAction); err != nil {
			return i.stop(err)
		}
	}

	i.previous = i.state
	i.state = rule.Next()
	i.steps++
	i.settle()
	if err := i.call(i.OnState); err != nil {
		return i.stop(err)
	}
	return i.outcome, nil
}

func (i *Interpreter) moveLeft() {
	if i.ShrinkTape && i.head == i.tape.Len()-1 && i.tape.At(i.head) == ir.Blank {
		i.tape.PopBack()
	}
	i.head--
	if i.head < 0 {
		i.tape.PushFront()
		i.head = 0
	}
}

func (i *Interpreter) moveRight() {
	if i.ShrinkTape && i.head == 0 && i.tape.At(0) == ir.Blank {
		i.tape.PopFront()
	} else {
		i.head++
	}
	if i.head >= i.tape.Len() {
		i.tape.PushBack()
	}
}

func (i *Interpreter) Tape() []ir.Symbol {
	return i.tape.Cells()
}

func (i *Interpreter) TapeLen() int {
	return i.tape.Len()
}

// Cell returns the cell at n, blank outside the tape.
func (i *Interpreter) Cell(n int) ir.Symbol {
	return i.tape.At(n)
}

// Read returns the cell under the head.
func (i *Interpreter) Read() ir.Symbol {
	return i.tape.At(i.head)
}

func (i *Interpreter) Head() int {
	return i.head
}

func (i *Interpreter) State() *ir.State {
	return i.state
}

// Previous is the state the last rule was taken in, nil before the first step.
func (i *Interpreter) Previous() *ir.State {
	return i.previous
}

// Action is the action being applied, or the last applied one.
func (i *Interpreter) Action() ir.Action {
	return i.action
}

func (i *Interpreter) Steps() int {
	return i.steps
}

func (i *Interpreter) Outcome() Outcome {
	return i.outcome
}

// Err is the error the run stopped with.
func (i *Interpreter) Err() error {
	return i.err
}
