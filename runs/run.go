package runs

import (
	"context"
	"errors"

	"github.com/reusee/amc/amcconfigs"
	"github.com/reusee/amc/interp"
	"github.com/reusee/amc/ir"
	"github.com/reusee/amc/logs"
	"github.com/reusee/amc/traces"
)

// Run executes machine on tape with the head at head.
// The interpreter is returned even when the run fails, for inspection.
type Run func(ctx context.Context, machine *ir.Machine, tape []ir.Symbol, head int) (*interp.Interpreter, error)

func (Module) Run(
	logger logs.Logger,
	newSpan logs.NewSpan,
	shrinkTape amcconfigs.ShrinkTape,
	maxSteps amcconfigs.MaxSteps,
	options traces.Options,
	newTracer traces.NewTracer,
) Run {
	return func(ctx context.Context, machine *ir.Machine, tape []ir.Symbol, head int) (*interp.Interpreter, error) {
		ctx, _ = newSpan(ctx, "run", "")

		i := interp.New(machine, tape, head)
		i.ShrinkTape = bool(shrinkTape)
		i.MaxSteps = int(maxSteps)
		if options.Enabled() {
			newTracer(ctx, options).Install(i)
		}

		logger.InfoContext(ctx, "run",
			"init", i.State().Name(),
			"cells", i.TapeLen(),
			"head", i.Head(),
		)
		outcome, err := i.Run(ctx)
		if err != nil {
			if errors.Is(err, interp.ErrStepLimit) {
				logger.WarnContext(ctx, "step limit reached", "steps", i.Steps())
			} else {
				logger.ErrorContext(ctx, "run failed", "error", err)
			}
			return i, logs.WrapSpan(ctx, err)
		}

		logger.InfoContext(ctx, "run end",
			"outcome", outcome,
			"state", i.State().Name(),
			"steps", i.Steps(),
		)
		return i, nil
	}
}
