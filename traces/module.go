package traces

import (
	"context"
	"io"
	"os"

	"github.com/reusee/amc/debugs"
	"github.com/reusee/amc/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Debugs debugs.Module
}

// Output receives traces and results.
type Output io.Writer

func (Module) Output() Output {
	return os.Stdout
}

func (Module) ReadLine() ReadLine {
	return TerminalReadLine()
}

type NewTracer func(ctx context.Context, options Options) *Tracer

func (Module) NewTracer(
	output Output,
	readLine ReadLine,
	tap debugs.Tap,
	eval debugs.Eval,
	logger logs.Logger,
) NewTracer {
	return func(ctx context.Context, options Options) *Tracer {
		if options.Before == 0 && options.After == 0 {
			options.Before = DefaultBefore
			options.After = DefaultAfter
		}
		if options.Enabled() {
			logger.DebugContext(ctx, "trace",
				"options", options,
			)
		}
		return &Tracer{
			Options: options,
			Printer: NewPrinter(output, options.Before, options.After),
			Halter: &Halter{
				readLine: readLine,
				w:        output,
				tap:      tapInterpreter(ctx, tap),
				eval:     evalInterpreter(ctx, eval),
			},
		}
	}
}
