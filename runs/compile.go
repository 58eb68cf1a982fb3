package runs

import (
	"context"

	"github.com/reusee/amc/ast"
	"github.com/reusee/amc/ir"
	"github.com/reusee/amc/linker"
	"github.com/reusee/amc/logs"
	"github.com/reusee/amc/sources"
)

// Compile loads and links the machine document at path.
type Compile func(ctx context.Context, path string) (*ir.Machine, error)

func (Module) Compile(
	logger logs.Logger,
	newSpan logs.NewSpan,
) Compile {
	return func(ctx context.Context, path string) (*ir.Machine, error) {
		ctx, _ = newSpan(ctx, "compile", "")
		decls, err := sources.LoadFile(path)
		if err != nil {
			return nil, logs.WrapSpan(ctx, err)
		}
		machine, err := linker.Link(decls, linker.Options{
			Include: func(path string) ([]ast.Decl, error) {
				logger.DebugContext(ctx, "include", "path", path)
				return sources.LoadFile(path)
			},
		})
		if err != nil {
			return nil, logs.WrapSpan(ctx, err)
		}
		logger.InfoContext(ctx, "linked",
			"path", path,
			"states", len(machine.States),
			"symbols", len(machine.Symbols),
			"init", machine.InitialState().Name(),
		)
		return machine, nil
	}
}
