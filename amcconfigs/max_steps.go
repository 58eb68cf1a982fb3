package amcconfigs

import (
	"github.com/reusee/amc/cmds"
	"github.com/reusee/amc/configs"
	"github.com/reusee/amc/vars"
)

// MaxSteps bounds a run, 0 for no bound.
type MaxSteps int

var maxStepsFlag = cmds.Var[int]("-max-steps", "stop after this many steps")

func (Module) MaxSteps(
	loader configs.Loader,
) MaxSteps {
	return MaxSteps(max(0, vars.FirstNonZero(
		*maxStepsFlag,
		configs.First[int](loader, "max_steps"),
	)))
}
