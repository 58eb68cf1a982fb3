package amcconfigs

import (
	"github.com/reusee/amc/cmds"
	"github.com/reusee/amc/configs"
	"github.com/reusee/amc/traces"
	"github.com/reusee/amc/vars"
)

var (
	tracePrintFlag  = cmds.Switch("-trace-print", "show the machine on prints")
	traceActionFlag = cmds.Switch("-trace-action", "show the machine on every action")
	traceStateFlag  = cmds.Switch("-trace-state", "show the machine on every state change")
	haltPrintFlag   = cmds.Switch("-halt-print", "wait on prints")
	haltActionFlag  = cmds.Switch("-halt-action", "wait on every action")
	haltStateFlag   = cmds.Switch("-halt-state", "wait on every state change")
	beforeFlag      = cmds.Var[int]("-before", "cells shown before the head")
	afterFlag       = cmds.Var[int]("-after", "cells shown after the head")
)

// TraceOptions merges the flags and every config file. An event is selected when any
// of them selects it; window sizes come from the first that sets them.
func (Module) TraceOptions(
	loader configs.Loader,
) traces.Options {
	options := traces.Options{
		Print:      *tracePrintFlag,
		Action:     *traceActionFlag,
		State:      *traceStateFlag,
		HaltPrint:  *haltPrintFlag,
		HaltAction: *haltActionFlag,
		HaltState:  *haltStateFlag,
		Before:     max(0, *beforeFlag),
		After:      max(0, *afterFlag),
	}
	for config := range configs.All[traces.Options](loader, "trace") {
		options.Print = options.Print || config.Print
		options.Action = options.Action || config.Action
		options.State = options.State || config.State
		options.HaltPrint = options.HaltPrint || config.HaltPrint
		options.HaltAction = options.HaltAction || config.HaltAction
		options.HaltState = options.HaltState || config.HaltState
		options.Before = vars.FirstNonZero(options.Before, config.Before)
		options.After = vars.FirstNonZero(options.After, config.After)
	}
	options.Before = vars.FirstNonZero(options.Before, traces.DefaultBefore)
	options.After = vars.FirstNonZero(options.After, traces.DefaultAfter)
	return options
}
