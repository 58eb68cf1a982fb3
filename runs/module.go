package runs

import (
	"github.com/reusee/amc/amcconfigs"
	"github.com/reusee/amc/logs"
	"github.com/reusee/amc/traces"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs amcconfigs.Module
	Traces  traces.Module
}
