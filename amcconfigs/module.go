package amcconfigs

import (
	"github.com/reusee/amc/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
