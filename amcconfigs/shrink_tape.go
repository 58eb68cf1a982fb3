package amcconfigs

import (
	"github.com/reusee/amc/cmds"
	"github.com/reusee/amc/configs"
)

// ShrinkTape drops blank edge cells the head leaves behind.
type ShrinkTape bool

var shrinkTapeFlag = cmds.Switch("-shrink-tape", "drop unused blank cells at the tape edges")

func (Module) ShrinkTape(
	loader configs.Loader,
) ShrinkTape {
	return ShrinkTape(*shrinkTapeFlag || configs.First[bool](loader, "shrink_tape"))
}
