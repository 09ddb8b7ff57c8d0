package settings

import (
	"github.com/reusee/lambdas/cmds"
	"github.com/reusee/lambdas/configs"
)

// Color enables colored scenario headers.
type Color bool

var noColorFlag = cmds.Switch("-no-color", "disable colored headers")

func (Module) Color(
	loader configs.Loader,
) Color {
	if *noColorFlag {
		return false
	}
	return Color(configs.FirstOr(loader, "color", true))
}
