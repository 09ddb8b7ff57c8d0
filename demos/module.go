package demos

import (
	"github.com/reusee/dscope"
	"github.com/reusee/lambdas/debugs"
	"github.com/reusee/lambdas/logs"
	"github.com/reusee/lambdas/settings"
)

type Module struct {
	dscope.Module
	Logs     logs.Module
	Debugs   debugs.Module
	Settings settings.Module
}
