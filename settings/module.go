package settings

import (
	"github.com/reusee/dscope"
	"github.com/reusee/lambdas/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
