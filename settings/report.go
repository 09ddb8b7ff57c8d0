package settings

import (
	"github.com/reusee/lambdas/cmds"
	"github.com/reusee/lambdas/configs"
	"github.com/reusee/lambdas/vars"
)

type ReportFormat string

var reportFlag = cmds.Var[string]("-report", "report format: text, yaml or toml")

func (Module) ReportFormat(
	loader configs.Loader,
) ReportFormat {
	return ReportFormat(vars.FirstNonZero(
		*reportFlag,
		configs.FirstOr(loader, "report", "text"),
	))
}
