package debugs

import (
	"context"
	"fmt"

	"github.com/reusee/lambdas/logs"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Check evaluates a boolean starlark expression over globals.
type Check func(ctx context.Context, expr string, globals map[string]any) (bool, error)

func (Module) Check(
	logger logs.Logger,
) Check {
	return func(ctx context.Context, expr string, globals map[string]any) (bool, error) {
		thread := &starlark.Thread{
			Name: "check",
		}
		value, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, "expect", expr, toStringDict(globals))
		if err != nil {
			return false, fmt.Errorf("expect %q: %w", expr, err)
		}
		ok, isBool := value.(starlark.Bool)
		if !isBool {
			return false, fmt.Errorf("expect %q: got %s, not bool", expr, value.Type())
		}
		logger.DebugContext(ctx, "check",
			"expr", expr,
			"ok", bool(ok),
		)
		return bool(ok), nil
	}
}
