package demos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/fatih/color"
	"github.com/reusee/lambdas/caplang"
	"github.com/reusee/lambdas/capvm"
	"github.com/reusee/lambdas/debugs"
	"github.com/reusee/lambdas/logs"
	"github.com/reusee/lambdas/reports"
	"github.com/reusee/lambdas/settings"
)

type Result struct {
	Scenario Scenario
	Output   []string
	Vars     map[string]any
	Errors   []string
	Failures []string
	Passed   bool
}

type Run func(ctx context.Context, scenario Scenario) (*Result, error)

func (Module) Run(
	logger logs.Logger,
	newSpan logs.NewSpan,
	check debugs.Check,
	stdout Stdout,
	useColor settings.Color,
) Run {

	header := color.New(color.FgCyan, color.Bold)
	if !useColor {
		header.DisableColor()
	}

	return func(ctx context.Context, scenario Scenario) (*Result, error) {
		ctx, _ = newSpan(ctx, scenario.Name)
		logger.InfoContext(ctx, "run scenario",
			"name", scenario.Name,
		)

		title := scenario.Title
		if title == "" {
			title = scenario.Name
		}
		header.Fprintf(stdout, "\n---%s --------------------------\n", title)

		buf := new(bytes.Buffer)
		globals := capvm.NewGlobals()
		globals.Stdout = io.MultiWriter(stdout, buf)
		locals := globals.NewChild()

		result := &Result{
			Scenario: scenario,
		}

		exec := func(scope *capvm.Env, lines []string) error {
			for _, line := range lines {
				if _, err := caplang.Exec(scope, line); err != nil {
					if !scenario.AllowErrors {
						return logs.WrapSpan(ctx, fmt.Errorf("%s: %q: %w", scenario.Name, line, err))
					}
					logger.InfoContext(ctx, "line failed",
						"line", line,
						"error", err,
					)
					result.Errors = append(result.Errors, err.Error())
				}
			}
			return nil
		}
		if err := exec(globals, scenario.Globals); err != nil {
			return nil, err
		}
		if err := exec(locals, scenario.Script); err != nil {
			return nil, err
		}

		if buf.Len() > 0 {
			result.Output = strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		}

		result.Vars = make(map[string]any)
		for _, env := range []*capvm.Env{globals, locals} {
			for name, slot := range env.Vars {
				result.Vars[name] = slot.Value
			}
		}

		env := maps.Clone(result.Vars)
		env["vars"] = result.Vars
		env["output"] = result.Output
		env["errors"] = result.Errors
		for _, expr := range scenario.Expect {
			ok, err := check(ctx, expr, env)
			if err != nil {
				return nil, logs.WrapSpan(ctx, fmt.Errorf("%s: %w", scenario.Name, err))
			}
			if !ok {
				result.Failures = append(result.Failures, expr)
				logger.WarnContext(ctx, "expectation failed",
					"name", scenario.Name,
					"expect", expr,
				)
			}
		}
		result.Passed = len(result.Failures) == 0

		return result, nil
	}
}

func (r *Result) Report() reports.Scenario {
	ret := reports.Scenario{
		Name:     r.Scenario.Name,
		Title:    r.Scenario.Title,
		Passed:   r.Passed,
		Output:   append([]string{}, r.Output...),
		Errors:   r.Errors,
		Failures: r.Failures,
		Vars:     make(map[string]string, len(r.Vars)),
	}
	for name, value := range r.Vars {
		ret.Vars[name] = caplang.Format(value)
	}
	return ret
}
