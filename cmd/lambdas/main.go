package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/lambdas/cmds"
	"github.com/reusee/lambdas/debugs"
	"github.com/reusee/lambdas/demos"
	"github.com/reusee/lambdas/logs"
	"github.com/reusee/lambdas/modes"
	"github.com/reusee/lambdas/reports"
	"github.com/reusee/lambdas/settings"
	"github.com/reusee/lambdas/vars"
)

var tapFlag = cmds.Switch("-tap", "open a starlark REPL over each scenario result")

func main() {
	scope := dscope.New(
		new(demos.Module),
		modes.ForProduction(),
	)

	var action func() error
	cmds.Define("run", cmds.Func(func(name *string) {
		action = func() error {
			return runScenarios(scope, vars.DerefOrZero(name))
		}
	}).Desc("run scenarios, all of them when no name is given").Args("name"))
	cmds.Define("list", cmds.Func(func() {
		action = func() error {
			return listScenarios(scope)
		}
	}).Desc("list scenarios"))
	cmds.Define("exec", cmds.Func(func(path string) {
		action = func() error {
			return execFile(scope, path)
		}
	}).Desc("run lines of a file, - for stdin").Args("file"))
	cmds.Define("eval", cmds.Func(func(line string) {
		action = func() error {
			return evalLine(line)
		}
	}).Desc("evaluate one line").Args("line"))
	cmds.Define("repl", cmds.Func(func() {
		action = func() error {
			return runREPL(scope)
		}
	}).Desc("interactive session"))

	cmds.Execute(os.Args[1:])

	if action == nil {
		action = func() error {
			return runScenarios(scope, "")
		}
	}
	if err := action(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runScenarios(scope dscope.Scope, name string) (err error) {
	var format settings.ReportFormat
	scope.Call(func(f settings.ReportFormat) {
		format = f
	})
	if format != "text" {
		// the report is the only output
		scope = scope.Fork(func() demos.Stdout {
			return io.Discard
		})
	}

	scope.Call(func(
		scenarios demos.Scenarios,
		run demos.Run,
		tap debugs.Tap,
		newSpan logs.NewSpan,
	) {
		if name != "" {
			scenario, ok := scenarios.Find(name)
			if !ok {
				err = fmt.Errorf("no such scenario: %s", name)
				return
			}
			scenarios = demos.Scenarios{scenario}
		}

		ctx, _ := newSpan(context.Background(), "run")
		report := new(reports.Report)
		for _, scenario := range scenarios {
			result, e := run(ctx, scenario)
			if e != nil {
				err = e
				return
			}
			report.Add(result.Report())
			if *tapFlag {
				tap(ctx, scenario.Name, result.Vars)
			}
		}

		if format == "text" {
			fmt.Println()
		}
		if err = reports.Write(os.Stdout, string(format), report); err != nil {
			return
		}
		if report.Failed > 0 {
			err = fmt.Errorf("%d scenarios failed", report.Failed)
		}
	})
	return
}

func listScenarios(scope dscope.Scope) error {
	scope.Call(func(
		scenarios demos.Scenarios,
	) {
		for _, scenario := range scenarios {
			fmt.Printf("%-36s %s\n", scenario.Name, scenario.Title)
		}
	})
	return nil
}
