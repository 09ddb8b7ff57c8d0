package demos

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/lambdas/capvm"
	"github.com/reusee/lambdas/configs"
	"github.com/reusee/lambdas/modes"
	"github.com/reusee/lambdas/settings"
)

func testScope(t *testing.T, buf *bytes.Buffer, configSrc string) dscope.Scope {
	return dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader([]configs.Source{
				{
					Name:    "test.cue",
					Content: []byte(configSrc),
				},
			}, settings.Schema)
		},
		func() Stdout {
			return buf
		},
		func() settings.Color {
			return false
		},
	)
}

func TestBuiltinScenarios(t *testing.T) {
	buf := new(bytes.Buffer)
	testScope(t, buf, ``).Call(func(
		scenarios Scenarios,
		run Run,
	) {
		if len(scenarios) < 12 {
			t.Fatalf("got %d scenarios", len(scenarios))
		}
		for _, scenario := range scenarios {
			result, err := run(t.Context(), scenario)
			if err != nil {
				t.Fatal(err)
			}
			if !result.Passed {
				t.Fatalf("%s: failed %v, output %q", scenario.Name, result.Failures, result.Output)
			}
		}
	})
}

func TestTranscript(t *testing.T) {
	buf := new(bytes.Buffer)
	testScope(t, buf, ``).Call(func(
		scenarios Scenarios,
		run Run,
	) {
		scenario, ok := scenarios.Find("capture-by-value-mutable")
		if !ok {
			t.Fatal("not found")
		}
		result, err := run(t.Context(), scenario)
		if err != nil {
			t.Fatal(err)
		}
		expected := "\n---Test2 --------------------------\n200\n100\n300\n100\n"
		if buf.String() != expected {
			t.Fatalf("got %q", buf.String())
		}
		if result.Vars["x"] != 100 {
			t.Fatalf("got %v", result.Vars["x"])
		}
		l, ok := result.Vars["l"].(*capvm.Closure)
		if !ok {
			t.Fatalf("got %T", result.Vars["l"])
		}
		if l.Snapshot()["x"] != 300 {
			t.Fatalf("got %v", l.Snapshot())
		}

		report := result.Report()
		if report.Vars["x"] != "100" || !report.Passed {
			t.Fatalf("got %+v", report)
		}
	})
}

func TestConfigScenario(t *testing.T) {
	buf := new(bytes.Buffer)
	testScope(t, buf, `
	scenarios: [{
		name: "user"
		script: [
			"a := 1",
			"f := [&a] { a *= 10 }",
			"f()",
		]
		expect: ["a == 10", "a == 11"]
	}]
	`).Call(func(
		scenarios Scenarios,
		run Run,
	) {
		scenario, ok := scenarios.Find("user")
		if !ok {
			t.Fatal("not found")
		}
		if scenarios[len(scenarios)-1].Name != "user" {
			t.Fatal("config scenarios should come last")
		}
		result, err := run(t.Context(), scenario)
		if err != nil {
			t.Fatal(err)
		}
		if result.Passed {
			t.Fatal("should fail")
		}
		if len(result.Failures) != 1 || result.Failures[0] != "a == 11" {
			t.Fatalf("got %v", result.Failures)
		}
		if result.Output != nil {
			t.Fatalf("got %q", result.Output)
		}
		if !strings.Contains(buf.String(), "---user ---") {
			t.Fatalf("got %q", buf.String())
		}
	})
}

func TestScriptError(t *testing.T) {
	buf := new(bytes.Buffer)
	testScope(t, buf, ``).Call(func(
		run Run,
	) {
		_, err := run(t.Context(), Scenario{
			Name: "bad",
			Script: []string{
				"x := 1",
				"l := [x] { x = 2 }",
			},
		})
		if !errors.Is(err, capvm.ErrCaptureViolation) {
			t.Fatalf("got %v", err)
		}

		_, err = run(t.Context(), Scenario{
			Name:   "bad expect",
			Expect: []string{"1 +"},
		})
		if err == nil {
			t.Fatal("should error")
		}
	})
}

func TestTestWriter(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		stdout Stdout,
	) {
		if _, ok := stdout.(testWriter); !ok {
			t.Fatalf("got %T", stdout)
		}
		if _, err := stdout.Write([]byte("hello\n")); err != nil {
			t.Fatal(err)
		}
	})
}
