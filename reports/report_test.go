package reports

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func testReport() *Report {
	r := new(Report)
	r.Add(Scenario{
		Name:   "stateful-2",
		Title:  "Test2",
		Passed: true,
		Output: []string{"200", "100", "300", "100"},
		Vars: map[string]string{
			"x": "100",
		},
	})
	r.Add(Scenario{
		Name:     "broken",
		Output:   []string{},
		Failures: []string{"x == 1"},
	})
	return r
}

func TestText(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := Write(buf, "text", testReport()); err != nil {
		t.Fatal(err)
	}
	expected := "ok   stateful-2\nFAIL broken\n     x == 1\n1 passed, 1 failed\n"
	if buf.String() != expected {
		t.Fatalf("got %q", buf.String())
	}
}

func TestYAML(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := Write(buf, "yaml", testReport()); err != nil {
		t.Fatal(err)
	}
	var r Report
	if err := yaml.Unmarshal(buf.Bytes(), &r); err != nil {
		t.Fatal(err)
	}
	if len(r.Scenarios) != 2 || r.Scenarios[0].Output[1] != "100" || r.Failed != 1 {
		t.Fatalf("got %+v", r)
	}
}

func TestTOML(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := Write(buf, "toml", testReport()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "[[scenarios]]") {
		t.Fatalf("got %s", buf.String())
	}
	var r Report
	if err := toml.Unmarshal(buf.Bytes(), &r); err != nil {
		t.Fatal(err)
	}
	if r.Scenarios[0].Vars["x"] != "100" || r.Passed != 1 {
		t.Fatalf("got %+v", r)
	}
}

func TestUnknownFormat(t *testing.T) {
	if err := Write(new(bytes.Buffer), "xml", testReport()); err == nil {
		t.Fatal("should error")
	}
}
