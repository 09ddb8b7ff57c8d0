package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Report struct {
	Scenarios []Scenario `yaml:"scenarios" toml:"scenarios"`
	Passed    int        `yaml:"passed" toml:"passed"`
	Failed    int        `yaml:"failed" toml:"failed"`
}

type Scenario struct {
	Name     string            `yaml:"name" toml:"name"`
	Title    string            `yaml:"title,omitempty" toml:"title,omitempty"`
	Passed   bool              `yaml:"passed" toml:"passed"`
	Output   []string          `yaml:"output" toml:"output"`
	Vars     map[string]string `yaml:"vars,omitempty" toml:"vars,omitempty"`
	Errors   []string          `yaml:"errors,omitempty" toml:"errors,omitempty"`
	Failures []string          `yaml:"failures,omitempty" toml:"failures,omitempty"`
}

func (r *Report) Add(s Scenario) {
	r.Scenarios = append(r.Scenarios, s)
	if s.Passed {
		r.Passed++
	} else {
		r.Failed++
	}
}

func Write(w io.Writer, format string, report *Report) error {
	switch format {

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()

	case "toml":
		return toml.NewEncoder(w).Encode(report)

	case "text", "":
		for _, s := range report.Scenarios {
			status := "ok"
			if !s.Passed {
				status = "FAIL"
			}
			if _, err := fmt.Fprintf(w, "%-4s %s\n", status, s.Name); err != nil {
				return err
			}
			for _, failure := range s.Failures {
				if _, err := fmt.Fprintf(w, "     %s\n", failure); err != nil {
					return err
				}
			}
		}
		_, err := fmt.Fprintf(w, "%d passed, %d failed\n", report.Passed, report.Failed)
		return err

	}
	return fmt.Errorf("unknown report format: %s (want %s)", format, strings.Join(Formats, ", "))
}

var Formats = []string{"text", "yaml", "toml"}
