package demos

import (
	_ "embed"

	"github.com/reusee/lambdas/configs"
	"github.com/reusee/lambdas/settings"
)

//go:embed demos.cue
var builtinScenarios []byte

type Scenario struct {
	Name        string   `json:"name"`
	Title       string   `json:"title,omitempty"`
	Globals     []string `json:"globals,omitempty"`
	Script      []string `json:"script"`
	Expect      []string `json:"expect,omitempty"`
	AllowErrors bool     `json:"allow_errors,omitempty"`
}

type Scenarios []Scenario

// Scenarios returns the builtin demos followed by the ones from config files.
func (Module) Scenarios(
	loader configs.Loader,
) (ret Scenarios) {
	builtin := configs.NewLoader([]configs.Source{
		{
			Name:    "demos.cue",
			Content: builtinScenarios,
		},
	}, settings.Schema)
	for _, l := range []configs.Loader{builtin, loader} {
		for list := range configs.All[[]Scenario](l, "scenarios") {
			ret = append(ret, list...)
		}
	}
	return
}

func (s Scenarios) Find(name string) (Scenario, bool) {
	for _, scenario := range s {
		if scenario.Name == name {
			return scenario, true
		}
	}
	return Scenario{}, false
}
