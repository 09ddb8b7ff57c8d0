package settings

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/lambdas/cmds"
	"github.com/reusee/lambdas/configs"
	"github.com/reusee/lambdas/logs"
)

//go:embed schema.cue
var Schema string

var configFiles = cmds.Collect[string]("-config", "load config file, may be repeated")

var filenames = []string{
	"lambdas.cue",
	".lambdas.cue",
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {

	// explicit files first, then working directory, user config dir and system wide dir
	paths := append([]string(nil), *configFiles...)
	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")
	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}

	return configs.NewLoader(configs.FileSources(paths...), Schema)
}
