package amcconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/amc/configs"
	"github.com/reusee/amc/logs"
	"github.com/reusee/amc/modes"
)

//go:embed schema.cue
var schema string

var filenames = []string{
	"amc.cue",
	".amc.cue",
}

// ConfigsLoader loads the working directory files first, then the user and system
// wide ones. Earlier files take precedence.
func (Module) ConfigsLoader(
	logger logs.Logger,
	mode modes.Mode,
) configs.Loader {

	var paths []string
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	// working directory
	workingDir, err := os.Getwd()
	if err == nil {
		paths = append(paths, existing(workingDir)...)
	}

	if mode.ReadsSystemConfig() {
		// user config dir
		configDir, err := os.UserConfigDir()
		if err == nil {
			paths = append(paths, existing(configDir)...)
		}

		// system wide dir
		paths = append(paths, existing("/etc")...)
	}

	return configs.NewLoader(paths, schema)
}

func existing(dir string) (ret []string) {
	for _, filename := range filenames {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			ret = append(ret, path)
		}
	}
	return
}
