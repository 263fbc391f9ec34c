package cli

import (
	"os"
	"path/filepath"
)

// AppPaths is an interface to determine application specific paths for configuration
// and logging/tracing.
type AppPaths interface {
	ConfigDir() string
	LogDir() string
}

// DefaultAppPaths returns an AppPaths instance with platform-dependent defaults
// set, given appTag. appTag is a string specific to a client's application to identify it.
func DefaultAppPaths(appTag string) (AppPaths, error) {
	a := appPaths{tag: appTag}
	home, err := os.UserHomeDir()
	if err != nil {
		return a, err
	}
	a.home = home
	return a, nil
}

// DefaultConfigFile returns the path of the configuration file modcalc looks
// for if no --config flag is given, or "" if no such file exists.
func DefaultConfigFile(paths AppPaths) string {
	if paths == nil || paths.ConfigDir() == "" {
		return ""
	}
	name := filepath.Join(paths.ConfigDir(), "config.yaml")
	if fi, err := os.Stat(name); err != nil || fi.IsDir() {
		return ""
	}
	return name
}

// resolveIn returns name if it is absolute, otherwise name relative to dir.
func resolveIn(dir, name string) string {
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

type appPaths struct {
	tag  string
	home string
}

var _ AppPaths = appPaths{}
