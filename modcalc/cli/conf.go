package cli

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/modcalc"
	"github.com/npillmayer/modcalc/evaluator"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// appTag identifies modcalc for configuration and log paths.
const appTag = "modcalc"

// defaults are the configuration values in effect if neither a configuration
// file nor a flag sets them.
var defaults = map[string]interface{}{
	"logfile":            "stderr",
	"history":            "",
	"expansion.maxdepth": evaluator.DefaultMaxDepth,
	"tracing.adapter":    "go",
}

// loadConfig is a callback function used by cobra's initialization mechanism.
// Unfortunately we're not allowed a return value.
func loadConfig() {
	k := koanf.New(".") // '.' is hierarchy delimiter
	konf := koanfadapter.New(k, strings.ToUpper(appTag), []string{"yaml"})
	konf.InitDefaults()
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		tracing.Errorf("%v", err)
		modcalc.Exit(1)
	}
	paths := locatePaths()
	if err := mergeConfigFile(k, paths); err != nil {
		tracing.Errorf("%v", err)
		modcalc.Exit(1)
	}
	if err := mergeFlags(konf); err != nil {
		tracing.Errorf("%v", err)
		modcalc.Exit(1)
	}
	if err := configureTracing(konf, paths); err != nil {
		tracing.Errorf("%v", err)
		modcalc.Exit(1)
	}
	modcalc.Configuration = k // push the configuration to app-global scope
}

// mergeConfigFile loads the YAML file named by --config, or the default
// configuration file if present.
func mergeConfigFile(k *koanf.Koanf, paths AppPaths) error {
	name, err := rootCmd.PersistentFlags().GetString("config")
	if err != nil {
		return err
	}
	if name == "" {
		if name = DefaultConfigFile(paths); name == "" {
			return nil
		}
	}
	tracing.Infof("reading configuration from %s", name)
	if err := k.Load(file.Provider(name), yaml.Parser()); err != nil {
		return fmt.Errorf("cannot read configuration file %s: %w", name, err)
	}
	return nil
}

// mergeFlags overlays the command line flags. Flags not set on the command line
// do not override values from the configuration file.
func mergeFlags(konf *koanfadapter.KConf) error {
	flags := rootCmd.PersistentFlags()
	err := konf.Koanf().Load(posflag.Provider(flags, ".", konf.Koanf()), nil)
	if err != nil {
		return err
	}
	if flags.Changed("maxdepth") {
		depth, _ := flags.GetInt("maxdepth")
		konf.Set("expansion.maxdepth", depth)
	}
	if logname := konf.GetString("logfile"); logname != "" && logname != "stderr" {
		if strings.Contains(logname, ":/") {
			konf.Set("tracing.destination", logname)
		} else {
			konf.Set("tracing.destination", "file://"+logname)
		}
	}
	return err
}

func configureTracing(konf *koanfadapter.KConf, paths AppPaths) error {
	if a := konf.GetString("tracing.adapter"); a != "" && a != "go" {
		tracing.Errorf("tracing adapter type '%s' currently not supported", a)
	}
	konf.Set("tracing.adapter", "go") // use Go builtin logging facilities
	if dest := konf.GetString("tracing.destination"); dest != "" {
		// relative log file names are located in the log directory
		if p := strings.TrimPrefix(dest, "file://"); p != dest && paths != nil {
			konf.Set("tracing.destination", "file://"+resolveIn(paths.LogDir(), p))
		}
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(konf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("modcalc %s, expansion depth limit %d", version, konf.Koanf().Int("expansion.maxdepth"))
	return nil
}

func locatePaths() AppPaths {
	paths, err := DefaultAppPaths(appTag)
	if err != nil {
		tracing.Errorf("cannot configure paths: %v", err)
		return nil
	}
	return paths
}
