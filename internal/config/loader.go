package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// knownKeys maps settings keys to the command-line flag that overrides them.
var knownKeys = map[string]string{
	"registry":         "registry",
	"theme_prefix":     "",
	"registry_timeout": "registry-timeout",
	"host":             "host",
	"port":             "port",
	"include":          "include",
	"build_dir":        "build-dir",
	"bundler":          "bundler",
	"open":             "open",
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// Dir is searched for FileName when File is empty.
	Dir string
	// File is an explicit settings file; it must exist.
	File string
	// Flags, when set, override every other layer for flags the user changed.
	Flags *pflag.FlagSet
}

// Load resolves settings from, lowest precedence first: built-in defaults,
// the settings file, MELODRAMA_* environment variables and command-line flags.
func Load(opts LoadOptions) (*Settings, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("registry", defaults.Registry)
	v.SetDefault("theme_prefix", defaults.ThemePrefix)
	v.SetDefault("registry_timeout", defaults.RegistryTimeout)
	v.SetDefault("host", defaults.Host)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("include", defaults.Include)
	v.SetDefault("build_dir", defaults.BuildDir)
	v.SetDefault("bundler", defaults.Bundler)
	v.SetDefault("open", defaults.Open)

	path, required := opts.File, true
	if path == "" {
		path, required = filepath.Join(opts.Dir, FileName), false
	}

	values, err := ParseFile(path)
	switch {
	case err == nil:
		if err := v.MergeConfigMap(values); err != nil {
			return nil, err
		}
	case !required && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, flagName := range knownKeys {
			if flagName == "" {
				continue
			}
			if flag := opts.Flags.Lookup(flagName); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, err
				}
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	if err := Validate(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Path returns the settings file Load would read for dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}
