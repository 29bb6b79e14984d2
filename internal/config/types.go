package config

import "time"

// FileName is the optional per-project settings file.
const FileName = "melodrama.yaml"

// EnvPrefix prefixes environment variable overrides, e.g. MELODRAMA_PORT.
const EnvPrefix = "MELODRAMA"

// Settings holds the effective configuration of a command invocation.
type Settings struct {
	Registry        string        `yaml:"registry" mapstructure:"registry" validate:"required,url"`
	ThemePrefix     string        `yaml:"theme_prefix" mapstructure:"theme_prefix" validate:"required"`
	RegistryTimeout time.Duration `yaml:"registry_timeout" mapstructure:"registry_timeout"`
	Host            string        `yaml:"host" mapstructure:"host" validate:"required,hostname|ip"`
	Port            int           `yaml:"port" mapstructure:"port" validate:"min=1,max=65535"`
	Include         []string      `yaml:"include" mapstructure:"include"`
	BuildDir        string        `yaml:"build_dir" mapstructure:"build_dir" validate:"required"`
	Bundler         string        `yaml:"bundler" mapstructure:"bundler" validate:"required"`
	Open            bool          `yaml:"open" mapstructure:"open"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Registry:        "https://api.npms.io",
		ThemePrefix:     "spectacle-theme-",
		RegistryTimeout: 10 * time.Second,
		Host:            "localhost",
		Port:            3000,
		Include:         []string{},
		BuildDir:        "build",
		Bundler:         "npx webpack",
		Open:            true,
	}
}
