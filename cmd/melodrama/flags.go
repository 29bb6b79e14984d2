package main

import (
	"github.com/spf13/pflag"

	"github.com/melodrama/melodrama/internal/config"
)

// Flag names double as config keys in config.Load.

func addServerFlags(fs *pflag.FlagSet) {
	defaults := config.Defaults()
	fs.StringP("host", "H", defaults.Host, "Host the dev server listens on")
	fs.IntP("port", "p", defaults.Port, "Port the dev server listens on")
	fs.Bool("open", defaults.Open, "Open the presentation in a browser once the server is up")
}

func addBundleFlags(fs *pflag.FlagSet) {
	defaults := config.Defaults()
	fs.StringSlice("include", nil, "Additional directories to transpile (comma separated)")
	fs.String("bundler", defaults.Bundler, "Bundler command")
}

func addRegistryFlags(fs *pflag.FlagSet) {
	defaults := config.Defaults()
	fs.String("registry", defaults.Registry, "Package search service used to find themes")
	fs.Duration("registry-timeout", defaults.RegistryTimeout, "Give up on the theme search after this long")
}
