package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	melodramaerrors "github.com/melodrama/melodrama/pkg/errors"
)

func writeSettings(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func testFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("port", 3000, "")
	fs.String("host", "localhost", "")
	fs.StringSlice("include", nil, "")
	fs.Bool("open", true, "")
	return fs
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	settings, err := Load(LoadOptions{Dir: t.TempDir()})
	require.NoError(t, err)
	require.Equal(t, Defaults().Registry, settings.Registry)
	require.Equal(t, "spectacle-theme-", settings.ThemePrefix)
	require.Equal(t, 3000, settings.Port)
	require.Equal(t, "localhost", settings.Host)
	require.Equal(t, "build", settings.BuildDir)
	require.True(t, settings.Open)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, `port: 8080
registry_timeout: 2s
include:
  - shared
  - assets
`)

	settings, err := Load(LoadOptions{Dir: dir})
	require.NoError(t, err)
	require.Equal(t, 8080, settings.Port)
	require.Equal(t, 2*time.Second, settings.RegistryTimeout)
	require.Equal(t, []string{"shared", "assets"}, settings.Include)
	require.Equal(t, "localhost", settings.Host)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "port: 8080\n")
	t.Setenv("MELODRAMA_PORT", "9090")
	t.Setenv("MELODRAMA_HOST", "0.0.0.0")

	settings, err := Load(LoadOptions{Dir: dir})
	require.NoError(t, err)
	require.Equal(t, 9090, settings.Port)
	require.Equal(t, "0.0.0.0", settings.Host)
}

func TestLoadChangedFlagsWin(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "port: 8080\nhost: slides.local\n")
	t.Setenv("MELODRAMA_PORT", "9090")

	fs := testFlags(t)
	require.NoError(t, fs.Parse([]string{"--port", "4000", "--include", "a,b"}))

	settings, err := Load(LoadOptions{Dir: dir, Flags: fs})
	require.NoError(t, err)
	require.Equal(t, 4000, settings.Port)
	require.Equal(t, "slides.local", settings.Host)
	require.Equal(t, []string{"a", "b"}, settings.Include)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	_, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)

	var parseErr *melodramaerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "port: 3000\nhost: [broken\n")

	_, err := Load(LoadOptions{Dir: dir})
	var parseErr *melodramaerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, filepath.Join(dir, FileName), parseErr.Path)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "prot: 3000\n")

	_, err := Load(LoadOptions{Dir: dir})
	var validationErr *melodramaerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "prot", validationErr.Field)
}

func TestLoadRejectsOutOfRangePort(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "port: 70000\n")

	_, err := Load(LoadOptions{Dir: dir})
	var validationErr *melodramaerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "settings.port", validationErr.Field)
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(s *Settings) {}},
		{name: "ip host is valid", mutate: func(s *Settings) { s.Host = "127.0.0.1" }},
		{name: "registry must be a url", mutate: func(s *Settings) { s.Registry = "not a url" }, wantErr: true},
		{name: "host is required", mutate: func(s *Settings) { s.Host = "" }, wantErr: true},
		{name: "negative timeout", mutate: func(s *Settings) { s.RegistryTimeout = -time.Second }, wantErr: true},
		{name: "blank include", mutate: func(s *Settings) { s.Include = []string{" "} }, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := Defaults()
			tc.mutate(&s)
			err := Validate(&s)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestExtractLine(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, extractLine(nil))
	require.Equal(t, 4, extractLine(errFromString("yaml: line 4: did not find expected key")))
}

type errFromString string

func (e errFromString) Error() string { return string(e) }
