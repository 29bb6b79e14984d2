// Package bundler drives webpack for the start and build commands. It writes
// a generated configuration into the project and runs the bundler CLI
// against it.
package bundler

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WorkDir holds generated files, relative to the project directory.
const WorkDir = ".melodrama"

// ConfigFile is the generated webpack configuration inside WorkDir.
const ConfigFile = "webpack.config.js"

const (
	runtimeFile = "presentation.js"
	htmlFile    = "index.html"
)

// Mode selects the webpack mode.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

//go:embed assets
var assets embed.FS

var configTemplate = template.Must(
	template.New("webpack.config.js.tmpl").
		Funcs(template.FuncMap{"json": jsonValue}).
		ParseFS(assets, "assets/webpack.config.js.tmpl"),
)

func jsonValue(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Project describes the presentation being bundled.
type Project struct {
	Dir     string
	Entry   string
	Include []string
	Name    string
}

// ConfigOptions are the values rendered into the webpack configuration.
type ConfigOptions struct {
	Mode      Mode
	OutputDir string
	Host      string
	Port      int
}

type configData struct {
	Mode         Mode
	Production   bool
	ProjectDir   string
	Entry        string
	Include      []string
	OutputDir    string
	Runtime      string
	HTMLTemplate string
	Title        string
	Host         string
	Port         int
}

// Title returns the HTML title for a package name: dashes become spaces and
// every word starts upper case.
func Title(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "-", " "))
	if name == "" {
		return "Slides"
	}
	return "Slides | " + cases.Title(language.English, cases.NoLower).String(name)
}

// RenderConfig returns the webpack configuration for p.
func RenderConfig(p Project, opts ConfigOptions) ([]byte, error) {
	work := filepath.Join(p.Dir, WorkDir)

	include := []string{filepath.Dir(p.Entry), work}
	include = append(include, p.Include...)

	data := configData{
		Mode:         opts.Mode,
		Production:   opts.Mode == ModeProduction,
		ProjectDir:   p.Dir,
		Entry:        p.Entry,
		Include:      dedupe(include),
		OutputDir:    opts.OutputDir,
		Runtime:      filepath.Join(work, runtimeFile),
		HTMLTemplate: filepath.Join(work, htmlFile),
		Title:        Title(p.Name),
		Host:         opts.Host,
		Port:         opts.Port,
	}

	var buf bytes.Buffer
	if err := configTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering webpack config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteConfig renders the configuration and the presentation runtime into
// the project's WorkDir and returns the configuration path.
func WriteConfig(p Project, opts ConfigOptions) (string, error) {
	config, err := RenderConfig(p, opts)
	if err != nil {
		return "", err
	}

	work := filepath.Join(p.Dir, WorkDir)
	if err := os.MkdirAll(work, 0o755); err != nil {
		return "", err
	}

	for _, name := range []string{runtimeFile, htmlFile} {
		data, err := assets.ReadFile("assets/" + name)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(filepath.Join(work, name), data, 0o644); err != nil {
			return "", err
		}
	}

	path := filepath.Join(work, ConfigFile)
	if err := os.WriteFile(path, config, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
