package bundler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	melodramaerrors "github.com/melodrama/melodrama/pkg/errors"
)

// DefaultEntry is used when no entry file is given.
const DefaultEntry = "index.js"

// ResolveEntry resolves entry against dir and checks that the file exists.
func ResolveEntry(dir, entry string) (string, error) {
	if entry == "" {
		entry = DefaultEntry
	}
	if !filepath.IsAbs(entry) {
		entry = filepath.Join(dir, entry)
	}

	info, err := os.Stat(entry)
	if err != nil || info.IsDir() {
		return "", melodramaerrors.NewEntryError(entry)
	}
	return entry, nil
}

// ResolveIncludes turns comma separated directory lists into absolute paths.
func ResolveIncludes(dir string, values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if !filepath.IsAbs(part) {
				part = filepath.Join(dir, part)
			}
			out = append(out, part)
		}
	}
	return out
}

// LoadProject reads the project name from dir/package.json. A missing
// manifest falls back to the directory name.
func LoadProject(dir, entry string, include []string) (Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Project{}, err
	}

	resolved, err := ResolveEntry(abs, entry)
	if err != nil {
		return Project{}, err
	}

	p := Project{
		Dir:     abs,
		Entry:   resolved,
		Include: ResolveIncludes(abs, include),
		Name:    filepath.Base(abs),
	}

	data, err := os.ReadFile(filepath.Join(abs, "package.json"))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return p, nil
	case err != nil:
		return Project{}, err
	}

	var manifest struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return Project{}, fmt.Errorf("parsing package.json: %w", err)
	}
	if manifest.Name != "" {
		p.Name = manifest.Name
	}
	return p, nil
}
