package bootstrap

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/melodrama/melodrama/internal/bundler"
)

// IgnoreFile is the VCS ignore file written into the target directory.
// npm renames .gitignore when publishing templates, so it is generated here
// instead of living in the template.
const IgnoreFile = ".gitignore"

// IgnorePatterns are always present in a scaffolded project. The last two
// cover the generated bundler files and the default build output.
var IgnorePatterns = []string{".DS_Store", "node_modules", "npm-debug.log", bundler.WorkDir + "/", "/build/"}

func ignoreBlock() string {
	return strings.Join(IgnorePatterns, "\n") + "\n"
}

// writeIgnoreFile appends the ignore block to an existing ignore file or
// creates the file with the block as its content.
func writeIgnoreFile(dir string) error {
	path := filepath.Join(dir, IgnoreFile)

	perm := os.FileMode(0o644)
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if info, statErr := os.Stat(path); statErr == nil {
			perm = info.Mode().Perm()
		}
	case errors.Is(err, fs.ErrNotExist):
		existing = nil
	default:
		return err
	}

	content := string(existing)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += ignoreBlock()

	return writeFileAtomic(path, []byte(content), perm)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".melodrama-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}
