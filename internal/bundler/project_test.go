package bundler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	melodramaerrors "github.com/melodrama/melodrama/pkg/errors"
)

func TestResolveEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.js"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "slides"), 0o755))

	entry, err := ResolveEntry(dir, "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "index.js"), entry)

	_, err = ResolveEntry(dir, "talk.js")
	var entryErr *melodramaerrors.EntryError
	require.True(t, errors.As(err, &entryErr))
	require.Equal(t, filepath.Join(dir, "talk.js"), entryErr.Path)

	_, err = ResolveEntry(dir, "slides")
	require.Error(t, err)
}

func TestResolveIncludes(t *testing.T) {
	got := ResolveIncludes("/deck", []string{"src, lib", "", "/abs/shared"})
	require.Equal(t, []string{"/deck/src", "/deck/lib", "/abs/shared"}, got)
}

func TestLoadProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fallback-name")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.js"), nil, 0o644))

	p, err := LoadProject(dir, "", nil)
	require.NoError(t, err)
	require.Equal(t, "fallback-name", p.Name)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"my-talk"}`), 0o644))
	p, err = LoadProject(dir, "index.js", []string{"src"})
	require.NoError(t, err)
	require.Equal(t, "my-talk", p.Name)
	require.Equal(t, []string{filepath.Join(dir, "src")}, p.Include)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{`), 0o644))
	_, err = LoadProject(dir, "", nil)
	require.Error(t, err)
}
