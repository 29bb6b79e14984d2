package bundler

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o755))
	return path
}

func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

type recordingReporter struct {
	mu     sync.Mutex
	labels []string
}

func (r *recordingReporter) add(kind, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labels = append(r.labels, kind+": "+label)
}

func (r *recordingReporter) Start(label string)   { r.add("start", label) }
func (r *recordingReporter) Update(label string)  { r.add("update", label) }
func (r *recordingReporter) Succeed(label string) { r.add("succeed", label) }
func (r *recordingReporter) Fail(label string)    { r.add("fail", label) }

func (r *recordingReporter) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.labels...)
}
