package bootstrap

import (
	"os"
	"path/filepath"
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

type event struct {
	kind  string
	label string
}

type recordingReporter struct {
	mu     sync.Mutex
	events []event
}

func (r *recordingReporter) record(kind, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{kind: kind, label: label})
}

func (r *recordingReporter) Start(label string)   { r.record("start", label) }
func (r *recordingReporter) Update(label string)  { r.record("update", label) }
func (r *recordingReporter) Succeed(label string) { r.record("succeed", label) }
func (r *recordingReporter) Fail(label string)    { r.record("fail", label) }

func (r *recordingReporter) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]string, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.kind)
	}
	return kinds
}
