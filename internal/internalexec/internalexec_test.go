package internalexec

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}
}

func TestRunStreaming_ForwardsAndCollects(t *testing.T) {
	skipOnWindows(t)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd := exec.Command("sh", "-c", "echo 'added 3 packages'; echo 'warn deprecated' >&2")
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	result, err := RunStreaming(cmd)
	require.NoError(t, err)
	assert.Equal(t, "added 3 packages", result.Stdout)
	assert.Equal(t, "warn deprecated", result.Stderr)
	assert.Equal(t, "added 3 packages\n", stdoutBuf.String())
	assert.Equal(t, "warn deprecated\n", stderrBuf.String())
}

func TestRunQuiet_CollectsOnly(t *testing.T) {
	skipOnWindows(t)

	cmd := exec.Command("sh", "-c", "printf 'resolving\\n\\t'; echo 'ERR! 404' >&2; exit 3")

	result, err := RunQuiet(cmd)
	require.Error(t, err)
	assert.Equal(t, "resolving", result.Stdout)
	assert.Equal(t, "ERR! 404", result.Stderr)
	assert.Equal(t, 3, ExitCode(err))
}

func TestRunQuiet_ContextCancel(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result, err := RunQuiet(exec.CommandContext(ctx, "sleep", "1"))
	require.Error(t, err)
	assert.Empty(t, result.Stdout)
	assert.Equal(t, -1, ExitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))

	_, err := RunQuiet(exec.Command("this-command-does-not-exist"))
	require.Error(t, err)
	assert.Equal(t, -1, ExitCode(err))
}

func TestPrimaryOutput(t *testing.T) {
	t.Run("returns stderr when present", func(t *testing.T) {
		assert.Equal(t, "error message", PrimaryOutput(Result{Stdout: "normal output", Stderr: "error message"}))
	})

	t.Run("returns stdout when no stderr", func(t *testing.T) {
		assert.Equal(t, "normal output", PrimaryOutput(Result{Stdout: "normal output"}))
	})

	t.Run("returns empty string when both are empty", func(t *testing.T) {
		assert.Equal(t, "", PrimaryOutput(Result{}))
	})
}
