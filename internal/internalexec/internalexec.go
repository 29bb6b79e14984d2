// Package internalexec runs child processes for the installer and bundler.
package internalexec

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result holds the stdout and stderr a command emitted, trimmed.
type Result struct {
	Stdout string
	Stderr string
}

// RunStreaming forwards the command's output to its configured writers (or
// the parent's stdout/stderr) and also collects it.
func RunStreaming(cmd *exec.Cmd) (Result, error) {
	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = tee(cmd.Stdout, os.Stdout, &stdoutBuf)
	cmd.Stderr = tee(cmd.Stderr, os.Stderr, &stderrBuf)

	err := cmd.Run()
	return result(&stdoutBuf, &stderrBuf), err
}

// RunQuiet collects the command's output without forwarding it.
func RunQuiet(cmd *exec.Cmd) (Result, error) {
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	return result(&stdoutBuf, &stderrBuf), err
}

// PrimaryOutput returns stderr if present, otherwise stdout.
func PrimaryOutput(res Result) string {
	if res.Stderr != "" {
		return res.Stderr
	}
	return res.Stdout
}

// ExitCode extracts the process exit status from err. It returns 0 for a nil
// error and -1 when the process never ran or was killed by a signal.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func tee(configured, fallback io.Writer, buf *bytes.Buffer) io.Writer {
	if configured != nil {
		return io.MultiWriter(configured, buf)
	}
	return io.MultiWriter(fallback, buf)
}

func result(stdout, stderr *bytes.Buffer) Result {
	return Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
}
