package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a settings file parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures settings validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StageError is the terminal failure of a bootstrap run. Stage names the
// orchestrator state the run was in when it failed.
type StageError struct {
	Stage string
	Err   error
}

// NewStageError constructs a StageError.
func NewStageError(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}

func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stage != "" {
		return fmt.Sprintf("bootstrap failed while %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("bootstrap failed: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *StageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// MaterializeError reports which materialization sub-step failed.
type MaterializeError struct {
	Step string
	Err  error
}

// NewMaterializeError constructs a MaterializeError for the given sub-step.
func NewMaterializeError(step string, err error) error {
	return &MaterializeError{Step: step, Err: err}
}

func (e *MaterializeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("materialize %s: %v", e.Step, e.Err)
}

// Unwrap exposes the underlying error.
func (e *MaterializeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InstallError captures a failed package manager run. ExitCode is -1 when the
// process could not be started at all.
type InstallError struct {
	Command  string
	ExitCode int
	Output   string
	Err      error
}

// NewInstallError constructs an InstallError.
func NewInstallError(command string, exitCode int, output string, err error) error {
	return &InstallError{Command: command, ExitCode: exitCode, Output: strings.TrimSpace(output), Err: err}
}

func (e *InstallError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
	if e.ExitCode < 0 {
		msg = fmt.Sprintf("%s could not be started: %v", e.Command, e.Err)
	}
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

// Unwrap exposes the underlying error.
func (e *InstallError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// EntryError indicates the presentation entry file does not exist.
type EntryError struct {
	Path string
}

// NewEntryError constructs an EntryError.
func NewEntryError(path string) error {
	return &EntryError{Path: path}
}

func (e *EntryError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("missing entry file: no file at %s found", e.Path)
}

// BundleError indicates the bundler process failed.
type BundleError struct {
	Mode string
	Err  error
}

// NewBundleError constructs a BundleError.
func NewBundleError(mode string, err error) error {
	return &BundleError{Mode: mode, Err: err}
}

func (e *BundleError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("bundler (%s) failed: %v", e.Mode, e.Err)
}

// Unwrap exposes the underlying error.
func (e *BundleError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
