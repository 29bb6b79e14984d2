package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/melodrama/melodrama/internal/config"
	"github.com/melodrama/melodrama/internal/logger"
	"github.com/melodrama/melodrama/internal/tui"
	melodramaerrors "github.com/melodrama/melodrama/pkg/errors"
)

func newLogger(verbose bool) (*logger.Logger, error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Options{Level: level, HumanReadable: true})
}

func loadSettings(cmd *cobra.Command, root *rootFlags) (*config.Settings, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Load(config.LoadOptions{Dir: wd, File: root.configFile, Flags: cmd.Flags()})
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// renderError formats a command failure for the terminal.
func renderError(err error) string {
	var (
		stageErr *melodramaerrors.StageError
		entryErr *melodramaerrors.EntryError
	)

	switch {
	case errors.As(err, &stageErr):
		return tui.FailureStyle.Render(tui.FailureMark + " Bootstrapping failed because of the following reasons:") + "\n" +
			indent(fmt.Sprintf("while %s: %v", stageErr.Stage, stageErr.Err))
	case errors.As(err, &entryErr):
		return tui.FailureStyle.Render(tui.FailureMark + " Missing entry file!") + " No file at " + entryErr.Path + " found!"
	default:
		return tui.FailureStyle.Render(tui.FailureMark + " " + err.Error())
	}
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
