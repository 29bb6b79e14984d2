package bootstrap

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/melodrama/melodrama/internal/internalexec"
	"github.com/melodrama/melodrama/internal/logger"
	"github.com/melodrama/melodrama/internal/progress"
	melodramaerrors "github.com/melodrama/melodrama/pkg/errors"
)

// Installer runs the package manager for an InstallPlan.
type Installer struct {
	Reporter progress.Reporter
	// Stdin, Stdout and Stderr are wired to the child in verbose mode and
	// default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *logger.Logger
}

// Install spawns plan.Command in dir. Verbose runs stream the child's output
// and share stdin so nested prompts stay usable; quiet runs report through the
// progress reporter and keep the output for the error.
func (i *Installer) Install(ctx context.Context, plan InstallPlan, dir string, verbose bool) error {
	args := plan.Args()
	cmd := exec.CommandContext(ctx, plan.Command, args...)
	cmd.Dir = dir

	i.Logger.WithFields(map[string]any{
		"command": plan.Command,
		"args":    strings.Join(args, " "),
		"dir":     dir,
	}).Debug("spawning package manager")

	if verbose {
		cmd.Stdin = i.stdin()
		cmd.Stdout = i.Stdout
		cmd.Stderr = i.Stderr
		res, err := internalexec.RunStreaming(cmd)
		if err != nil {
			return installError(plan.Command, res, err)
		}
		return nil
	}

	reporter := i.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}

	reporter.Start("Installing dependencies. This may take a while...")
	res, err := internalexec.RunQuiet(cmd)
	if err != nil {
		reporter.Fail("Installation failed!")
		return installError(plan.Command, res, err)
	}
	reporter.Succeed("Installation complete!")
	return nil
}

func (i *Installer) stdin() io.Reader {
	if i.Stdin != nil {
		return i.Stdin
	}
	return os.Stdin
}

func installError(command string, res internalexec.Result, err error) error {
	code := internalexec.ExitCode(err)
	output := ""
	if code >= 0 {
		output = internalexec.PrimaryOutput(res)
	}
	return melodramaerrors.NewInstallError(command, code, output, err)
}
