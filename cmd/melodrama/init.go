package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/melodrama/melodrama/internal/bootstrap"
	"github.com/melodrama/melodrama/internal/config"
	"github.com/melodrama/melodrama/internal/progress"
	"github.com/melodrama/melodrama/internal/tui"
)

type initOptions struct {
	Dir         string
	Verbose     bool
	Yes         bool
	Git         bool
	Interactive bool
	Settings    *config.Settings
}

var initCmdRunner = runInit

func newInitCmd(root *rootFlags) *cobra.Command {
	opts := initOptions{}

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Bootstrap a presentation project in dir (default: current directory)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dir = "."
			if len(args) == 1 {
				opts.Dir = args[0]
			}
			opts.Verbose = root.verbose
			opts.Interactive = isTerminal(os.Stdin) && isTerminal(os.Stdout)

			settings, err := loadSettings(cmd, root)
			if err != nil {
				return err
			}
			opts.Settings = settings

			return initCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Skip the questions: no theme, syntax highlighting on")
	cmd.Flags().BoolVar(&opts.Git, "git", false, "Initialize a git repository in the project")
	addRegistryFlags(cmd.Flags())

	return cmd
}

func runInit(cmd *cobra.Command, opts initOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	reporter := progress.New(out, opts.Interactive)

	materializer := bootstrap.NewMaterializer(log)
	materializer.InitGit = opts.Git

	orchestrator := &bootstrap.Orchestrator{
		Themes: &bootstrap.ThemeClient{
			BaseURL:  opts.Settings.Registry,
			Prefix:   opts.Settings.ThemePrefix,
			Timeout:  opts.Settings.RegistryTimeout,
			Reporter: reporter,
			Logger:   log,
		},
		Prompter:     newPrompter(opts, cmd.InOrStdin(), out),
		Prober:       bootstrap.NewProber(),
		Materializer: materializer,
		Installer: &bootstrap.Installer{
			Reporter: reporter,
			Stdin:    cmd.InOrStdin(),
			Stdout:   out,
			Stderr:   cmd.ErrOrStderr(),
			Logger:   log,
		},
		ThemePrefix: opts.Settings.ThemePrefix,
		Logger:      log,
	}

	result, err := orchestrator.Run(ctx, bootstrap.Request{TargetDir: opts.Dir, Verbose: opts.Verbose})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, tui.Summary{
		Dir:          result.TargetDir,
		Theme:        result.Choices.Theme,
		Syntax:       result.Choices.Syntax,
		Dependencies: result.Plan.Dependencies,
	}.View())
	return nil
}

func newPrompter(opts initOptions, in io.Reader, out io.Writer) bootstrap.Prompter {
	switch {
	case opts.Yes:
		return bootstrap.StaticPrompter{Theme: bootstrap.NoTheme, Syntax: true}
	case opts.Interactive:
		return &bootstrap.TUIPrompter{In: in, Out: out}
	default:
		return bootstrap.NewLinePrompter(in, out)
	}
}
