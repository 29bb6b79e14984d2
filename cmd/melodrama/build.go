package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/melodrama/melodrama/internal/bundler"
	"github.com/melodrama/melodrama/internal/config"
	"github.com/melodrama/melodrama/internal/progress"
	"github.com/melodrama/melodrama/internal/tui"
)

type buildOptions struct {
	Entry       string
	Verbose     bool
	Interactive bool
	Settings    *config.Settings
}

var buildCmdRunner = runBuild

func newBuildCmd(root *rootFlags) *cobra.Command {
	opts := buildOptions{}

	cmd := &cobra.Command{
		Use:   "build [entry]",
		Short: "Bundle a minified presentation for entry (default: index.js)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Entry = args[0]
			}
			opts.Verbose = root.verbose
			opts.Interactive = isTerminal(os.Stdout)

			settings, err := loadSettings(cmd, root)
			if err != nil {
				return err
			}
			opts.Settings = settings

			return buildCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().String("build-dir", config.Defaults().BuildDir, "Directory the bundle is written to (emptied first)")
	addBundleFlags(cmd.Flags())

	return cmd
}

func runBuild(cmd *cobra.Command, opts buildOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}

	project, err := bundler.LoadProject(".", opts.Entry, opts.Settings.Include)
	if err != nil {
		return err
	}

	if err := bundler.RequireNode(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	builder := &bundler.Builder{
		Command:  opts.Settings.Bundler,
		Stdout:   out,
		Stderr:   cmd.ErrOrStderr(),
		Reporter: progress.New(out, opts.Interactive && !opts.Verbose),
		Logger:   log,
		Verbose:  opts.Verbose,
	}

	report, err := builder.Build(ctx, project, opts.Settings.BuildDir)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, tui.DimStyle.Render(report.String()))
	return nil
}
