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

type startOptions struct {
	Entry       string
	Verbose     bool
	Interactive bool
	Settings    *config.Settings
}

var startCmdRunner = runStart

func newStartCmd(root *rootFlags) *cobra.Command {
	opts := startOptions{}

	cmd := &cobra.Command{
		Use:   "start [entry]",
		Short: "Run the dev server with hot reloading for entry (default: index.js)",
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

			return startCmdRunner(cmd, opts)
		},
	}

	addServerFlags(cmd.Flags())
	addBundleFlags(cmd.Flags())

	return cmd
}

func runStart(cmd *cobra.Command, opts startOptions) error {
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
	port, err := bundler.FreePort(opts.Settings.Host, opts.Settings.Port)
	if err != nil {
		return err
	}
	if port != opts.Settings.Port {
		fmt.Fprintln(out, tui.InfoStyle.Render(fmt.Sprintf(tui.InfoMark+" Port %d already used, using port %d instead.", opts.Settings.Port, port)))
	}

	server := &bundler.DevServer{
		Command:  opts.Settings.Bundler,
		Stdout:   out,
		Stderr:   cmd.ErrOrStderr(),
		Reporter: progress.New(out, opts.Interactive && !opts.Verbose),
		Logger:   log,
	}

	return server.Run(ctx, project, bundler.ServeOptions{
		Host: opts.Settings.Host,
		Port: port,
		Open: opts.Settings.Open,
	})
}
