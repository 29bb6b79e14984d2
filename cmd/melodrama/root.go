package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose    bool
	configFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "melodrama",
		Short:         "Scaffold, serve and build Spectacle presentations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Print logs while executing the command")
	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "Settings file (default ./melodrama.yaml)")

	cmd.AddCommand(newInitCmd(flags))
	cmd.AddCommand(newStartCmd(flags))
	cmd.AddCommand(newBuildCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
