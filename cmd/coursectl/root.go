package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "coursectl",
		Short:         "Maintenance tool for the psychology course service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newDecksCmd(), newMigrateCmd())
	return root
}
