package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ecotrack version",
		Args:  cobra.NoArgs,
		// Skip config loading; version must work with a broken config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ecotrack %s\n", ver)
		},
	}
}
