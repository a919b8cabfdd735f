package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the snapshot by replaying the entry log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			p, err := backend.Reindex()
			if err != nil {
				return sysError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reindexed %d items\n", len(p.Items))
			return nil
		},
	}
}

func newResetDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resetdb",
		Short: "Delete the snapshot database and rebuild it from the entry log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if err := backend.ResetSnapshot(); err != nil {
				return sysError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Snapshot rebuilt from the entry log")
			return nil
		},
	}
}
