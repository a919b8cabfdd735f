package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the current items to a JSON lines file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if err := backend.Export(args[0]); err != nil {
				return sysError(fmt.Errorf("export: %w", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Exported items to", args[0])
			return nil
		},
	}
}
