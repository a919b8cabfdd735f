package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release of the yo CLI.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/yo"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the yo version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "yo v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
