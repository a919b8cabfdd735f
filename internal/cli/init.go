package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/yo/internal/paths"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a yo project in the current directory",
		Long:  "Create the .yo directory with an empty entry log, a snapshot and config.yaml.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	dataDir := paths.DataDir(runtimeState.root)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create data directory: %w", err))
	}

	u, err := currentUser()
	if err != nil {
		return err
	}
	if err := writeConfigIfMissing(configPath(dataDir), u.String()); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	// Attach then Detach creates the log and the snapshot.
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	if err := backend.Detach(); err != nil {
		return sysError(fmt.Errorf("finalize storage: %w", err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Initialized yo project in", dataDir)
	return nil
}
