package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize kennel storage",
		Long:  "Create the configuration and data directories, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	// An explicit --data-dir is recorded so later commands find the same roster.
	dataDir, err := resolveDataDir()
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	configPath := state.configDir.ConfigFile()
	if err := writeConfigIfMissing(configPath, dataDir.Pinned()); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	backend, err := attachBackend()
	if err != nil {
		return classify(fmt.Errorf("initialize storage: %w", err))
	}
	if err := backend.Detach(); err != nil {
		return sysError(fmt.Errorf("finalize storage: %w", err))
	}

	state.logger.Info("kennel initialized", "config", configPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Kennel initialized successfully")
	return nil
}
