// Implements: rankaroo-cli (init command); internal/paths directory resolution.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rankaroo/pkg/sqlite"
	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize rankaroo storage",
		Long:  "Create configuration and data directories, write a default config.yaml, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd.Context(), cmd)
		},
	}
}

func (a *app) runInit(ctx context.Context, cmd *cobra.Command) error {
	cfg, configDir, err := a.resolveConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return systemErr(fmt.Errorf("create config directory: %w", err))
	}

	configPath := filepath.Join(configDir, configFileExt)
	written, err := writeConfigIfMissing(configPath, configFile{
		Backend:      cfg.Backend,
		DataDir:      a.dataDir,
		SyncStrategy: cfg.SyncStrategy,
	})
	if err != nil {
		return systemErr(fmt.Errorf("write config: %w", err))
	}
	if written {
		a.infof(cmd, "Wrote %s\n", configPath)
	}

	if cfg.Backend == types.BackendSQLite {
		backend := sqlite.NewBackend(sqlite.WithLogger(a.log))
		if err := backend.Attach(ctx, cfg); err != nil {
			return systemErr(fmt.Errorf("initialize storage: %w", err))
		}
		if err := backend.Detach(); err != nil {
			return systemErr(fmt.Errorf("finalize storage: %w", err))
		}
	}

	if a.jsonMode {
		return a.printJSON(cmd, map[string]string{
			"config_dir": configDir,
			"data_dir":   cfg.DataDir,
			"backend":    cfg.Backend,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rankaroo initialized in %s\n", cfg.DataDir)
	return nil
}
