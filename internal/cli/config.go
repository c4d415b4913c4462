// Config loading and Ranker construction for the rankaroo CLI.
// Implements: rankaroo-cli (config.yaml, directory resolution, backend wiring).
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/rankaroo/internal/paths"
	"github.com/mesh-intelligence/rankaroo/pkg/rankaroo"
	"github.com/mesh-intelligence/rankaroo/pkg/sqlite"
	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeySyncStrategy = "sync_strategy"

	envPrefix = "RANKAROO"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	SyncStrategy string `yaml:"sync_strategy,omitempty"`
}

// loadConfig reads config.yaml from configDir. A missing file is not an
// error; defaults apply. RANKAROO_BACKEND and RANKAROO_SYNC_STRATEGY override
// the file.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeySyncStrategy, types.SyncImmediate)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeySyncStrategy} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolveConfig combines flags, config.yaml and environment into a validated
// types.Config.
func (a *app) resolveConfig() (types.Config, string, error) {
	configDir, configSrc, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return types.Config{}, "", systemErr(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, "", systemErr(err)
	}

	dataDir, dataSrc, err := paths.ResolveDataDir(paths.DataDirInput{
		Flag:   a.dataDir,
		Global: a.global,
		Config: v.GetString(cfgKeyDataDir),
	})
	if err != nil {
		return types.Config{}, "", systemErr(fmt.Errorf("resolve data dir: %w", err))
	}

	cfg := types.Config{
		Backend:      v.GetString(cfgKeyBackend),
		DataDir:      dataDir,
		SyncStrategy: v.GetString(cfgKeySyncStrategy),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, "", fmt.Errorf("config %s: %w", filepath.Join(configDir, configFileExt), err)
	}
	a.log.Debug("resolved configuration",
		zap.String("config_dir", configDir),
		zap.String("config_dir_source", string(configSrc)),
		zap.String("data_dir", cfg.DataDir),
		zap.String("data_dir_source", string(dataSrc)),
		zap.String("backend", cfg.Backend),
		zap.String("sync_strategy", cfg.SyncStrategy))
	return cfg, configDir, nil
}

// withRanker opens a Ranker for the configured backend, runs fn, and closes
// everything again. Errors from fn take precedence but close errors are
// joined to them.
func (a *app) withRanker(ctx context.Context, fn func(r *rankaroo.Ranker) error) (err error) {
	cfg, _, err := a.resolveConfig()
	if err != nil {
		return err
	}

	if cfg.Backend == types.BackendMemory {
		return fn(rankaroo.New())
	}

	backend := sqlite.NewBackend(sqlite.WithLogger(a.log))
	if err := backend.Attach(ctx, cfg); err != nil {
		return systemErr(fmt.Errorf("attach storage: %w", err))
	}
	defer func() {
		if derr := backend.Detach(); derr != nil {
			err = errors.Join(err, systemErr(fmt.Errorf("detach storage: %w", derr)))
		}
	}()

	r, err := rankaroo.Open(ctx,
		rankaroo.WithRepository(backend),
		rankaroo.WithSyncStrategy(cfg.SyncStrategy))
	if err != nil {
		return systemErr(err)
	}
	defer func() {
		if cerr := r.Close(ctx); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	return fn(r)
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
