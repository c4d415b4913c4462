// Package types defines the rankaroo entities, the Repository interface, and
// standard errors.
// Implements: rankaroo-core (Config); see docs/ARCHITECTURE.md § Persistence.
package types

import "errors"

// Config holds backend selection and parameters for opening a Ranker.
type Config struct {
	Backend      string `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir      string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	SyncStrategy string `json:"sync_strategy" yaml:"sync_strategy" mapstructure:"sync_strategy"`
}

// Supported backend names. BackendMemory keeps state for the process lifetime
// only; BackendSQLite mirrors it to the data directory.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Sync strategies control when state is saved to the repository.
const (
	SyncImmediate = "immediate"
	SyncOnClose   = "on_close"
)

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrSyncStrategyUnknown = errors.New("unknown sync strategy")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendMemory: true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. An empty SyncStrategy is valid and means
// SyncImmediate.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	switch c.SyncStrategy {
	case "", SyncImmediate, SyncOnClose:
	default:
		return ErrSyncStrategyUnknown
	}
	return nil
}

// GetSyncStrategy returns the effective sync strategy.
func (c Config) GetSyncStrategy() string {
	if c.SyncStrategy == "" {
		return SyncImmediate
	}
	return c.SyncStrategy
}
