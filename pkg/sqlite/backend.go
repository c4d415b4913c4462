// Package sqlite provides the public API for the SQLite repository that
// persists a Ranker. This package exposes the factory function for creating
// backends while keeping implementation details internal.
//
// Implements: rankaroo-core (Repository factory);
//
//	docs/ARCHITECTURE § Public API.
package sqlite

import (
	"context"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/rankaroo/internal/sqlite"
	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

// Backend is a types.Repository with an attach/detach lifecycle.
type Backend interface {
	types.Repository
	Attach(ctx context.Context, config types.Config) error
	Detach() error
}

// Option configures a Backend.
type Option = sqlite.BackendOption

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(log *zap.Logger) Option {
	return sqlite.WithLogger(log)
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(ctx, types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".rankaroo-db",
//	})
//	defer backend.Detach()
//	r, err := rankaroo.Open(ctx, rankaroo.WithRepository(backend))
func NewBackend(opts ...Option) Backend {
	return sqlite.NewBackend(opts...)
}
