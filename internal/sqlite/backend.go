// Package sqlite implements the SQLite repository for rankaroo. JSONL files
// in the data directory are the source of truth; the SQLite database is
// rebuilt from them on every Attach and kept in step by SaveAll.
// Implements: rankaroo-core (Repository LoadAll/SaveAll);
//
//	docs/ARCHITECTURE § SQLite Repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

var _ types.Repository = (*Backend)(nil)

// Backend is a types.Repository backed by SQLite and JSONL files.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	dataDir  string
	db       *sql.DB
	log      *zap.Logger
}

// BackendOption configures a Backend.
type BackendOption func(*Backend)

// WithLogger sets the logger used for load and save events.
func WithLogger(log *zap.Logger) BackendOption {
	return func(b *Backend) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBackend creates a detached backend. Call Attach before use.
func NewBackend(opts ...BackendOption) *Backend {
	b := &Backend{log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach creates DataDir if needed, rebuilds the SQLite database from the
// JSONL files, and makes the backend usable.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(ctx context.Context, config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	for _, name := range []string{categoriesJSONL, itemsJSONL} {
		if err := ensureJSONL(filepath.Join(dataDir, name)); err != nil {
			return fmt.Errorf("initialising %s: %w", name, err)
		}
	}

	// The database is derived state; start from an empty file every time.
	dbPath := filepath.Join(dataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaDDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	if err := loadJSONL(ctx, db, dataDir, b.log); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.dataDir = dataDir
	b.attached = true
	b.log.Debug("attached sqlite repository", zap.String("path", dbPath))
	return nil
}

// Detach closes the database. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	if err := b.db.Close(); err != nil {
		return err
	}
	b.db = nil
	return nil
}

// LoadAll reads every category (in insertion order) and item (in sequence
// order). Returns ErrDetached if the backend is not attached.
func (b *Backend) LoadAll(ctx context.Context) (types.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.Snapshot{}, types.ErrDetached
	}

	var snap types.Snapshot
	rows, err := b.db.QueryContext(ctx,
		"SELECT category_id, name, description, type, created_at, updated_at FROM categories ORDER BY position")
	if err != nil {
		return snap, fmt.Errorf("querying categories: %w", err)
	}
	for rows.Next() {
		var r categoryJSON
		if err := rows.Scan(&r.CategoryID, &r.Name, &r.Description, &r.Type, &r.CreatedAt, &r.UpdatedAt); err != nil {
			rows.Close()
			return snap, fmt.Errorf("scanning category: %w", err)
		}
		snap.Categories = append(snap.Categories, r.category())
	}
	if err := closeRows(rows); err != nil {
		return snap, fmt.Errorf("reading categories: %w", err)
	}

	rows, err = b.db.QueryContext(ctx,
		"SELECT item_id, category_id, name, ranking, seq, created_at, updated_at FROM items ORDER BY seq, item_id")
	if err != nil {
		return snap, fmt.Errorf("querying items: %w", err)
	}
	for rows.Next() {
		var r itemJSON
		if err := rows.Scan(&r.ItemID, &r.CategoryID, &r.Name, &r.Ranking, &r.Seq, &r.CreatedAt, &r.UpdatedAt); err != nil {
			rows.Close()
			return snap, fmt.Errorf("scanning item: %w", err)
		}
		snap.Items = append(snap.Items, r.item())
	}
	if err := closeRows(rows); err != nil {
		return snap, fmt.Errorf("reading items: %w", err)
	}

	b.log.Debug("loaded state",
		zap.Int("categories", len(snap.Categories)),
		zap.Int("items", len(snap.Items)),
	)
	return snap, nil
}

// SaveAll replaces the database contents with snap in one transaction, then
// rewrites both JSONL files atomically. Returns ErrDetached if the backend is
// not attached.
func (b *Backend) SaveAll(ctx context.Context, snap types.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	cats := make([]categoryJSON, len(snap.Categories))
	for i, c := range snap.Categories {
		cats[i] = toCategoryJSON(c)
	}
	items := make([]itemJSON, len(snap.Items))
	for i, it := range snap.Items {
		items[i] = toItemJSON(it)
	}

	if err := b.replaceRows(ctx, cats, items); err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writeJSONL(filepath.Join(b.dataDir, categoriesJSONL), cats)
	})
	g.Go(func() error {
		return writeJSONL(filepath.Join(b.dataDir, itemsJSONL), items)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("writing JSONL: %w", err)
	}

	b.log.Debug("saved state",
		zap.Int("categories", len(cats)),
		zap.Int("items", len(items)),
	)
	return nil
}

func (b *Backend) replaceRows(ctx context.Context, cats []categoryJSON, items []itemJSON) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM categories"); err != nil {
		return fmt.Errorf("clearing categories: %w", err)
	}
	for i, c := range cats {
		if _, err := tx.ExecContext(ctx, insertCategorySQL,
			c.CategoryID, i, c.Name, c.Description, c.Type, c.CreatedAt, c.UpdatedAt,
		); err != nil {
			return fmt.Errorf("inserting category %s: %w", c.CategoryID, err)
		}
	}
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, insertItemSQL,
			it.ItemID, it.CategoryID, it.Name, it.Ranking, it.Seq, it.CreatedAt, it.UpdatedAt,
		); err != nil {
			return fmt.Errorf("inserting item %s: %w", it.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}
