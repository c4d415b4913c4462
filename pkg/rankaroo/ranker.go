// Package rankaroo is the operation set the presentation layer calls: create
// and manage categories, add and rank items, and read sorted views.
// Implements: rankaroo-core (external interfaces, query facade, persistence
// boundary); docs/ARCHITECTURE § Main Interface.
package rankaroo

import (
	"context"
	"fmt"
	"sync"

	"github.com/mesh-intelligence/rankaroo/internal/ids"
	"github.com/mesh-intelligence/rankaroo/internal/ranking"
	"github.com/mesh-intelligence/rankaroo/internal/store"
	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

// Ranker owns the category and item stores for the process lifetime. All
// methods are safe for concurrent use.
type Ranker struct {
	ids        *ids.Allocator
	categories *store.CategoryStore
	items      *store.ItemStore

	repo     types.Repository
	strategy string
	saveMu   sync.Mutex // serializes snapshot+save so saves land in order
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithRepository mirrors state to repo. Without it the Ranker is memory-only.
func WithRepository(repo types.Repository) Option {
	return func(r *Ranker) { r.repo = repo }
}

// WithSyncStrategy selects when state is saved: types.SyncImmediate (after
// every successful mutation, the default) or types.SyncOnClose.
func WithSyncStrategy(strategy string) Option {
	return func(r *Ranker) {
		if strategy != "" {
			r.strategy = strategy
		}
	}
}

// New returns an empty Ranker. It does not load from the repository; use Open
// for that.
func New(opts ...Option) *Ranker {
	alloc := ids.New()
	cs, is := store.New(alloc)
	r := &Ranker{
		ids:        alloc,
		categories: cs,
		items:      is,
		strategy:   types.SyncImmediate,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open returns a Ranker initialised from the repository's saved state.
func Open(ctx context.Context, opts ...Option) (*Ranker, error) {
	r := New(opts...)
	if r.repo == nil {
		return r, nil
	}
	snap, err := r.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	if err := r.restore(snap); err != nil {
		return nil, err
	}
	return r, nil
}

// Close saves pending state when the sync strategy is on_close.
func (r *Ranker) Close(ctx context.Context) error {
	if r.repo == nil || r.strategy != types.SyncOnClose {
		return nil
	}
	return r.Flush(ctx)
}

// Flush saves the current state to the repository regardless of strategy.
func (r *Ranker) Flush(ctx context.Context) error {
	if r.repo == nil {
		return nil
	}
	r.saveMu.Lock()
	defer r.saveMu.Unlock()

	if err := r.repo.SaveAll(ctx, store.Snapshot(r.categories, r.items)); err != nil {
		return fmt.Errorf("%w: %w", types.ErrPersist, err)
	}
	return nil
}

// committed runs after a mutation. On success with the immediate strategy it
// saves; a failed save is reported as ErrPersist while the in-memory change
// stands and the next save reconciles.
func (r *Ranker) committed(err error) error {
	if err != nil {
		return err
	}
	if r.repo == nil || r.strategy != types.SyncImmediate {
		return nil
	}
	return r.Flush(context.Background())
}

// CreateCategory adds a category and returns its ID.
// Errors: ErrInvalidName, ErrInvalidType, ErrDuplicateName.
func (r *Ranker) CreateCategory(name, description string, ct types.CategoryType) (string, error) {
	id, err := r.categories.Create(name, description, ct)
	if err != nil {
		return "", err
	}
	return id, r.committed(nil)
}

// RenameCategory gives a category a new name.
// Errors: ErrNotFound, ErrDuplicateName, ErrInvalidName.
func (r *Ranker) RenameCategory(id, name string) error {
	return r.committed(r.categories.Rename(id, name))
}

// DescribeCategory replaces a category's description. Errors: ErrNotFound.
func (r *Ranker) DescribeCategory(id, description string) error {
	return r.committed(r.categories.Describe(id, description))
}

// DeleteCategory removes a category and all of its items. Errors: ErrNotFound.
func (r *Ranker) DeleteCategory(id string) error {
	return r.committed(r.categories.Delete(id))
}

// GetCategory returns one category. Errors: ErrNotFound.
func (r *Ranker) GetCategory(id string) (types.Category, error) {
	return r.categories.Get(id)
}

// ListCategories returns every category in creation order.
func (r *Ranker) ListCategories() []types.Category {
	return r.categories.List()
}

// CategoriesByType returns the categories of one type in creation order.
// Errors: ErrInvalidType.
func (r *Ranker) CategoriesByType(ct types.CategoryType) ([]types.Category, error) {
	return r.categories.ByType(ct)
}

// AddItem adds an item to a category and returns its ID.
// Errors: ErrNotFound, ErrRange, ErrDuplicateName, ErrInvalidName.
func (r *Ranker) AddItem(categoryID, name string, rank int) (string, error) {
	id, err := r.items.Add(categoryID, name, rank)
	if err != nil {
		return "", err
	}
	return id, r.committed(nil)
}

// UpdateItemRanking changes an item's ranking. Setting the ranking it already
// has changes nothing and saves nothing. Errors: ErrNotFound, ErrRange.
func (r *Ranker) UpdateItemRanking(id string, rank int) error {
	changed, err := r.items.UpdateRanking(id, rank)
	if err != nil || !changed {
		return err
	}
	return r.committed(nil)
}

// RemoveItem deletes an item. Errors: ErrNotFound.
func (r *Ranker) RemoveItem(id string) error {
	return r.committed(r.items.Remove(id))
}

// RemoveByCategory deletes every item of a category and keeps the category.
// It never reports a store error; only a failed save is returned.
func (r *Ranker) RemoveByCategory(categoryID string) error {
	r.items.RemoveByCategory(categoryID)
	return r.committed(nil)
}

// GetItem returns one item. Errors: ErrNotFound.
func (r *Ranker) GetItem(id string) (types.Item, error) {
	return r.items.Get(id)
}

// GetSortedItems returns a category's items, best ranking first, ties in the
// order the items were added. Errors: ErrNotFound.
func (r *Ranker) GetSortedItems(categoryID string) ([]types.Item, error) {
	return r.items.Sorted(categoryID)
}

// Leaderboard returns the sorted items numbered from #1. Errors: ErrNotFound.
func (r *Ranker) Leaderboard(categoryID string) ([]types.Ranked, error) {
	sorted, err := r.items.Sorted(categoryID)
	if err != nil {
		return nil, err
	}
	return ranking.Positions(sorted), nil
}

// CategorySummary is a category together with its item count.
type CategorySummary struct {
	Category types.Category `json:"category"`
	Items    int            `json:"items"`
}

// Summary lists every category with the number of items it holds.
func (r *Ranker) Summary() []CategorySummary {
	snap := store.Snapshot(r.categories, r.items)
	counts := make(map[string]int, len(snap.Categories))
	for _, it := range snap.Items {
		counts[it.CategoryID]++
	}
	out := make([]CategorySummary, len(snap.Categories))
	for i, c := range snap.Categories {
		out[i] = CategorySummary{Category: c, Items: counts[c.CategoryID]}
	}
	return out
}

// Snapshot returns a consistent copy of the full state.
func (r *Ranker) Snapshot() types.Snapshot {
	return store.Snapshot(r.categories, r.items)
}

// Restore replaces the full state with snap. On error nothing changes.
func (r *Ranker) Restore(snap types.Snapshot) error {
	return r.committed(r.restore(snap))
}

func (r *Ranker) restore(snap types.Snapshot) error {
	if err := store.Restore(r.categories, r.items, snap); err != nil {
		return err
	}
	for _, c := range snap.Categories {
		r.ids.Observe(c.CategoryID)
	}
	for _, it := range snap.Items {
		r.ids.Observe(it.ItemID)
	}
	return nil
}
