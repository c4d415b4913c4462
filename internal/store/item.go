package store

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/mesh-intelligence/rankaroo/internal/ranking"
	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

// ItemStore owns Item records and the per-category ordering. Item names are
// unique within a category, compared with Unicode case folding.
type ItemStore struct {
	mu         sync.RWMutex
	ids        Allocator
	categories *CategoryStore
	byID       map[string]*types.Item
	byCategory map[string][]string          // category ID -> item IDs, insertion order
	names      map[string]map[string]string // category ID -> folded name -> item ID
	seq        uint64
	now        func() time.Time

	// sorted caches the ranked view per category. Entries are dropped by any
	// mutation touching the category and filled lazily by readers.
	cacheMu sync.RWMutex
	sorted  map[string][]types.Item
}

func newItemStore(ids Allocator, categories *CategoryStore) *ItemStore {
	return &ItemStore{
		ids:        ids,
		categories: categories,
		byID:       make(map[string]*types.Item),
		byCategory: make(map[string][]string),
		names:      make(map[string]map[string]string),
		sorted:     make(map[string][]types.Item),
		now:        time.Now,
	}
}

// New returns a connected pair of stores sharing one Allocator. Deleting a
// category through the returned CategoryStore purges its items from the
// returned ItemStore.
func New(ids Allocator) (*CategoryStore, *ItemStore) {
	cs := newCategoryStore(ids)
	is := newItemStore(ids, cs)
	cs.items = is
	return cs, is
}

// Add creates an item in a category and returns its ID.
// Returns ErrInvalidName for an empty name, ErrRange if ranking is outside
// [1,10], ErrNotFound if the category does not exist, and ErrDuplicateName if
// the category already has an item whose name matches ignoring case.
func (s *ItemStore) Add(categoryID, name string, ranking int) (string, error) {
	name, err := types.NormalizeName(name)
	if err != nil {
		return "", err
	}
	if err := types.ValidateRanking(ranking); err != nil {
		return "", err
	}

	var id string
	err = s.categories.withCategory(categoryID, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		key := types.ItemNameKey(name)
		if _, taken := s.names[categoryID][key]; taken {
			return fmt.Errorf("item %q: %w", name, types.ErrDuplicateName)
		}

		s.seq++
		now := s.now()
		it := &types.Item{
			ItemID:     s.ids.Next(),
			CategoryID: categoryID,
			Name:       name,
			Ranking:    ranking,
			Seq:        s.seq,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		s.insertLocked(it)
		id = it.ItemID
		return nil
	})
	return id, err
}

// UpdateRanking sets a new ranking on an item and reports whether the ranking
// differed from the current one. The item keeps its insertion sequence, so
// among equal rankings it stays where it was added.
// Returns ErrRange or ErrNotFound.
func (s *ItemStore) UpdateRanking(id string, ranking int) (bool, error) {
	if err := types.ValidateRanking(ranking); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.byID[id]
	if !ok {
		return false, fmt.Errorf("item %s: %w", id, types.ErrNotFound)
	}
	if it.Ranking == ranking {
		return false, nil
	}
	it.Ranking = ranking
	it.UpdatedAt = s.now()
	s.invalidate(it.CategoryID)
	return true, nil
}

// Remove deletes an item. Returns ErrNotFound if it does not exist.
func (s *ItemStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("item %s: %w", id, types.ErrNotFound)
	}

	delete(s.byID, id)
	delete(s.names[it.CategoryID], types.ItemNameKey(it.Name))
	s.byCategory[it.CategoryID] = slices.DeleteFunc(s.byCategory[it.CategoryID], func(v string) bool { return v == id })
	if len(s.byCategory[it.CategoryID]) == 0 {
		delete(s.byCategory, it.CategoryID)
		delete(s.names, it.CategoryID)
	}
	s.invalidate(it.CategoryID)
	return nil
}

// RemoveByCategory deletes every item of a category. It never fails and is a
// no-op for unknown or already empty categories.
func (s *ItemStore) RemoveByCategory(categoryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, ok := s.byCategory[categoryID]
	if !ok {
		return
	}
	for _, id := range ids {
		delete(s.byID, id)
	}
	delete(s.byCategory, categoryID)
	delete(s.names, categoryID)
	s.invalidate(categoryID)
}

// Get returns a copy of the item with the given ID.
func (s *ItemStore) Get(id string) (types.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.byID[id]
	if !ok {
		return types.Item{}, fmt.Errorf("item %s: %w", id, types.ErrNotFound)
	}
	return *it, nil
}

// ListByCategory returns a category's items in insertion order.
// Returns ErrNotFound if the category does not exist.
func (s *ItemStore) ListByCategory(categoryID string) ([]types.Item, error) {
	var out []types.Item
	err := s.categories.withCategory(categoryID, func() error {
		s.mu.RLock()
		defer s.mu.RUnlock()
		out = s.listLocked(categoryID)
		return nil
	})
	return out, err
}

// Sorted returns a category's items in ranked order.
// Returns ErrNotFound if the category does not exist.
func (s *ItemStore) Sorted(categoryID string) ([]types.Item, error) {
	var out []types.Item
	err := s.categories.withCategory(categoryID, func() error {
		s.mu.RLock()
		defer s.mu.RUnlock()

		// Views are never modified once cached, only dropped, so they can be
		// cloned outside cacheMu. Holding s.mu for reading keeps a view built
		// here current until it is stored.
		s.cacheMu.RLock()
		view, ok := s.sorted[categoryID]
		s.cacheMu.RUnlock()
		if !ok {
			view = ranking.Sort(s.listLocked(categoryID))
			s.cacheMu.Lock()
			s.sorted[categoryID] = view
			s.cacheMu.Unlock()
		}
		out = slices.Clone(view)
		return nil
	})
	return out, err
}

func (s *ItemStore) insertLocked(it *types.Item) {
	s.byID[it.ItemID] = it
	s.byCategory[it.CategoryID] = append(s.byCategory[it.CategoryID], it.ItemID)
	if s.names[it.CategoryID] == nil {
		s.names[it.CategoryID] = make(map[string]string)
	}
	s.names[it.CategoryID][types.ItemNameKey(it.Name)] = it.ItemID
	s.invalidate(it.CategoryID)
}

func (s *ItemStore) listLocked(categoryID string) []types.Item {
	ids := s.byCategory[categoryID]
	out := make([]types.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.byID[id])
	}
	return out
}

// invalidate drops the cached view of a category. Callers hold s.mu for writing.
func (s *ItemStore) invalidate(categoryID string) {
	s.cacheMu.Lock()
	delete(s.sorted, categoryID)
	s.cacheMu.Unlock()
}
