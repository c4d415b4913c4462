package store

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

// Allocator issues identifiers. Satisfied by *ids.Allocator.
type Allocator interface {
	Next() string
}

// CategoryStore owns Category records. Categories are listed in insertion
// order and names are unique (exact, case-sensitive match).
type CategoryStore struct {
	mu     sync.RWMutex
	ids    Allocator
	items  *ItemStore
	byID   map[string]*types.Category
	order  []string
	byName map[string]string // name -> category ID
	now    func() time.Time
}

func newCategoryStore(ids Allocator) *CategoryStore {
	return &CategoryStore{
		ids:    ids,
		byID:   make(map[string]*types.Category),
		byName: make(map[string]string),
		now:    time.Now,
	}
}

// Create adds a category and returns its ID.
// Returns ErrInvalidName for an empty name, ErrInvalidType if ct is not one of
// types.CategoryTypes, and ErrDuplicateName if the name is taken.
func (s *CategoryStore) Create(name, description string, ct types.CategoryType) (string, error) {
	name, err := types.NormalizeName(name)
	if err != nil {
		return "", err
	}
	if !ct.Valid() {
		return "", fmt.Errorf("%w: %q", types.ErrInvalidType, ct)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[name]; taken {
		return "", fmt.Errorf("category %q: %w", name, types.ErrDuplicateName)
	}

	now := s.now()
	cat := &types.Category{
		CategoryID:  s.ids.Next(),
		Name:        name,
		Description: description,
		Type:        ct,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.byID[cat.CategoryID] = cat
	s.byName[name] = cat.CategoryID
	s.order = append(s.order, cat.CategoryID)
	return cat.CategoryID, nil
}

// Rename changes a category's name. Renaming to the current name succeeds.
// Returns ErrNotFound if id is absent and ErrDuplicateName if another category
// already uses newName.
func (s *CategoryStore) Rename(id, newName string) error {
	newName, err := types.NormalizeName(newName)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("category %s: %w", id, types.ErrNotFound)
	}
	if owner, taken := s.byName[newName]; taken && owner != id {
		return fmt.Errorf("category %q: %w", newName, types.ErrDuplicateName)
	}
	if cat.Name == newName {
		return nil
	}

	delete(s.byName, cat.Name)
	s.byName[newName] = id
	cat.Name = newName
	cat.UpdatedAt = s.now()
	return nil
}

// Describe replaces a category's description.
// Returns ErrNotFound if id is absent.
func (s *CategoryStore) Describe(id, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("category %s: %w", id, types.ErrNotFound)
	}
	cat.Description = description
	cat.UpdatedAt = s.now()
	return nil
}

// Delete removes a category and, before returning, every item in it.
// Returns ErrNotFound if id is absent.
func (s *CategoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("category %s: %w", id, types.ErrNotFound)
	}

	if s.items != nil {
		s.items.RemoveByCategory(id)
	}

	delete(s.byID, id)
	delete(s.byName, cat.Name)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

// Get returns a copy of the category with the given ID.
// Returns ErrNotFound if id is absent.
func (s *CategoryStore) Get(id string) (types.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cat, ok := s.byID[id]
	if !ok {
		return types.Category{}, fmt.Errorf("category %s: %w", id, types.ErrNotFound)
	}
	return *cat, nil
}

// List returns all categories in insertion order.
func (s *CategoryStore) List() []types.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(func(types.Category) bool { return true })
}

// ByType returns the categories of the given type in insertion order.
// Returns ErrInvalidType if ct is not a valid type.
func (s *CategoryStore) ByType(ct types.CategoryType) ([]types.Category, error) {
	if !ct.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidType, ct)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(func(c types.Category) bool { return c.Type == ct }), nil
}

// Len returns the number of categories.
func (s *CategoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// withCategory runs fn while holding the read lock, after checking that the
// category exists. Returns ErrNotFound without calling fn otherwise.
func (s *CategoryStore) withCategory(id string, fn func() error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("category %s: %w", id, types.ErrNotFound)
	}
	return fn()
}

func (s *CategoryStore) listLocked(keep func(types.Category) bool) []types.Category {
	out := make([]types.Category, 0, len(s.order))
	for _, id := range s.order {
		c := *s.byID[id]
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
