package store

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

// Snapshot copies the state of both stores at a single point in time.
// Items are returned in global insertion order.
func Snapshot(cs *CategoryStore, is *ItemStore) types.Snapshot {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	is.mu.RLock()
	defer is.mu.RUnlock()

	snap := types.Snapshot{
		Categories: cs.listLocked(func(types.Category) bool { return true }),
		Items:      make([]types.Item, 0, len(is.byID)),
	}
	for _, it := range is.byID {
		snap.Items = append(snap.Items, *it)
	}
	slices.SortFunc(snap.Items, bySeq)
	return snap
}

func bySeq(a, b types.Item) int {
	if c := cmp.Compare(a.Seq, b.Seq); c != 0 {
		return c
	}
	return cmp.Compare(a.ItemID, b.ItemID)
}

// Restore replaces the contents of both stores with snap. The snapshot is
// validated in full first; on any error neither store changes. Items without
// an insertion sequence are numbered after the highest one present, in the
// order given, and the item store resumes numbering after the highest.
func Restore(cs *CategoryStore, is *ItemStore, snap types.Snapshot) error {
	fresh, nextItems := newCategoryStore(cs.ids), newItemStore(is.ids, nil)

	for _, c := range snap.Categories {
		if c.CategoryID == "" {
			return fmt.Errorf("%w: category %q has no id", types.ErrCorruptSnapshot, c.Name)
		}
		if _, dup := fresh.byID[c.CategoryID]; dup {
			return fmt.Errorf("%w: category id %s repeated", types.ErrCorruptSnapshot, c.CategoryID)
		}
		name, err := types.NormalizeName(c.Name)
		if err != nil {
			return fmt.Errorf("%w: category %s: %w", types.ErrCorruptSnapshot, c.CategoryID, err)
		}
		if !c.Type.Valid() {
			return fmt.Errorf("%w: category %s: %w", types.ErrCorruptSnapshot, c.CategoryID, types.ErrInvalidType)
		}
		if _, taken := fresh.byName[name]; taken {
			return fmt.Errorf("%w: category %q: %w", types.ErrCorruptSnapshot, name, types.ErrDuplicateName)
		}
		c.Name = name
		cat := c
		fresh.byID[cat.CategoryID] = &cat
		fresh.byName[name] = cat.CategoryID
		fresh.order = append(fresh.order, cat.CategoryID)
	}

	items := slices.Clone(snap.Items)
	var maxSeq uint64
	for _, it := range items {
		maxSeq = max(maxSeq, it.Seq)
	}
	for i := range items {
		if items[i].Seq == 0 {
			maxSeq++
			items[i].Seq = maxSeq
		}
	}
	slices.SortStableFunc(items, bySeq)

	for _, it := range items {
		if it.ItemID == "" {
			return fmt.Errorf("%w: item %q has no id", types.ErrCorruptSnapshot, it.Name)
		}
		if _, dup := nextItems.byID[it.ItemID]; dup {
			return fmt.Errorf("%w: item id %s repeated", types.ErrCorruptSnapshot, it.ItemID)
		}
		if _, ok := fresh.byID[it.CategoryID]; !ok {
			return fmt.Errorf("%w: item %s: category %s: %w", types.ErrCorruptSnapshot, it.ItemID, it.CategoryID, types.ErrNotFound)
		}
		name, err := types.NormalizeName(it.Name)
		if err != nil {
			return fmt.Errorf("%w: item %s: %w", types.ErrCorruptSnapshot, it.ItemID, err)
		}
		if err := types.ValidateRanking(it.Ranking); err != nil {
			return fmt.Errorf("%w: item %s: %w", types.ErrCorruptSnapshot, it.ItemID, err)
		}
		if _, taken := nextItems.names[it.CategoryID][types.ItemNameKey(name)]; taken {
			return fmt.Errorf("%w: item %q: %w", types.ErrCorruptSnapshot, name, types.ErrDuplicateName)
		}
		it.Name = name
		item := it
		nextItems.insertLocked(&item)
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	is.mu.Lock()
	defer is.mu.Unlock()

	cs.byID, cs.byName, cs.order = fresh.byID, fresh.byName, fresh.order
	is.byID, is.byCategory, is.names = nextItems.byID, nextItems.byCategory, nextItems.names
	is.seq = maxSeq
	is.cacheMu.Lock()
	is.sorted = make(map[string][]types.Item)
	is.cacheMu.Unlock()
	return nil
}
