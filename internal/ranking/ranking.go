// Package ranking defines the total order over the items of a category.
//
// Items sort by ranking, highest first. Items with equal rankings keep their
// insertion order: the one added earlier (lower Seq) comes first. Item ID
// breaks any remaining tie so the order is total even for hand-built inputs
// that reuse a Seq. Every function here is pure and deterministic.
package ranking

import (
	"cmp"
	"slices"

	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

// Compare orders a before b when it returns a negative number.
func Compare(a, b types.Item) int {
	if c := cmp.Compare(b.Ranking, a.Ranking); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Seq, b.Seq); c != 0 {
		return c
	}
	return cmp.Compare(a.ItemID, b.ItemID)
}

// Sort returns a sorted copy of items. The input is not modified.
func Sort(items []types.Item) []types.Item {
	out := slices.Clone(items)
	slices.SortFunc(out, Compare)
	return out
}

// Order returns the item IDs of items in ranked order.
func Order(items []types.Item) []string {
	sorted := Sort(items)
	ids := make([]string, len(sorted))
	for i, it := range sorted {
		ids[i] = it.ItemID
	}
	return ids
}

// Positions returns items in ranked order, numbered from 1.
func Positions(items []types.Item) []types.Ranked {
	sorted := Sort(items)
	out := make([]types.Ranked, len(sorted))
	for i, it := range sorted {
		out[i] = types.Ranked{Position: i + 1, Item: it}
	}
	return out
}
