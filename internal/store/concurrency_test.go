package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

func TestConcurrentAddsAndDeletesLeaveNoDanglingItems(t *testing.T) {
	cs, is := newStores(t)

	const categories = 8
	catIDs := make([]string, categories)
	for i := range catIDs {
		catIDs[i] = mustCategory(t, cs, fmt.Sprintf("cat-%d", i), types.TypeOther)
	}

	var g errgroup.Group
	for i, cat := range catIDs {
		g.Go(func() error {
			for n := 0; n < 50; n++ {
				_, err := is.Add(cat, fmt.Sprintf("item-%d", n), n%10+1)
				if errors.Is(err, types.ErrNotFound) {
					return nil // category deleted underneath us
				}
				if err != nil {
					return err
				}
			}
			return nil
		})
		if i%2 == 0 {
			g.Go(func() error {
				return cs.Delete(cat)
			})
		}
		g.Go(func() error {
			for n := 0; n < 20; n++ {
				items, err := is.Sorted(cat)
				if errors.Is(err, types.ErrNotFound) {
					return nil
				}
				if err != nil {
					return err
				}
				for _, it := range items {
					if it.CategoryID != cat {
						return fmt.Errorf("item %s leaked into %s", it.ItemID, cat)
					}
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	snap := Snapshot(cs, is)
	live := make(map[string]bool)
	for _, c := range snap.Categories {
		live[c.CategoryID] = true
	}
	assert.Len(t, snap.Categories, categories/2)
	for _, it := range snap.Items {
		assert.True(t, live[it.CategoryID], "item %s references deleted category", it.ItemID)
	}
	for i := 1; i < categories; i += 2 {
		items, err := is.ListByCategory(catIDs[i])
		require.NoError(t, err)
		assert.Len(t, items, 50)
	}
}

func TestConcurrentReadsSeeConsistentViews(t *testing.T) {
	cs, is := newStores(t)
	cat := mustCategory(t, cs, "Top 10 Horror Movies", types.TypeMovies)
	ids := []string{
		mustItem(t, is, cat, "The Shining", 10),
		mustItem(t, is, cat, "Get Out", 9),
		mustItem(t, is, cat, "Hereditary", 8),
	}

	var g errgroup.Group
	g.Go(func() error {
		for n := 0; n < 200; n++ {
			if _, err := is.UpdateRanking(ids[n%len(ids)], n%10+1); err != nil {
				return err
			}
		}
		return nil
	})
	for r := 0; r < 4; r++ {
		g.Go(func() error {
			for n := 0; n < 200; n++ {
				items, err := is.Sorted(cat)
				if err != nil {
					return err
				}
				if len(items) != len(ids) {
					return fmt.Errorf("saw %d items, want %d", len(items), len(ids))
				}
				for i := 1; i < len(items); i++ {
					if items[i-1].Ranking < items[i].Ranking {
						return fmt.Errorf("view out of order: %v", names(items))
					}
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestCachedViewReadersDoNotWaitOnEachOther(t *testing.T) {
	cs, is := newStores(t)
	cat := mustCategory(t, cs, "Favorite Books", types.TypeBooks)
	mustItem(t, is, cat, "Dune", 9)
	mustItem(t, is, cat, "Emma", 6)
	_, err := is.Sorted(cat)
	require.NoError(t, err)

	// Another reader is inside the cache lookup.
	is.cacheMu.RLock()
	done := make(chan []types.Item)
	go func() {
		items, _ := is.Sorted(cat)
		done <- items
	}()

	select {
	case items := <-done:
		is.cacheMu.RUnlock()
		assert.Equal(t, []string{"Dune", "Emma"}, names(items))
	case <-time.After(2 * time.Second):
		is.cacheMu.RUnlock()
		<-done
		t.Fatal("Sorted blocked behind a concurrent cache reader")
	}
}
