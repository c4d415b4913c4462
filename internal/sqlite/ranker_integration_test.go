package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rankaroo/pkg/rankaroo"
	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

func TestRankerPersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	require.NoError(t, b.Attach(ctx, cfg))
	r, err := rankaroo.Open(ctx, rankaroo.WithRepository(b))
	require.NoError(t, err)

	cat, err := r.CreateCategory("Top 10 Horror Movies", "", types.TypeMovies)
	require.NoError(t, err)
	for _, it := range []struct {
		name    string
		ranking int
	}{{"The Shining", 10}, {"Get Out", 9}, {"Hereditary", 8}, {"The Conjuring", 7}} {
		_, err := r.AddItem(cat, it.name, it.ranking)
		require.NoError(t, err)
	}
	doomed, err := r.CreateCategory("Best 90s Movies", "", types.TypeMovies)
	require.NoError(t, err)
	_, err = r.AddItem(doomed, "Fargo", 8)
	require.NoError(t, err)
	require.NoError(t, r.DeleteCategory(doomed))

	require.NoError(t, r.Close(ctx))
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(ctx, cfg))
	defer b2.Detach()
	r2, err := rankaroo.Open(ctx, rankaroo.WithRepository(b2))
	require.NoError(t, err)

	assert.Len(t, r2.ListCategories(), 1)
	sorted, err := r2.GetSortedItems(cat)
	require.NoError(t, err)
	var names []string
	for _, it := range sorted {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"The Shining", "Get Out", "Hereditary", "The Conjuring"}, names)

	_, err = r2.GetSortedItems(doomed)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRankerOnCloseStrategy(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir, SyncStrategy: types.SyncOnClose}

	b := NewBackend()
	require.NoError(t, b.Attach(ctx, cfg))
	defer b.Detach()
	r, err := rankaroo.Open(ctx, rankaroo.WithRepository(b), rankaroo.WithSyncStrategy(cfg.GetSyncStrategy()))
	require.NoError(t, err)

	_, err = r.CreateCategory("Favorite Books", "", types.TypeBooks)
	require.NoError(t, err)

	before, err := b.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, before.Categories, "nothing saved before close")

	require.NoError(t, r.Close(ctx))
	after, err := b.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, after.Categories, 1)
}
