package jsonstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddKeepsOrderAndDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(t.TempDir(), nopLogger{})

	require.NoError(t, store.Add(ctx, 10, 7))
	require.NoError(t, store.Add(ctx, 10, 7))
	require.NoError(t, store.Add(ctx, 10, 3))

	items, err := store.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 7, 3}, items)
}

func TestCartRemoveFirstOccurrence(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(t.TempDir(), nopLogger{})

	require.NoError(t, store.Add(ctx, 10, 7))
	require.NoError(t, store.Add(ctx, 10, 3))
	require.NoError(t, store.Add(ctx, 10, 7))

	removed, err := store.Remove(ctx, 10, 7)
	require.NoError(t, err)
	assert.True(t, removed)

	items, err := store.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 7}, items)
}

func TestCartRemoveMissingLeavesCartIntact(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(t.TempDir(), nopLogger{})

	require.NoError(t, store.Add(ctx, 10, 7))

	removed, err := store.Remove(ctx, 10, 99)
	require.NoError(t, err)
	assert.False(t, removed)

	items, err := store.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, items)
}

func TestCartReplace(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(t.TempDir(), nopLogger{})

	require.NoError(t, store.Add(ctx, 10, 1))
	require.NoError(t, store.Add(ctx, 10, 2))

	require.NoError(t, store.Replace(ctx, 10, []int64{5}))

	items, err := store.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, items)
}

func TestCartClearDoesNotTouchOtherUsers(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(t.TempDir(), nopLogger{})

	require.NoError(t, store.Add(ctx, 10, 1))
	require.NoError(t, store.Add(ctx, 20, 2))

	require.NoError(t, store.Clear(ctx, 10))

	items, err := store.Get(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = store.Get(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, items)
}

func TestCartGetUnknownUser(t *testing.T) {
	store := NewCartStore(t.TempDir(), nopLogger{})

	items, err := store.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, items)
}
