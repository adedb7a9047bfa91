package jsonstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/niholbooks/shop-bot/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

func testProduct(name string, price int64) *domain.Product {
	return domain.NewProduct(name, "Badiiy", price, "tavsif", "photo_id")
}

func TestCatalogNextIDEmpty(t *testing.T) {
	store := NewCatalogStore(t.TempDir(), nopLogger{})

	id, err := store.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestCatalogNextIDAfterSave(t *testing.T) {
	ctx := context.Background()
	store := NewCatalogStore(t.TempDir(), nopLogger{})

	require.NoError(t, store.Save(ctx, 1, testProduct("Birinchi", 1000)))
	require.NoError(t, store.Save(ctx, 5, testProduct("Beshinchi", 2000)))

	id, err := store.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)
}

func TestCatalogNextIDReusesDeletedMax(t *testing.T) {
	ctx := context.Background()
	store := NewCatalogStore(t.TempDir(), nopLogger{})

	for i := int64(1); i <= 3; i++ {
		require.NoError(t, store.Save(ctx, i, testProduct("Kitob", 1000)))
	}

	deleted, err := store.Delete(ctx, 3)
	require.NoError(t, err)
	require.True(t, deleted)

	// Освободившийся максимальный id выдаётся следующему товару снова.
	id, err := store.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func TestCatalogGetSaveDelete(t *testing.T) {
	ctx := context.Background()
	store := NewCatalogStore(t.TempDir(), nopLogger{})

	_, err := store.Get(ctx, 1)
	assert.True(t, errors.Is(err, e.ErrProductNotFound))

	require.NoError(t, store.Save(ctx, 1, testProduct("Sarmoyachi", 50000)))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Sarmoyachi", got.Name)
	assert.Equal(t, int64(50000), got.Price)

	deleted, err := store.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCatalogSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewCatalogStore(t.TempDir(), nopLogger{})

	require.NoError(t, store.Save(ctx, 1, testProduct("Eski", 1000)))
	require.NoError(t, store.Save(ctx, 1, testProduct("Yangi", 2000)))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Yangi", got.Name)

	products, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestCatalogCorruptFileFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte("{broken"), 0o644))

	store := NewCatalogStore(dir, nopLogger{})

	products, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	id, err := store.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestCatalogSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first := NewCatalogStore(dir, nopLogger{})
	require.NoError(t, first.Save(ctx, 7, testProduct("Kitob", 9000)))

	second := NewCatalogStore(dir, nopLogger{})
	got, err := second.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), got.Price)
}
