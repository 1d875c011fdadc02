package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
)

func TestMemoryCatalogCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCatalogCache(time.Minute)

	_, err := c.Get(ctx, "sweets")
	assert.ErrorIs(t, err, ErrCacheMiss)

	snap := &Snapshot{Source: "sweets", Products: []models.Product{{Name: "Ladoo"}}, FetchedAt: time.Now()}
	require.NoError(t, c.Set(ctx, snap))

	got, err := c.Get(ctx, "sweets")
	require.NoError(t, err)
	assert.Same(t, snap, got)

	require.NoError(t, c.Invalidate(ctx, "sweets"))
	_, err = c.Get(ctx, "sweets")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCatalogCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	c := NewMemoryCatalogCache(5 * time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, &Snapshot{Source: "snacks"}))

	now = now.Add(4 * time.Minute)
	_, err := c.Get(ctx, "snacks")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = c.Get(ctx, "snacks")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCatalogCache_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCatalogCache(0)

	require.NoError(t, c.Set(ctx, &Snapshot{Source: "home", Products: []models.Product{{Name: "old"}}}))
	require.NoError(t, c.Set(ctx, &Snapshot{Source: "home", Products: []models.Product{{Name: "new"}}}))

	got, err := c.Get(ctx, "home")
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "new", got.Products[0].Name)
}
