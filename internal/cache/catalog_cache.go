package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
)

// ErrCacheMiss is returned when no live snapshot exists for a source.
var ErrCacheMiss = errors.New("CACHE_MISS")

// Snapshot is the immutable product list fetched for one catalog source.
type Snapshot struct {
	Source    string           `json:"source"`
	Products  []models.Product `json:"products"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

// CatalogCache stores the latest snapshot per source. The last Set wins.
type CatalogCache interface {
	Get(ctx context.Context, source string) (*Snapshot, error)
	Set(ctx context.Context, snap *Snapshot) error
	Invalidate(ctx context.Context, source string) error
}

// RedisCatalogCache keeps snapshots in Redis so every replica serves the same
// catalog.
type RedisCatalogCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewRedisCatalogCache creates a RedisCatalogCache.
func NewRedisCatalogCache(redis *RedisClient, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{redis: redis, ttl: ttl}
}

// keyBySource returns the Redis key holding the snapshot of a source.
func (c *RedisCatalogCache) keyBySource(source string) string {
	return fmt.Sprintf("catalog:snapshot:%s", source)
}

// Get retrieves the snapshot of a source.
func (c *RedisCatalogCache) Get(ctx context.Context, source string) (*Snapshot, error) {
	raw, err := c.redis.Get(ctx, c.keyBySource(source))
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog snapshot: %w", err)
	}
	return &snap, nil
}

// Set stores a snapshot with the configured TTL.
func (c *RedisCatalogCache) Set(ctx context.Context, snap *Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog snapshot: %w", err)
	}
	if err := c.redis.Set(ctx, c.keyBySource(snap.Source), raw, c.ttl); err != nil {
		return fmt.Errorf("failed to set catalog snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the snapshot of a source.
func (c *RedisCatalogCache) Invalidate(ctx context.Context, source string) error {
	return c.redis.Delete(ctx, c.keyBySource(source))
}

// MemoryCatalogCache is the in-process cache used when Redis is not configured.
type MemoryCatalogCache struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

type memoryEntry struct {
	snap      *Snapshot
	expiresAt time.Time // zero means no expiration
}

// NewMemoryCatalogCache creates a MemoryCatalogCache. A ttl of 0 keeps
// snapshots until they are replaced.
func NewMemoryCatalogCache(ttl time.Duration) *MemoryCatalogCache {
	return &MemoryCatalogCache{
		items: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get retrieves the snapshot of a source.
func (c *MemoryCatalogCache) Get(_ context.Context, source string) (*Snapshot, error) {
	c.mu.RLock()
	e, ok := c.items[source]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Only drop it if nobody replaced it meanwhile.
		if cur, ok := c.items[source]; ok && cur.snap == e.snap {
			delete(c.items, source)
		}
		c.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return e.snap, nil
}

// Set stores a snapshot.
func (c *MemoryCatalogCache) Set(_ context.Context, snap *Snapshot) error {
	e := memoryEntry{snap: snap}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.items[snap.Source] = e
	c.mu.Unlock()
	return nil
}

// Invalidate drops the snapshot of a source.
func (c *MemoryCatalogCache) Invalidate(_ context.Context, source string) error {
	c.mu.Lock()
	delete(c.items, source)
	c.mu.Unlock()
	return nil
}
