// Package memory provides an in-memory cache repository used for tests
// and single-process development runs.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/YoungCoderX/Recipe-Rack/internal/ports/outbound"
)

// ErrKeyNotFound is returned when a key is missing or expired
var ErrKeyNotFound = errors.New("key not found")

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// CacheRepository implements the cache port with a mutex-guarded map
type CacheRepository struct {
	mu    sync.RWMutex
	items map[string]entry
}

// NewCacheRepository creates a new in-memory cache repository
func NewCacheRepository() outbound.CacheRepository {
	return &CacheRepository{items: make(map[string]entry)}
}

// Get retrieves a value by key
func (c *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || e.expired(time.Now()) {
		return nil, ErrKeyNotFound
	}

	value := make([]byte, len(e.value))
	copy(value, e.value)
	return value, nil
}

// Set stores a value with an optional TTL (zero means no expiry)
func (c *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.items[key] = e
	c.mu.Unlock()
	return nil
}

// Delete removes a key
func (c *CacheRepository) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

// Exists reports whether a key is present and unexpired
func (c *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	return ok && !e.expired(time.Now()), nil
}

// SetNX stores a value only if the key is absent, reporting whether it was set
func (c *CacheRepository) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok && !e.expired(now) {
		return false, nil
	}

	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	c.items[key] = e
	return true, nil
}
