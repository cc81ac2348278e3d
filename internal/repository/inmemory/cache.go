package inmemory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"church-app-go/pkg/cache"
)

// Cache is the process-local stand-in for pkg/cache.Redis, used when no
// REDIS_URL is configured. Entries expire lazily on read, and writes sweep
// out expired keys at most once per sweepInterval.
type Cache struct {
	mu        sync.RWMutex
	items     map[string]cacheItem
	now       func() time.Time
	nextSweep time.Time
}

const sweepInterval = time.Minute

type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

func NewCache() *Cache {
	return &Cache{
		items: make(map[string]cacheItem),
		now:   time.Now,
	}
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.SetBytes(ctx, key, payload, ttl)
}

func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	payload, err := c.GetBytes(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, dest)
}

func (c *Cache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return c.Delete(ctx, key)
	}

	copied := append([]byte(nil), value...)
	now := c.now()
	c.mu.Lock()
	c.sweepLocked(now)
	c.items[key] = cacheItem{value: copied, expiresAt: now.Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *Cache) GetBytes(ctx context.Context, key string) ([]byte, error) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, cache.ErrCacheMiss
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[key]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, cache.ErrCacheMiss
	}

	return append([]byte(nil), item.value...), nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.items, key)
	}
	c.mu.Unlock()
	return nil
}

func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	c.mu.Unlock()
	return nil
}

// Incr bumps a fixed-window counter stored next to the cached values.
func (c *Cache) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked(now)

	item, ok := c.items[key]
	var count int64
	if ok && item.expiresAt.After(now) {
		if err := json.Unmarshal(item.value, &count); err != nil {
			count = 0
		}
	} else {
		item = cacheItem{expiresAt: now.Add(window)}
	}
	count++

	payload, err := json.Marshal(count)
	if err != nil {
		return 0, 0, err
	}
	item.value = payload
	c.items[key] = item
	return count, item.expiresAt.Sub(now), nil
}

// sweepLocked drops expired entries, such as counters for clients that never
// came back. c.mu must be held.
func (c *Cache) sweepLocked(now time.Time) {
	if now.Before(c.nextSweep) {
		return
	}
	for key, item := range c.items {
		if !item.expiresAt.After(now) {
			delete(c.items, key)
		}
	}
	c.nextSweep = now.Add(sweepInterval)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]cacheItem)
	c.mu.Unlock()
}
