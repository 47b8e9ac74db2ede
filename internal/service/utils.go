package service

import (
	"context"
	"strings"
	"sync"
	"time"
)

const defaultChunkSize = 100

// fetchAll is a private helper that handles pagination.
// fetch returns one page and the total item count.
func fetchAll[T any](
	ctx context.Context,
	fetch func(ctx context.Context, offset, limit int) ([]T, int, error),
	chunkSize int,
) ([]T, error) {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	var all []T
	offset := 0

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		items, total, err := fetch(ctx, offset, chunkSize)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if len(all) >= total || len(items) == 0 {
			break
		}
		offset += len(items)
	}

	return all, nil
}

// cachedResult stores cached data with timestamp
type cachedResult struct {
	Items     any
	FetchedAt time.Time
}

// memoryCache is a small TTL cache shared by the catalog services.
// A zero TTL keeps entries until Invalidate.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]cachedResult
	ttl     time.Duration
	now     func() time.Time
}

func newMemoryCache(ttl time.Duration) *memoryCache {
	return &memoryCache{
		entries: make(map[string]cachedResult),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *memoryCache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(entry.FetchedAt) > c.ttl {
		return nil, false
	}
	return entry.Items, true
}

func (c *memoryCache) set(key string, items any) {
	c.mu.Lock()
	c.entries[key] = cachedResult{Items: items, FetchedAt: c.now()}
	c.mu.Unlock()
}

// invalidate drops every entry whose key starts with one of prefixes.
// No prefixes drops everything.
func (c *memoryCache) invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(prefixes) == 0 {
		c.entries = make(map[string]cachedResult)
		return
	}
	for key := range c.entries {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				delete(c.entries, key)
				break
			}
		}
	}
}
