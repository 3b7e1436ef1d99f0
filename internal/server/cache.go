package server

import (
	"sync"
	"time"

	"github.com/mj1618/a11ybridge/internal/render"
)

// cacheKey identifies one rendering of one variable.
type cacheKey struct {
	Name string
	Opts render.Options
}

// cacheEntry holds an encoded PNG with its timestamp.
type cacheEntry struct {
	png       []byte
	timestamp time.Time
}

// RenderCache provides a TTL-based cache for rendered PNGs. Any call that
// may change a variable invalidates it.
type RenderCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
}

// NewRenderCache creates a new cache. A ttl of 0 disables caching.
func NewRenderCache(ttl time.Duration) *RenderCache {
	return &RenderCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
	}
}

// Render returns the cached PNG for name if within TTL, otherwise calls
// draw and stores its result.
func (c *RenderCache) Render(name string, opts render.Options, draw func() ([]byte, error)) ([]byte, error) {
	if c.ttl == 0 {
		return draw()
	}
	key := cacheKey{Name: name, Opts: opts}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && time.Since(entry.timestamp) < c.ttl {
		data := entry.png
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	data, err := draw()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{png: data, timestamp: time.Now()}
	c.mu.Unlock()
	return data, nil
}

// InvalidateAll clears the entire cache.
func (c *RenderCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}
