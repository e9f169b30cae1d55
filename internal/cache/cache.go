package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/usemate/statsbot/internal/logger"
)

// DefaultTTL is the expiry window applied when no TTL is configured.
// Upstream sources are slow; 30 seconds is long enough to absorb a burst
// of commands and short enough that stats stay current.
const DefaultTTL = 30 * time.Second

type entry struct {
	value      any
	insertedAt time.Time
}

// RequestCache is a TTL key/value store used to deduplicate and
// rate-limit outbound calls to slow upstream sources. Entries expire
// lazily on read; there is no background eviction. The key space is a
// handful of endpoints times their variable combinations, so growth is
// bounded in practice.
//
// The cache is safe for concurrent use. Two memoized calls racing on
// the same key may both hit upstream; the TTL tolerance absorbs the
// duplicate cost, so no in-flight deduplication is attempted.
type RequestCache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// Option customizes a RequestCache.
type Option func(*RequestCache)

// WithTTL overrides the expiry window.
func WithTTL(ttl time.Duration) Option {
	return func(c *RequestCache) { c.ttl = ttl }
}

// WithClock injects a deterministic time source; used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *RequestCache) { c.now = now }
}

// New builds an empty RequestCache with DefaultTTL and the wall clock.
func New(opts ...Option) *RequestCache {
	c := &RequestCache{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key, or false when the key is absent
// or its entry has outlived the TTL window. Expired entries are never
// served.
func (c *RequestCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		logger.L().Debug().Str("key", key).Msg("cache expired")
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, overwriting any stale entry.
func (c *RequestCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, insertedAt: c.now()}
}

// Memoize returns the cached value for key when fresh; otherwise it
// invokes fetch, stores the result, and returns it. Fetch failures
// propagate unmodified and are never cached.
func Memoize[T any](ctx context.Context, c *RequestCache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		logger.L().Debug().Str("key", key).Msg("cache hit")
		return v.(T), nil
	}

	var zero T
	v, err := fetch(ctx)
	if err != nil {
		return zero, err
	}
	c.Set(key, v)
	return v, nil
}

// Key builds a deterministic cache key for a parameterized request.
// Variables are serialized canonically (json.Marshal sorts map keys), so
// equal (endpoint, variables) pairs always map to the same key and
// distinct pairs never collide.
func Key(endpoint string, variables map[string]any) string {
	if len(variables) == 0 {
		return endpoint
	}
	raw, err := json.Marshal(variables)
	if err != nil {
		// Variables are plain strings and numbers; marshal cannot
		// realistically fail, but fall back to something unique-ish.
		return fmt.Sprintf("%s-%v", endpoint, variables)
	}
	return endpoint + "-" + string(raw)
}
