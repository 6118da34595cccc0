package provider

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"muxbot/internal/config"
)

const (
	// DefaultCacheSize bounds the number of cached models per factory.
	DefaultCacheSize = 64
	// DefaultCacheTTL is how long a cached model stays usable.
	DefaultCacheTTL = 30 * time.Minute
)

type cacheEntry struct {
	model     Model
	expiresAt time.Time
}

// CachingFactory wraps a Factory with an LRU+TTL cache keyed by
// provider:model. Construction failures are never cached.
type CachingFactory struct {
	mu    sync.Mutex
	inner Factory
	cache *lru.Cache[string, cacheEntry]
	ttl   time.Duration
	now   func() time.Time
}

// NewCachingFactory wraps inner with a model cache. A size <= 0 disables
// caching entirely; a ttl <= 0 disables expiration.
func NewCachingFactory(inner Factory, size int, ttl time.Duration) *CachingFactory {
	var cache *lru.Cache[string, cacheEntry]
	if size > 0 {
		if c, err := lru.New[string, cacheEntry](size); err == nil {
			cache = c
		}
	}
	return &CachingFactory{
		inner: inner,
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}
}

// CreateModel implements Factory.
func (f *CachingFactory) CreateModel(profile config.ProfileConfig) (Model, error) {
	if f.cache == nil {
		return f.inner.CreateModel(profile)
	}

	key := normalizeProviderID(profile.Provider) + ":" + profile.Model
	now := f.now()

	f.mu.Lock()
	defer f.mu.Unlock()

	if entry, ok := f.cache.Get(key); ok {
		if entry.model != nil && (entry.expiresAt.IsZero() || now.Before(entry.expiresAt)) {
			return entry.model, nil
		}
		f.cache.Remove(key)
	}

	model, err := f.inner.CreateModel(profile)
	if err != nil {
		return nil, err
	}

	var expiresAt time.Time
	if f.ttl > 0 {
		expiresAt = now.Add(f.ttl)
	}
	f.cache.Add(key, cacheEntry{model: model, expiresAt: expiresAt})

	return model, nil
}
