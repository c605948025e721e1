package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/model"
)

// CacheEntry is one cached hourly series.
type CacheEntry struct {
	Samples   []model.IrradianceSample
	ExpiresAt time.Time
}

// SeriesCache keeps recently generated hourly series in memory so repeated
// requests for the same point and range (e.g. view then export) skip regeneration.
// Cached slices are shared; callers must not modify them.
type SeriesCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time
	done  chan struct{}
	once  sync.Once
}

// NewSeriesCache starts a cache with a background sweep every cleanupEvery.
// A non-positive cleanupEvery disables the sweep; expired entries are still never returned.
func NewSeriesCache(ttl, cleanupEvery time.Duration) *SeriesCache {
	c := &SeriesCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
		done:  make(chan struct{}),
	}
	if cleanupEvery > 0 {
		go c.cleanup(cleanupEvery)
	}
	return c
}

// Get retrieves a cached series if available and not expired
func (c *SeriesCache) Get(key string) ([]model.IrradianceSample, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Samples, true
}

// Set stores a series in the cache
func (c *SeriesCache) Set(key string, samples []model.IrradianceSample) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Samples:   samples,
		ExpiresAt: c.now().Add(c.ttl),
	}
}

func (c *SeriesCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries from the cache
func (c *SeriesCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// Close stops the background sweep.
func (c *SeriesCache) Close() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.done) })
}

func (c *SeriesCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *SeriesCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, key)
		}
	}
}

// SeriesKey creates a cache key for the hourly series of p over [start, end].
func SeriesKey(p model.GeoPoint, start, end model.Instant) string {
	keyStr := fmt.Sprintf("%.6f:%.6f:%s:%s", p.Latitude, p.Longitude, start, end)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
