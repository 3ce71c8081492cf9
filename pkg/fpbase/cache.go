package fpbase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/tlambert03/fpbase-go/internal/constants"
)

// Cache stores raw response bodies keyed by query digest. Implementations
// must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheEntry is one stored response body. A zero ExpiresAt means the
// entry never expires.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	StoredAt  time.Time `json:"storedAt"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the entry's lifetime has passed.
func (e *CacheEntry) Expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// MemoryCache is an in-process Cache backed by a map. MaxSize bounds the
// entry count, evicting the oldest entries when exceeded; zero or
// negative means unbounded, the library default, since the remote
// catalog is small and static within a session.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	maxSize int
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get implements Cache.Get.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
	}

	if entry.Expired() {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return entry, nil
}

// Set implements Cache.Set.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxSize > 0 {
		if _, exists := c.entries[key]; !exists {
			for len(c.entries) >= c.maxSize {
				c.evictOldestLocked()
			}
		}
	}

	c.entries[key] = entry

	return nil
}

// evictOldestLocked removes the entry with the earliest StoredAt. The
// caller must hold the write lock.
func (c *MemoryCache) evictOldestLocked() {
	var (
		oldestKey  string
		oldestTime time.Time
	)

	for key, entry := range c.entries {
		if oldestKey == "" || entry.StoredAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.StoredAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Delete implements Cache.Delete.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

// Clear implements Cache.Clear.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*CacheEntry)

	return nil
}

// Has implements Cache.Has.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	return ok && !entry.Expired()
}

// Cleanup removes expired entries.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if entry.Expired() {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of stored entries, including expired ones not
// yet swept.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// CacheStats tracks cache effectiveness counters.
type CacheStats struct {
	Hits    int64 `json:"hits"    yaml:"hits"`
	Misses  int64 `json:"misses"  yaml:"misses"`
	Sets    int64 `json:"sets"    yaml:"sets"`
	Deletes int64 `json:"deletes" yaml:"deletes"`
}

// GetHitRate returns the fraction of lookups served from the cache.
func (s *CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// CacheOptions holds tunables common to all cache backends.
type CacheOptions struct {
	// DefaultTTL is applied when Set is called without an explicit TTL.
	// Zero means entries never expire.
	DefaultTTL time.Duration

	// MaxEntrySize rejects bodies larger than this many bytes. Zero
	// means unlimited.
	MaxEntrySize int
}

// DefaultCacheOptions returns options suited to the small, static
// catalog this client queries: no expiry, no size limit.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{DefaultTTL: constants.DefaultCacheTTL}
}

// CachingPolicy decides which responses are stored. Transport failures
// are never stored regardless of policy.
type CachingPolicy struct {
	// CacheQueries enables storing successful query responses.
	CacheQueries bool

	// ExcludeOperations lists operation names that are never cached.
	ExcludeOperations []string
}

// DefaultCachingPolicy caches every successful query response.
func DefaultCachingPolicy() *CachingPolicy {
	return &CachingPolicy{CacheQueries: true}
}

// ShouldCache reports whether a successful response to the named
// operation should be stored.
func (p *CachingPolicy) ShouldCache(operation string) bool {
	if !p.CacheQueries {
		return false
	}

	for _, excluded := range p.ExcludeOperations {
		if excluded == operation {
			return false
		}
	}

	return true
}

// CacheManager wraps a Cache with deterministic key construction, TTL
// defaulting, a storage policy, and hit/miss statistics.
type CacheManager struct {
	cache   Cache
	options *CacheOptions
	policy  *CachingPolicy

	statsMu sync.Mutex
	stats   CacheStats
}

// NewCacheManager creates a manager over the given cache. A nil options
// uses DefaultCacheOptions; a nil cache leaves the manager operating on
// a NoOpCache.
func NewCacheManager(cache Cache, options *CacheOptions) *CacheManager {
	if cache == nil {
		cache = NewNoOpCache()
	}

	if options == nil {
		options = DefaultCacheOptions()
	}

	return &CacheManager{
		cache:   cache,
		options: options,
		policy:  DefaultCachingPolicy(),
	}
}

// SetPolicy replaces the storage policy.
func (m *CacheManager) SetPolicy(policy *CachingPolicy) {
	if policy != nil {
		m.policy = policy
	}
}

// ShouldCache reports whether the manager's policy stores responses for
// the named operation.
func (m *CacheManager) ShouldCache(operation string) bool {
	return m.policy.ShouldCache(operation)
}

// GetCacheKey returns the deterministic key for a query against an
// endpoint: the hex SHA-256 digest of the endpoint, the query text, and
// the variables serialized with sorted keys.
func (m *CacheManager) GetCacheKey(endpoint, query string, variables map[string]interface{}) string {
	if variables == nil {
		variables = map[string]interface{}{}
	}

	// encoding/json serializes map keys in sorted order, which makes the
	// serialization canonical.
	varsJSON, err := json.Marshal(variables)
	if err != nil {
		varsJSON = []byte(fmt.Sprintf("%v", variables))
	}

	digest := sha256.New()
	digest.Write([]byte(endpoint))
	digest.Write([]byte{'\n'})
	digest.Write([]byte(query))
	digest.Write([]byte{'\n'})
	digest.Write(varsJSON)

	return hex.EncodeToString(digest.Sum(nil))
}

// Get returns the stored body for key, recording a hit or miss.
func (m *CacheManager) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := m.cache.Get(ctx, key)
	if err != nil {
		m.recordMiss()

		return nil, err
	}

	m.recordHit()

	return entry.Data, nil
}

// Set stores a body under key. A non-positive TTL falls back to the
// configured default; a zero default stores the entry without expiry.
func (m *CacheManager) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if m.options.MaxEntrySize > 0 && len(data) > m.options.MaxEntrySize {
		return fmt.Errorf("%w: %d bytes", ErrCacheValueTooLarge, len(data))
	}

	if ttl <= 0 {
		ttl = m.options.DefaultTTL
	}

	entry := &CacheEntry{
		Data:     data,
		StoredAt: time.Now(),
	}
	if ttl > 0 {
		entry.ExpiresAt = entry.StoredAt.Add(ttl)
	}

	if err := m.cache.Set(ctx, key, entry); err != nil {
		return err
	}

	m.statsMu.Lock()
	m.stats.Sets++
	m.statsMu.Unlock()

	return nil
}

// Delete removes the stored body for key.
func (m *CacheManager) Delete(ctx context.Context, key string) error {
	if err := m.cache.Delete(ctx, key); err != nil {
		return err
	}

	m.statsMu.Lock()
	m.stats.Deletes++
	m.statsMu.Unlock()

	return nil
}

// Clear removes all stored bodies.
func (m *CacheManager) Clear(ctx context.Context) error {
	return m.cache.Clear(ctx)
}

// GetStats returns a snapshot of the counters.
func (m *CacheManager) GetStats() CacheStats {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()

	return m.stats
}

func (m *CacheManager) recordHit() {
	m.statsMu.Lock()
	m.stats.Hits++
	m.statsMu.Unlock()
}

func (m *CacheManager) recordMiss() {
	m.statsMu.Lock()
	m.stats.Misses++
	m.statsMu.Unlock()
}
