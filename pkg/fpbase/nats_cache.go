package fpbase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/tlambert03/fpbase-go/internal/constants"
)

// NATSKVConfig configures the NATS JetStream key-value cache backend.
type NATSKVConfig struct {
	// URL is the NATS server URL, e.g. nats://127.0.0.1:4222. Ignored
	// when Conn is provided.
	URL string

	// Bucket is the key-value bucket name. Empty selects the default
	// bucket.
	Bucket string

	// TTL is the bucket-level entry lifetime applied when the bucket is
	// created. Zero keeps entries until deleted.
	TTL time.Duration

	// Conn reuses an existing connection instead of dialing URL. The
	// caller keeps ownership of a provided connection.
	Conn *nats.Conn
}

// NATSKVCache stores response bodies in a NATS JetStream key-value
// bucket so multiple processes can share one response cache.
type NATSKVCache struct {
	conn     *nats.Conn
	kv       nats.KeyValue
	ownsConn bool
}

// NewNATSKVCache connects to NATS and binds the configured bucket,
// creating the bucket when it does not exist yet.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil {
		return nil, ErrNATSConfigRequired
	}

	conn := config.Conn
	ownsConn := false

	if conn == nil {
		if config.URL == "" {
			return nil, ErrNATSURLRequired
		}

		var err error

		conn, err = nats.Connect(config.URL, nats.Name(constants.ClientName))
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS: %w", err)
		}

		ownsConn = true
	}

	js, err := conn.JetStream()
	if err != nil {
		if ownsConn {
			conn.Close()
		}

		return nil, fmt.Errorf("opening JetStream context: %w", err)
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = constants.NATSCacheBucket
	}

	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: bucket,
			TTL:    config.TTL,
		})
	}

	if err != nil {
		if ownsConn {
			conn.Close()
		}

		return nil, fmt.Errorf("binding key-value bucket %q: %w", bucket, err)
	}

	return &NATSKVCache{conn: conn, kv: kv, ownsConn: ownsConn}, nil
}

// Get implements Cache.Get.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kvEntry, err := c.kv.Get(key)
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
		}

		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	var entry CacheEntry
	if err := json.Unmarshal(kvEntry.Value(), &entry); err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Expired() {
		_ = c.kv.Delete(key)

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return &entry, nil
}

// Set implements Cache.Set.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now()
	}

	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	if _, err := c.kv.Put(key, value); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}

	return nil
}

// Delete implements Cache.Delete.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(key)
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting cache entry: %w", err)
	}

	return nil
}

// Clear implements Cache.Clear.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing cache keys: %w", err)
	}

	for _, key := range keys {
		if err := c.kv.Delete(key); err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
			return fmt.Errorf("deleting cache entry: %w", err)
		}
	}

	return nil
}

// Has implements Cache.Has.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	entry, err := c.Get(ctx, key)

	return err == nil && entry != nil
}

// Close releases the NATS connection when the cache owns it.
func (c *NATSKVCache) Close() {
	if c.ownsConn && c.conn != nil {
		c.conn.Close()
	}
}
