package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/goregistry/internal/usecase"
)

// DefaultCachePrefix namespaces registry cache keys.
const DefaultCachePrefix = "registry:cache:"

// generationTTL bounds how long an invalidation counter outlives its last
// bump. It must exceed any cache entry TTL.
const generationTTL = 24 * time.Hour

// Cache implements usecase.Cache using Redis.
type Cache struct {
	client *redis.Client
	prefix string
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		prefix: DefaultCachePrefix,
	}
}

// Get retrieves a value by key. A missing key yields usecase.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrCacheMiss
	}
	return val, err
}

// Generation returns the invalidation counter of key.
func (c *Cache) Generation(ctx context.Context, key string) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetIfGeneration stores value with TTL unless key was invalidated since
// generation was read. The generation key is watched, so a concurrent Delete
// aborts the write with usecase.ErrCacheStale.
func (c *Cache) SetIfGeneration(ctx context.Context, key string, value []byte, ttl time.Duration, generation int64) error {
	genKey := c.generationKey(key)

	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return usecase.ErrCacheStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.prefix+key, value, ttl)
			return nil
		})
		return err
	}, genKey)

	if errors.Is(err, redis.TxFailedErr) {
		return usecase.ErrCacheStale
	}
	return err
}

// Delete removes keys and advances their generations. Missing keys are ignored.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			genKey := c.generationKey(key)
			pipe.Incr(ctx, genKey)
			pipe.Expire(ctx, genKey, generationTTL)
			pipe.Del(ctx, c.prefix+key)
		}
		return nil
	})
	return err
}

func (c *Cache) generationKey(key string) string {
	return c.prefix + key + ":gen"
}
