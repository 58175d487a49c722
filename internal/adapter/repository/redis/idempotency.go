package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultIdempotencyPrefix namespaces idempotency keys.
const DefaultIdempotencyPrefix = "registry:idempotency:"

// processingMarker holds a key while the first request is still running.
const processingMarker = "processing"

// claimAttempts bounds SETNX retries when the key vanishes before it is read.
const claimAttempts = 2

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: DefaultIdempotencyPrefix,
	}
}

// CheckAndSet claims key for the caller. When the key is already claimed it
// returns true with the stored response, which is empty while the first
// request is still in flight. A nil response claims the key with a marker.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	var value any = processingMarker
	if response != nil {
		value = response
	}

	for attempt := 0; attempt < claimAttempts; attempt++ {
		set, err := s.client.SetNX(ctx, fullKey, value, ttl).Result()
		if err != nil {
			return false, nil, err
		}
		if set {
			return false, nil, nil
		}

		existing, err := s.client.Get(ctx, fullKey).Bytes()
		if errors.Is(err, redis.Nil) {
			// Released or expired between SETNX and GET; claim again.
			continue
		}
		if err != nil {
			return false, nil, err
		}

		if string(existing) == processingMarker {
			return true, nil, nil
		}
		return true, existing, nil
	}

	// Another request won every claim, so treat the key as in flight.
	return true, nil, nil
}

// Update replaces the marker for key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}

// Release drops a claim so the request can be retried, used when the first
// attempt failed.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
