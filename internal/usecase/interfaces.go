package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/goregistry/internal/domain"
)

var (
	// ErrCacheMiss is returned by Cache.Get when the key is absent.
	ErrCacheMiss = errors.New("cache miss")
	// ErrCacheStale is returned by Cache.SetIfGeneration when the key was
	// invalidated after the generation was read.
	ErrCacheStale = errors.New("cache entry invalidated")
)

// EntityRepository defines data access for entities.
type EntityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Entity, error)
}

// MemberRepository defines data access for members.
type MemberRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Member, error)
	ListByEntity(ctx context.Context, entityID string, limit, offset int) ([]*domain.Member, error)
}

// SecurityClassRepository defines data access for security classes.
type SecurityClassRepository interface {
	GetByID(ctx context.Context, id string) (*domain.SecurityClass, error)
}

// TransactionRepository defines data access for securities transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, transaction *domain.Transaction) error
	// ListByMember returns the transactions the member sent (from) and
	// received (to).
	ListByMember(ctx context.Context, memberID string) (from, to []*domain.Transaction, err error)
	ListByMemberTx(ctx context.Context, tx Transaction, memberID string) (from, to []*domain.Transaction, err error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations. Every key carries a generation that
// Delete advances, so a reader that loaded its value before an invalidation
// cannot write it back afterwards.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Generation returns the current generation of key, zero if never invalidated.
	Generation(ctx context.Context, key string) (int64, error)
	// SetIfGeneration stores value only while key is still at generation.
	SetIfGeneration(ctx context.Context, key string, value []byte, ttl time.Duration, generation int64) error
	Delete(ctx context.Context, keys ...string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key so a failed request can be retried.
	Release(ctx context.Context, key string) error
}

// MetricsRecorder receives business metrics from the use cases.
type MetricsRecorder interface {
	ObserveHoldings(duration time.Duration, summaries int)
	TransactionRecorded(transactionType string)
	TransactionFailed(reason string)
	CacheLookup(hit bool)
}

type nopMetrics struct{}

func (nopMetrics) ObserveHoldings(time.Duration, int) {}
func (nopMetrics) TransactionRecorded(string)         {}
func (nopMetrics) TransactionFailed(string)           {}
func (nopMetrics) CacheLookup(bool)                   {}
