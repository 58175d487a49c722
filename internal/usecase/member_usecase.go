package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/goregistry/internal/domain"
)

// MemberUseCase handles member reads.
type MemberUseCase struct {
	memberRepo      MemberRepository
	transactionRepo TransactionRepository
	cache           Cache
	cacheTTL        time.Duration
	metrics         MetricsRecorder
	logger          zerolog.Logger
}

// MemberUseCaseConfig holds the dependencies of MemberUseCase. Cache and
// Metrics are optional.
type MemberUseCaseConfig struct {
	MemberRepo      MemberRepository
	TransactionRepo TransactionRepository
	Cache           Cache
	CacheTTL        time.Duration
	Metrics         MetricsRecorder
	Logger          zerolog.Logger
}

// NewMemberUseCase creates a new MemberUseCase.
func NewMemberUseCase(cfg MemberUseCaseConfig) *MemberUseCase {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultMemberCacheTTL
	}
	if cfg.Metrics == nil {
		cfg.Metrics = nopMetrics{}
	}

	return &MemberUseCase{
		memberRepo:      cfg.MemberRepo,
		transactionRepo: cfg.TransactionRepo,
		cache:           cfg.Cache,
		cacheTTL:        cfg.CacheTTL,
		metrics:         cfg.Metrics,
		logger:          cfg.Logger,
	}
}

// GetMember retrieves a member, with its sent and received transactions when
// includeTransactions is set.
func (uc *MemberUseCase) GetMember(ctx context.Context, id string, includeTransactions bool) (*domain.Member, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	if !includeTransactions {
		return uc.memberRepo.GetByID(ctx, id)
	}

	if member, ok := uc.cached(ctx, id); ok {
		return member, nil
	}

	// The generation is taken before loading so a write that commits and
	// invalidates mid-load makes the store below a no-op.
	generation, cacheable := uc.generation(ctx, id)

	member, err := uc.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from, to, err := uc.transactionRepo.ListByMember(ctx, id)
	if err != nil {
		return nil, err
	}

	member.TransactionsFrom = from
	member.TransactionsTo = to

	if cacheable {
		uc.store(ctx, member, generation)
	}

	return member, nil
}

// ListMembersInput represents input for listing members of an entity.
type ListMembersInput struct {
	EntityID string
	Limit    int
	Offset   int
}

// ListMembers lists the members of an entity with pagination.
func (uc *MemberUseCase) ListMembers(ctx context.Context, input ListMembersInput) ([]*domain.Member, error) {
	if err := domain.ValidateID(input.EntityID); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.memberRepo.ListByEntity(ctx, input.EntityID, limit, offset)
}

func (uc *MemberUseCase) cached(ctx context.Context, id string) (*domain.Member, bool) {
	if uc.cache == nil {
		return nil, false
	}

	data, err := uc.cache.Get(ctx, memberCacheKey(id))
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Str("member_id", id).Msg("member cache read failed")
		}
		uc.metrics.CacheLookup(false)
		return nil, false
	}

	var member domain.Member
	if err := json.Unmarshal(data, &member); err != nil {
		uc.logger.Warn().Err(err).Str("member_id", id).Msg("discarding unreadable member cache entry")
		uc.metrics.CacheLookup(false)
		return nil, false
	}

	uc.metrics.CacheLookup(true)
	return &member, true
}

func (uc *MemberUseCase) generation(ctx context.Context, id string) (int64, bool) {
	if uc.cache == nil {
		return 0, false
	}

	generation, err := uc.cache.Generation(ctx, memberCacheKey(id))
	if err != nil {
		uc.logger.Warn().Err(err).Str("member_id", id).Msg("member cache generation read failed")
		return 0, false
	}
	return generation, true
}

func (uc *MemberUseCase) store(ctx context.Context, member *domain.Member, generation int64) {

	data, err := json.Marshal(member)
	if err != nil {
		uc.logger.Warn().Err(err).Str("member_id", member.ID).Msg("failed to encode member for cache")
		return
	}

	err = uc.cache.SetIfGeneration(ctx, memberCacheKey(member.ID), data, uc.cacheTTL, generation)
	switch {
	case errors.Is(err, ErrCacheStale):
		uc.logger.Debug().Str("member_id", member.ID).Msg("member changed during load, skipping cache write")
	case err != nil:
		uc.logger.Warn().Err(err).Str("member_id", member.ID).Msg("member cache write failed")
	}
}
