package usecase

import (
	"context"
	"time"

	"github.com/iho/goregistry/internal/domain"
)

// MemberFetcher loads a member together with its transactions.
type MemberFetcher interface {
	GetMember(ctx context.Context, id string, includeTransactions bool) (*domain.Member, error)
}

// HoldingsUseCase computes a member's holdings on demand.
type HoldingsUseCase struct {
	members  MemberFetcher
	currency string
	metrics  MetricsRecorder
}

// NewHoldingsUseCase creates a new HoldingsUseCase. currency labels every
// summary it produces.
func NewHoldingsUseCase(members MemberFetcher, currency string, metrics MetricsRecorder) *HoldingsUseCase {
	if currency == "" {
		currency = DefaultCurrency
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &HoldingsUseCase{
		members:  members,
		currency: currency,
		metrics:  metrics,
	}
}

// MemberHoldings is a member with its reconciled holdings.
type MemberHoldings struct {
	Member   *domain.Member
	Holdings *domain.Holdings
}

// GetHoldings reconciles a member's transactions into per-class summaries
// and a feed filtered to securityClassID ("all" or empty for no filter).
func (uc *HoldingsUseCase) GetHoldings(ctx context.Context, memberID, securityClassID string) (*MemberHoldings, error) {
	member, err := uc.members.GetMember(ctx, memberID, true)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	holdings := domain.ReconcileHoldings(member.TransactionsTo, member.TransactionsFrom, uc.currency, securityClassID)
	uc.metrics.ObserveHoldings(time.Since(start), len(holdings.Summaries))

	return &MemberHoldings{
		Member:   member,
		Holdings: holdings,
	}, nil
}
