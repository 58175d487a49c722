package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/goregistry/internal/domain"
	"github.com/iho/goregistry/internal/usecase"
	"github.com/iho/goregistry/internal/usecase/mocks"
)

type memberFetcherStub struct {
	member *domain.Member
	err    error
}

func (s *memberFetcherStub) GetMember(ctx context.Context, id string, includeTransactions bool) (*domain.Member, error) {
	return s.member, s.err
}

func TestHoldingsUseCase_GetHoldings(t *testing.T) {
	from, to := sampleTransactions()
	fetcher := &memberFetcherStub{member: &domain.Member{
		ID:               "m-1",
		Name:             "Alice",
		TransactionsFrom: from,
		TransactionsTo:   to,
	}}

	ctrl := gomock.NewController(t)
	metrics := mocks.NewMockMetricsRecorder(ctrl)
	metrics.EXPECT().ObserveHoldings(gomock.Any(), 1)

	uc := usecase.NewHoldingsUseCase(fetcher, "NZD", metrics)

	result, err := uc.GetHoldings(context.Background(), "m-1", domain.AllSecurityClasses)
	require.NoError(t, err)
	require.Len(t, result.Holdings.Summaries, 1)

	summary := result.Holdings.Summaries[0]
	assert.Equal(t, int64(70), summary.TotalQuantity)
	assert.Equal(t, 1, summary.TrancheCount)
	assert.Equal(t, "NZD", summary.Currency)
	assert.True(t, summary.TotalAmountPaid.Equal(decimal.NewFromInt(100)))

	require.Len(t, result.Holdings.Transactions, 2)
	assert.Equal(t, domain.DirectionOut, result.Holdings.Transactions[0].Direction)
	assert.Equal(t, domain.DirectionIn, result.Holdings.Transactions[1].Direction)
}

func TestHoldingsUseCase_DefaultCurrencyAndFilter(t *testing.T) {
	from, to := sampleTransactions()
	fetcher := &memberFetcherStub{member: &domain.Member{ID: "m-1", TransactionsFrom: from, TransactionsTo: to}}

	uc := usecase.NewHoldingsUseCase(fetcher, "", nil)

	result, err := uc.GetHoldings(context.Background(), "m-1", "sc-other")
	require.NoError(t, err)
	assert.Equal(t, usecase.DefaultCurrency, result.Holdings.Summaries[0].Currency)
	assert.Empty(t, result.Holdings.Transactions)
}

func TestHoldingsUseCase_PropagatesLookupError(t *testing.T) {
	uc := usecase.NewHoldingsUseCase(&memberFetcherStub{err: domain.ErrMemberNotFound}, "AUD", nil)

	_, err := uc.GetHoldings(context.Background(), "m-1", "")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}
