package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goregistry/internal/domain"
	"github.com/iho/goregistry/internal/usecase"
)

type holdingsServiceStub struct {
	getFn func(ctx context.Context, memberID, securityClassID string) (*usecase.MemberHoldings, error)
}

func (s *holdingsServiceStub) GetHoldings(ctx context.Context, memberID, securityClassID string) (*usecase.MemberHoldings, error) {
	return s.getFn(ctx, memberID, securityClassID)
}

func TestHoldingsHandler_Get(t *testing.T) {
	class := &domain.SecurityClassRef{ID: "sc-1", Name: "Ordinary", Symbol: "ORD"}
	to := []*domain.Transaction{{
		ID: "tx-1", Quantity: 100, SecurityClass: class,
		TotalAmountPaid: decimal.NewNullDecimal(decimal.NewFromInt(100)),
		TransactionDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	from := []*domain.Transaction{{
		ID: "tx-2", Quantity: 30, SecurityClass: class,
		TransactionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}}

	var gotClass string
	handler := NewHoldingsHandler(&holdingsServiceStub{
		getFn: func(ctx context.Context, memberID, securityClassID string) (*usecase.MemberHoldings, error) {
			gotClass = securityClassID
			return &usecase.MemberHoldings{
				Member:   &domain.Member{ID: memberID, Name: "Alice"},
				Holdings: domain.ReconcileHoldings(to, from, "AUD", securityClassID),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/registry/members/m-1/holdings?securityClassId=all", nil)
	req = setChiURLParam(req, "id", "m-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "all", gotClass)

	var data struct {
		Summaries []struct {
			TotalQuantity   int64  `json:"totalQuantity"`
			TotalAmountPaid string `json:"totalAmountPaid"`
			TrancheCount    int    `json:"trancheCount"`
			Currency        string `json:"currency"`
		} `json:"summaries"`
		Transactions []struct {
			ID        string `json:"id"`
			Direction string `json:"direction"`
		} `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))

	require.Len(t, data.Summaries, 1)
	assert.Equal(t, int64(70), data.Summaries[0].TotalQuantity)
	assert.Equal(t, "100", data.Summaries[0].TotalAmountPaid)
	assert.Equal(t, 1, data.Summaries[0].TrancheCount)
	assert.Equal(t, "AUD", data.Summaries[0].Currency)

	require.Len(t, data.Transactions, 2)
	assert.Equal(t, "tx-2", data.Transactions[0].ID)
	assert.Equal(t, "OUT", data.Transactions[0].Direction)
	assert.Equal(t, "IN", data.Transactions[1].Direction)
}

func TestHoldingsHandler_Get_Error(t *testing.T) {
	handler := NewHoldingsHandler(&holdingsServiceStub{
		getFn: func(ctx context.Context, memberID, securityClassID string) (*usecase.MemberHoldings, error) {
			return nil, errors.New("redis down and db down")
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/api/registry/members/m-1/holdings", nil), "id", "m-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	resp := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "internal server error", resp.Error)
}
