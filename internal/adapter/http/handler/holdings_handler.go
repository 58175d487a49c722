package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goregistry/internal/adapter/http/dto"
	"github.com/iho/goregistry/internal/usecase"
)

// HoldingsService defines the behavior needed by HoldingsHandler.
type HoldingsService interface {
	GetHoldings(ctx context.Context, memberID, securityClassID string) (*usecase.MemberHoldings, error)
}

// HoldingsHandler serves reconciled holdings.
type HoldingsHandler struct {
	holdingsUC HoldingsService
}

// NewHoldingsHandler creates a new HoldingsHandler.
func NewHoldingsHandler(holdingsUC HoldingsService) *HoldingsHandler {
	return &HoldingsHandler{holdingsUC: holdingsUC}
}

// Get returns the member's per-class summaries and the direction-tagged
// feed, optionally filtered by securityClassId.
func (h *HoldingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")
	if memberID == "" {
		writeError(w, http.StatusBadRequest, "missing member ID")
		return
	}

	holdings, err := h.holdingsUC.GetHoldings(r.Context(), memberID, r.URL.Query().Get("securityClassId"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, dto.HoldingsFromDomain(holdings))
}
