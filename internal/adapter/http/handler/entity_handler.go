package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goregistry/internal/adapter/http/dto"
	"github.com/iho/goregistry/internal/usecase"
)

// EntityService defines the behavior needed by EntityHandler.
type EntityService interface {
	GetEntity(ctx context.Context, id string) (*usecase.EntityView, error)
}

// EntityHandler handles entity-related HTTP requests.
type EntityHandler struct {
	entityUC EntityService
}

// NewEntityHandler creates a new EntityHandler.
func NewEntityHandler(entityUC EntityService) *EntityHandler {
	return &EntityHandler{entityUC: entityUC}
}

// Get retrieves an entity with labelled identifiers.
func (h *EntityHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.entityUC.GetEntity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, dto.EntityFromView(view))
}
