package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goregistry/internal/adapter/http/dto"
	"github.com/iho/goregistry/internal/compliance"
)

// ComplianceHandler exposes the per-country lookup tables.
type ComplianceHandler struct{}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler() *ComplianceHandler {
	return &ComplianceHandler{}
}

// Identifier describes an identifier type and, when ?value= is given,
// formats that value.
func (h *ComplianceHandler) Identifier(w http.ResponseWriter, r *http.Request) {
	country := strings.ToUpper(chi.URLParam(r, "country"))

	t, ok := compliance.Lookup(country, chi.URLParam(r, "type"))
	if !ok {
		writeError(w, http.StatusNotFound, "identifier type not found")
		return
	}

	writeData(w, http.StatusOK, dto.IdentifierTypeFromCompliance(country, t, r.URL.Query().Get("value")))
}

// EntityType describes an entity type of a country.
func (h *ComplianceHandler) EntityType(w http.ResponseWriter, r *http.Request) {
	country := strings.ToUpper(chi.URLParam(r, "country"))

	t, ok := compliance.LookupEntityType(country, chi.URLParam(r, "code"))
	if !ok {
		writeError(w, http.StatusNotFound, "entity type not found")
		return
	}

	writeData(w, http.StatusOK, dto.EntityTypeResponse{
		Country: country,
		Code:    t.Code,
		Name:    t.Name,
	})
}
