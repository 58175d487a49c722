package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goregistry/internal/adapter/http/dto"
	"github.com/iho/goregistry/internal/domain"
	"github.com/iho/goregistry/internal/usecase"
)

// MemberService defines the behavior needed by MemberHandler.
type MemberService interface {
	GetMember(ctx context.Context, id string, includeTransactions bool) (*domain.Member, error)
	ListMembers(ctx context.Context, input usecase.ListMembersInput) ([]*domain.Member, error)
}

// MemberHandler handles member-related HTTP requests.
type MemberHandler struct {
	memberUC MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberUC MemberService) *MemberHandler {
	return &MemberHandler{memberUC: memberUC}
}

// Get retrieves a member. With include=transactions the response also
// carries the member's sent and received transactions.
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing member ID")
		return
	}

	include := r.URL.Query().Get("include") == "transactions"

	member, err := h.memberUC.GetMember(r.Context(), id, include)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if include {
		writeData(w, http.StatusOK, dto.MemberWithTransactionsFromDomain(member))
		return
	}

	writeData(w, http.StatusOK, dto.MemberFromDomain(member))
}

// ListByEntity lists the members of an entity.
func (h *MemberHandler) ListByEntity(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "id")

	members, err := h.memberUC.ListMembers(r.Context(), usecase.ListMembersInput{
		EntityID: entityID,
		Limit:    parseIntQuery(r, "limit", 0),
		Offset:   parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, dto.MembersFromDomain(members))
}
