package usecase

import (
	"context"

	"github.com/iho/goregistry/internal/compliance"
	"github.com/iho/goregistry/internal/domain"
)

// EntityUseCase handles entity reads.
type EntityUseCase struct {
	entityRepo EntityRepository
}

// NewEntityUseCase creates a new EntityUseCase.
func NewEntityUseCase(entityRepo EntityRepository) *EntityUseCase {
	return &EntityUseCase{entityRepo: entityRepo}
}

// EntityView is an entity with its codes resolved to display labels.
type EntityView struct {
	Entity          *domain.Entity
	EntityTypeLabel string
	Identifiers     []IdentifierView
}

// IdentifierView is an entity identifier ready for display.
type IdentifierView struct {
	Type           string
	Label          string
	Value          string
	FormattedValue string
	Primary        bool
}

// GetEntity retrieves an entity and resolves its entity type and identifiers
// through the compliance pack of its country. Unknown codes are shown raw.
func (uc *EntityUseCase) GetEntity(ctx context.Context, id string) (*EntityView, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	entity, err := uc.entityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &EntityView{
		Entity:          entity,
		EntityTypeLabel: compliance.EntityTypeLabel(entity.Country, entity.EntityTypeCode),
		Identifiers:     make([]IdentifierView, 0, len(entity.Identifiers)),
	}

	for _, ident := range entity.Identifiers {
		view.Identifiers = append(view.Identifiers, IdentifierView{
			Type:           ident.Type,
			Label:          compliance.Label(entity.Country, ident.Type),
			Value:          ident.Value,
			FormattedValue: compliance.FormatIdentifier(entity.Country, ident.Type, ident.Value),
			Primary:        ident.Primary,
		})
	}

	return view, nil
}
