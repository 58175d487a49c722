package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/goregistry/internal/domain"
)

// SecurityClassRepository implements usecase.SecurityClassRepository.
type SecurityClassRepository struct {
	db querier
}

// NewSecurityClassRepository creates a new SecurityClassRepository.
func NewSecurityClassRepository(pool *pgxpool.Pool) *SecurityClassRepository {
	return &SecurityClassRepository{db: pool}
}

// GetByID retrieves a security class by ID.
func (r *SecurityClassRepository) GetByID(ctx context.Context, id string) (*domain.SecurityClass, error) {
	query := `
		SELECT id, entity_id, name, symbol, voting_rights, is_active, created_at
		FROM security_classes
		WHERE id = $1
	`

	var class domain.SecurityClass
	err := r.db.QueryRow(ctx, query, id).Scan(
		&class.ID,
		&class.EntityID,
		&class.Name,
		&class.Symbol,
		&class.VotingRights,
		&class.IsActive,
		&class.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSecurityClassNotFound
		}
		return nil, err
	}

	return &class, nil
}
