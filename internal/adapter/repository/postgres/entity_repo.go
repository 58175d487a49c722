package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/goregistry/internal/domain"
)

// EntityRepository implements usecase.EntityRepository.
type EntityRepository struct {
	db querier
}

// NewEntityRepository creates a new EntityRepository.
func NewEntityRepository(pool *pgxpool.Pool) *EntityRepository {
	return &EntityRepository{db: pool}
}

// GetByID retrieves an entity with its identifiers, primary identifier first.
func (r *EntityRepository) GetByID(ctx context.Context, id string) (*domain.Entity, error) {
	query := `
		SELECT id, name, country, entity_type_code, created_at, updated_at
		FROM entities
		WHERE id = $1
	`

	var entity domain.Entity
	err := r.db.QueryRow(ctx, query, id).Scan(
		&entity.ID,
		&entity.Name,
		&entity.Country,
		&entity.EntityTypeCode,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntityNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT type, value, is_primary
		FROM entity_identifiers
		WHERE entity_id = $1
		ORDER BY is_primary DESC, type
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ident domain.EntityIdentifier
		if err := rows.Scan(&ident.Type, &ident.Value, &ident.Primary); err != nil {
			return nil, err
		}
		entity.Identifiers = append(entity.Identifiers, ident)
	}

	return &entity, rows.Err()
}
