package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/goregistry/internal/domain"
	"github.com/iho/goregistry/internal/usecase"
)

const memberColumns = `id, entity_id, name, member_type, email, address, created_at, updated_at`

// MemberRepository implements usecase.MemberRepository.
type MemberRepository struct {
	db querier
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{db: pool}
}

// GetByID retrieves a member by ID.
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	row := r.db.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)

	member, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	return member, nil
}

// GetByIDsForUpdate retrieves members by IDs with FOR UPDATE locks, in ID order.
func (r *MemberRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Member, error) {
	rows, err := pgxTx(tx).Query(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}

	return collectMembers(rows)
}

// ListByEntity lists the members of an entity by name with pagination.
func (r *MemberRepository) ListByEntity(ctx context.Context, entityID string, limit, offset int) ([]*domain.Member, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+memberColumns+` FROM members WHERE entity_id = $1 ORDER BY name, id LIMIT $2 OFFSET $3`,
		entityID, limit, offset)
	if err != nil {
		return nil, err
	}

	return collectMembers(rows)
}

func collectMembers(rows pgx.Rows) ([]*domain.Member, error) {
	defer rows.Close()

	members := make([]*domain.Member, 0)
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

func scanMember(row pgx.Row) (*domain.Member, error) {
	var (
		member     domain.Member
		memberType string
	)

	err := row.Scan(
		&member.ID,
		&member.EntityID,
		&member.Name,
		&memberType,
		&member.Email,
		&member.Address,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	member.MemberType = domain.MemberType(memberType)

	return &member, nil
}
