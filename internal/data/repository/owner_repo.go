package repository

import (
	"context"
	"fmt"

	"fairshare-booking/internal/data/entity"
	"fairshare-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OwnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Owner, error)
}

type ownerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewOwnerRepository(db database.Querier, log *zap.Logger) OwnerRepository {
	return &ownerRepository{
		db:  db,
		log: log.With(zap.String("repository", "owner")),
	}
}

func (r *ownerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Owner, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, role, created_at, updated_at
		FROM owners
		WHERE id = $1 AND deleted_at IS NULL
	`

	var owner entity.Owner
	err := r.db.QueryRow(ctx, query, id).Scan(
		&owner.ID,
		&owner.FirstName,
		&owner.LastName,
		&owner.Email,
		&owner.Phone,
		&owner.Role,
		&owner.CreatedAt,
		&owner.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find owner by ID",
			zap.Error(err),
			zap.String("owner_id", id.String()),
		)
		return nil, fmt.Errorf("find owner by ID %s: %w", id.String(), err)
	}

	return &owner, nil
}
