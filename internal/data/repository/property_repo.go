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

type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)
	FindAllActive(ctx context.Context, limit, offset int) ([]*entity.Property, error)
	CountActive(ctx context.Context) (int64, error)
}

type propertyRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPropertyRepository(db database.Querier, log *zap.Logger) PropertyRepository {
	return &propertyRepository{
		db:  db,
		log: log.With(zap.String("repository", "property")),
	}
}

func (r *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	query := `
		SELECT id, code, name, location, max_guests, max_pets, total_shares,
		       external_code, active, created_at, updated_at
		FROM properties
		WHERE id = $1 AND deleted_at IS NULL
	`

	var property entity.Property
	err := r.db.QueryRow(ctx, query, id).Scan(
		&property.ID,
		&property.Code,
		&property.Name,
		&property.Location,
		&property.MaxGuests,
		&property.MaxPets,
		&property.TotalShares,
		&property.ExternalCode,
		&property.Active,
		&property.CreatedAt,
		&property.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find property by ID",
			zap.Error(err),
			zap.String("property_id", id.String()),
		)
		return nil, fmt.Errorf("find property by ID %s: %w", id.String(), err)
	}

	return &property, nil
}

func (r *propertyRepository) FindAllActive(ctx context.Context, limit, offset int) ([]*entity.Property, error) {
	query := `
		SELECT id, code, name, location, max_guests, max_pets, total_shares,
		       external_code, active, created_at, updated_at
		FROM properties
		WHERE active = TRUE AND deleted_at IS NULL
		ORDER BY code
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list active properties", zap.Error(err))
		return nil, fmt.Errorf("list active properties: %w", err)
	}
	defer rows.Close()

	var properties []*entity.Property
	for rows.Next() {
		var property entity.Property
		err := rows.Scan(
			&property.ID,
			&property.Code,
			&property.Name,
			&property.Location,
			&property.MaxGuests,
			&property.MaxPets,
			&property.TotalShares,
			&property.ExternalCode,
			&property.Active,
			&property.CreatedAt,
			&property.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan property row", zap.Error(err))
			return nil, fmt.Errorf("scan property row: %w", err)
		}
		properties = append(properties, &property)
	}

	return properties, nil
}

func (r *propertyRepository) CountActive(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM properties WHERE active = TRUE AND deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count active properties", zap.Error(err))
		return 0, fmt.Errorf("count active properties: %w", err)
	}

	return count, nil
}
