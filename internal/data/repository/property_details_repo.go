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

type PropertyDetailsRepository interface {
	FindByPropertyID(ctx context.Context, propertyID uuid.UUID) (*entity.PropertyDetails, error)
}

type propertyDetailsRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPropertyDetailsRepository(db database.Querier, log *zap.Logger) PropertyDetailsRepository {
	return &propertyDetailsRepository{
		db:  db,
		log: log.With(zap.String("repository", "property_details")),
	}
}

func (r *propertyDetailsRepository) FindByPropertyID(ctx context.Context, propertyID uuid.UUID) (*entity.PropertyDetails, error) {
	query := `
		SELECT id, property_id, peak_start_month, peak_start_day,
		       peak_end_month, peak_end_day, check_in_hour, check_out_hour,
		       cleaning_fee, fee_per_pet, created_at
		FROM property_details
		WHERE property_id = $1
	`

	var details entity.PropertyDetails
	err := r.db.QueryRow(ctx, query, propertyID).Scan(
		&details.ID,
		&details.PropertyID,
		&details.PeakStartMonth,
		&details.PeakStartDay,
		&details.PeakEndMonth,
		&details.PeakEndDay,
		&details.CheckInHour,
		&details.CheckOutHour,
		&details.CleaningFee,
		&details.FeePerPet,
		&details.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find property details",
			zap.Error(err),
			zap.String("property_id", propertyID.String()),
		)
		return nil, fmt.Errorf("find property details %s: %w", propertyID.String(), err)
	}

	return &details, nil
}
