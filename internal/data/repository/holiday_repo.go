package repository

import (
	"context"
	"fmt"

	"fairshare-booking/internal/data/entity"
	"fairshare-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HolidayRepository interface {
	// FindByProperty returns the holiday calendar attached to a property,
	// ordered by start date.
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]*entity.Holiday, error)
}

type holidayRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewHolidayRepository(db database.Querier, log *zap.Logger) HolidayRepository {
	return &holidayRepository{
		db:  db,
		log: log.With(zap.String("repository", "holiday")),
	}
}

func (r *holidayRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]*entity.Holiday, error) {
	query := `
		SELECT h.id, h.name, h.start_date, h.end_date, h.created_at
		FROM holidays h
		JOIN property_holidays ph ON ph.holiday_id = h.id
		WHERE ph.property_id = $1
		ORDER BY h.start_date
	`

	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		r.log.Error("Failed to find holidays by property",
			zap.Error(err),
			zap.String("property_id", propertyID.String()),
		)
		return nil, fmt.Errorf("find holidays for property %s: %w", propertyID.String(), err)
	}
	defer rows.Close()

	var holidays []*entity.Holiday
	for rows.Next() {
		var holiday entity.Holiday
		err := rows.Scan(
			&holiday.ID,
			&holiday.Name,
			&holiday.StartDate,
			&holiday.EndDate,
			&holiday.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan holiday row", zap.Error(err))
			return nil, fmt.Errorf("scan holiday row: %w", err)
		}
		holidays = append(holidays, &holiday)
	}

	return holidays, nil
}
