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

type EntitlementRepository interface {
	Find(ctx context.Context, ownerID, propertyID uuid.UUID, year int) (*entity.Entitlement, error)
	// FindForUpdate locks the ledger row for the duration of the enclosing
	// transaction. Every debit/credit path must read through this.
	FindForUpdate(ctx context.Context, ownerID, propertyID uuid.UUID, year int) (*entity.Entitlement, error)
	Update(ctx context.Context, entitlement *entity.Entitlement) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Entitlement, error)
}

type entitlementRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewEntitlementRepository(db database.Querier, log *zap.Logger) EntitlementRepository {
	return &entitlementRepository{
		db:  db,
		log: log.With(zap.String("repository", "entitlement")),
	}
}

const entitlementColumns = `
	id, owner_id, property_id, year, share_count, acquisition_date, maximum_stay_length,
	peak_allotted, peak_remaining, peak_booked, peak_used, peak_cancelled, peak_lost,
	off_allotted, off_remaining, off_booked, off_used, off_cancelled, off_lost,
	peak_holiday_allotted, peak_holiday_remaining, peak_holiday_booked,
	peak_holiday_used, peak_holiday_cancelled, peak_holiday_lost,
	off_holiday_allotted, off_holiday_remaining, off_holiday_booked,
	off_holiday_used, off_holiday_cancelled, off_holiday_lost,
	last_minute_allotted, last_minute_remaining, last_minute_booked, last_minute_used,
	created_at, updated_at`

func scanEntitlement(row pgx.Row) (*entity.Entitlement, error) {
	var e entity.Entitlement
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.PropertyID, &e.Year,
		&e.ShareCount, &e.AcquisitionDate, &e.MaximumStayLength,
		&e.Peak.Allotted, &e.Peak.Remaining, &e.Peak.Booked,
		&e.Peak.Used, &e.Peak.Cancelled, &e.Peak.Lost,
		&e.Off.Allotted, &e.Off.Remaining, &e.Off.Booked,
		&e.Off.Used, &e.Off.Cancelled, &e.Off.Lost,
		&e.PeakHoliday.Allotted, &e.PeakHoliday.Remaining, &e.PeakHoliday.Booked,
		&e.PeakHoliday.Used, &e.PeakHoliday.Cancelled, &e.PeakHoliday.Lost,
		&e.OffHoliday.Allotted, &e.OffHoliday.Remaining, &e.OffHoliday.Booked,
		&e.OffHoliday.Used, &e.OffHoliday.Cancelled, &e.OffHoliday.Lost,
		&e.LastMinute.Allotted, &e.LastMinute.Remaining, &e.LastMinute.Booked,
		&e.LastMinute.Used,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entitlementRepository) Find(ctx context.Context, ownerID, propertyID uuid.UUID, year int) (*entity.Entitlement, error) {
	query := `SELECT` + entitlementColumns + `
		FROM entitlements
		WHERE owner_id = $1 AND property_id = $2 AND year = $3 AND deleted_at IS NULL
	`

	entitlement, err := scanEntitlement(r.db.QueryRow(ctx, query, ownerID, propertyID, year))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find entitlement",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
			zap.String("property_id", propertyID.String()),
			zap.Int("year", year),
		)
		return nil, fmt.Errorf("find entitlement year %d: %w", year, err)
	}

	return entitlement, nil
}

func (r *entitlementRepository) FindForUpdate(ctx context.Context, ownerID, propertyID uuid.UUID, year int) (*entity.Entitlement, error) {
	query := `SELECT` + entitlementColumns + `
		FROM entitlements
		WHERE owner_id = $1 AND property_id = $2 AND year = $3 AND deleted_at IS NULL
		FOR UPDATE
	`

	entitlement, err := scanEntitlement(r.db.QueryRow(ctx, query, ownerID, propertyID, year))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock entitlement",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
			zap.String("property_id", propertyID.String()),
			zap.Int("year", year),
		)
		return nil, fmt.Errorf("lock entitlement year %d: %w", year, err)
	}

	return entitlement, nil
}

func (r *entitlementRepository) Update(ctx context.Context, e *entity.Entitlement) error {
	query := `
		UPDATE entitlements SET
			peak_allotted = $2, peak_remaining = $3, peak_booked = $4,
			peak_used = $5, peak_cancelled = $6, peak_lost = $7,
			off_allotted = $8, off_remaining = $9, off_booked = $10,
			off_used = $11, off_cancelled = $12, off_lost = $13,
			peak_holiday_allotted = $14, peak_holiday_remaining = $15, peak_holiday_booked = $16,
			peak_holiday_used = $17, peak_holiday_cancelled = $18, peak_holiday_lost = $19,
			off_holiday_allotted = $20, off_holiday_remaining = $21, off_holiday_booked = $22,
			off_holiday_used = $23, off_holiday_cancelled = $24, off_holiday_lost = $25,
			last_minute_allotted = $26, last_minute_remaining = $27,
			last_minute_booked = $28, last_minute_used = $29,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		e.ID,
		e.Peak.Allotted, e.Peak.Remaining, e.Peak.Booked,
		e.Peak.Used, e.Peak.Cancelled, e.Peak.Lost,
		e.Off.Allotted, e.Off.Remaining, e.Off.Booked,
		e.Off.Used, e.Off.Cancelled, e.Off.Lost,
		e.PeakHoliday.Allotted, e.PeakHoliday.Remaining, e.PeakHoliday.Booked,
		e.PeakHoliday.Used, e.PeakHoliday.Cancelled, e.PeakHoliday.Lost,
		e.OffHoliday.Allotted, e.OffHoliday.Remaining, e.OffHoliday.Booked,
		e.OffHoliday.Used, e.OffHoliday.Cancelled, e.OffHoliday.Lost,
		e.LastMinute.Allotted, e.LastMinute.Remaining,
		e.LastMinute.Booked, e.LastMinute.Used,
	)

	if err != nil {
		r.log.Error("Failed to update entitlement",
			zap.Error(err),
			zap.String("entitlement_id", e.ID.String()),
		)
		return fmt.Errorf("update entitlement %s: %w", e.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("entitlement %s not found", e.ID.String())
	}

	return nil
}

func (r *entitlementRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Entitlement, error) {
	query := `SELECT` + entitlementColumns + `
		FROM entitlements
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY property_id, year
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to list entitlements by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("list entitlements for owner %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	var entitlements []*entity.Entitlement
	for rows.Next() {
		entitlement, err := scanEntitlement(rows)
		if err != nil {
			r.log.Error("Failed to scan entitlement row", zap.Error(err))
			return nil, fmt.Errorf("scan entitlement row: %w", err)
		}
		entitlements = append(entitlements, entitlement)
	}

	return entitlements, nil
}
