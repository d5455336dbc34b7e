package repository

import (
	"context"
	"fmt"
	"time"

	"fairshare-booking/internal/data/entity"
	"fairshare-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error

	// Business queries
	FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]*entity.Booking, error)
	FindActiveByOwnerAndProperty(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*entity.Booking, error)
	FindOverlapping(ctx context.Context, propertyID uuid.UUID, checkin, checkout time.Time) ([]*entity.Booking, error)
	HighestReference(ctx context.Context, propertyID uuid.UUID, year int) (string, error)
	MarkCancelled(ctx context.Context, id uuid.UUID, at time.Time) error
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `
	id, reference, owner_id, property_id, checkin, checkout,
	check_in_hour, check_out_hour, guests, pets, last_minute, notes,
	cleaning_fee, pet_fee, total_fee, status, cancelled_at, external_ref,
	created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID, &b.Reference, &b.OwnerID, &b.PropertyID, &b.Checkin, &b.Checkout,
		&b.CheckInHour, &b.CheckOutHour, &b.Guests, &b.Pets, &b.LastMinute, &b.Notes,
		&b.CleaningFee, &b.PetFee, &b.TotalFee, &b.Status, &b.CancelledAt, &b.ExternalRef,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, reference, owner_id, property_id, checkin, checkout,
		                      check_in_hour, check_out_hour, guests, pets, last_minute, notes,
		                      cleaning_fee, pet_fee, total_fee, status, cancelled_at, external_ref,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID, booking.Reference, booking.OwnerID, booking.PropertyID,
		booking.Checkin, booking.Checkout,
		booking.CheckInHour, booking.CheckOutHour,
		booking.Guests, booking.Pets, booking.LastMinute, booking.Notes,
		booking.CleaningFee, booking.PetFee, booking.TotalFee,
		booking.Status, booking.CancelledAt, booking.ExternalRef,
		booking.CreatedAt, booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("owner_id", booking.OwnerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY checkin DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find bookings for owner %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows, r.log)
}

func (r *bookingRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE owner_id = $1 AND deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return 0, fmt.Errorf("count bookings for owner %s: %w", ownerID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET checkin = $2, checkout = $3, check_in_hour = $4, check_out_hour = $5,
		    guests = $6, pets = $7, last_minute = $8, notes = $9,
		    cleaning_fee = $10, pet_fee = $11, total_fee = $12,
		    status = $13, cancelled_at = $14, external_ref = $15, updated_at = $16
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Checkin, booking.Checkout,
		booking.CheckInHour, booking.CheckOutHour,
		booking.Guests, booking.Pets, booking.LastMinute, booking.Notes,
		booking.CleaningFee, booking.PetFee, booking.TotalFee,
		booking.Status, booking.CancelledAt, booking.ExternalRef,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]*entity.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE property_id = $1 AND status = 'confirmed' AND deleted_at IS NULL
		ORDER BY checkin
	`

	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		r.log.Error("Failed to find active bookings by property",
			zap.Error(err),
			zap.String("property_id", propertyID.String()),
		)
		return nil, fmt.Errorf("find active bookings for property %s: %w", propertyID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows, r.log)
}

func (r *bookingRepository) FindActiveByOwnerAndProperty(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*entity.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE owner_id = $1 AND property_id = $2 AND status = 'confirmed' AND deleted_at IS NULL
		ORDER BY checkin
	`

	rows, err := r.db.Query(ctx, query, ownerID, propertyID)
	if err != nil {
		r.log.Error("Failed to find active bookings by owner and property",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
			zap.String("property_id", propertyID.String()),
		)
		return nil, fmt.Errorf("find active bookings for owner %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows, r.log)
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, propertyID uuid.UUID, checkin, checkout time.Time) ([]*entity.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE property_id = $1 AND status = 'confirmed' AND deleted_at IS NULL
		  AND checkin < $3 AND checkout > $2
		ORDER BY checkin
	`

	rows, err := r.db.Query(ctx, query, propertyID, checkin, checkout)
	if err != nil {
		r.log.Error("Failed to find overlapping bookings",
			zap.Error(err),
			zap.String("property_id", propertyID.String()),
		)
		return nil, fmt.Errorf("find overlapping bookings for property %s: %w", propertyID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows, r.log)
}

// HighestReference returns the lexicographically highest booking reference
// issued for a property in a given year, or "" when none exists. References
// share the FX<year><code> prefix so string ordering matches sequence
// ordering.
func (r *bookingRepository) HighestReference(ctx context.Context, propertyID uuid.UUID, year int) (string, error) {
	query := `
		SELECT reference FROM bookings
		WHERE property_id = $1 AND reference LIKE 'FX' || $2::text || '%'
		ORDER BY reference DESC
		LIMIT 1
	`

	var reference string
	err := r.db.QueryRow(ctx, query, propertyID, year).Scan(&reference)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		r.log.Error("Failed to find highest booking reference",
			zap.Error(err),
			zap.String("property_id", propertyID.String()),
			zap.Int("year", year),
		)
		return "", fmt.Errorf("find highest reference for property %s: %w", propertyID.String(), err)
	}

	return reference, nil
}

func (r *bookingRepository) MarkCancelled(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancelled_at = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed'
	`

	result, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		r.log.Error("Failed to mark booking cancelled",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("mark booking %s cancelled: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found or not active", id.String())
	}

	return nil
}

func collectBookings(rows pgx.Rows, log *zap.Logger) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}
