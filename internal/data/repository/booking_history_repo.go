package repository

import (
	"context"
	"fmt"

	"fairshare-booking/internal/data/entity"
	"fairshare-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingHistoryRepository is append-only: no update, no delete. The audit
// trail is corrected by appending, never by editing.
type BookingHistoryRepository interface {
	Append(ctx context.Context, history *entity.BookingHistory) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingHistory, error)
}

type bookingHistoryRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingHistoryRepository(db database.Querier, log *zap.Logger) BookingHistoryRepository {
	return &bookingHistoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_history")),
	}
}

func (r *bookingHistoryRepository) Append(ctx context.Context, history *entity.BookingHistory) error {
	query := `
		INSERT INTO booking_history (id, booking_id, action, actor_id, snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		history.ID,
		history.BookingID,
		history.Action,
		history.ActorID,
		history.Snapshot,
		history.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to append booking history",
			zap.Error(err),
			zap.String("booking_id", history.BookingID.String()),
			zap.String("action", history.Action),
		)
		return fmt.Errorf("append history for booking %s: %w", history.BookingID.String(), err)
	}

	return nil
}

func (r *bookingHistoryRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingHistory, error) {
	query := `
		SELECT id, booking_id, action, actor_id, snapshot, created_at
		FROM booking_history
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking history",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find history for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.BookingHistory
	for rows.Next() {
		var entry entity.BookingHistory
		err := rows.Scan(
			&entry.ID,
			&entry.BookingID,
			&entry.Action,
			&entry.ActorID,
			&entry.Snapshot,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking history row", zap.Error(err))
			return nil, fmt.Errorf("scan booking history row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}
