package entity

import "github.com/google/uuid"

const (
	HistoryActionCreated    = "Created"
	HistoryActionUpdated    = "Updated"
	HistoryActionCancelled  = "Cancelled"
	HistoryActionOverridden = "Overridden by Admin"
)

// BookingHistory is the append-only audit trail: one row per lifecycle
// transition, never updated, never deleted.
type BookingHistory struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	Action    string    `db:"action"`
	ActorID   uuid.UUID `db:"actor_id"`
	Snapshot  []byte    `db:"snapshot"` // JSON copy of the booking at transition time
}
