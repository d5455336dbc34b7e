package usecase

import (
	"context"
	"time"

	"fairshare-booking/internal/data/entity"
)

// SyncPayload is the booking data mirrored to the external reservation
// platform.
type SyncPayload struct {
	Reference    string
	PropertyCode string
	OwnerName    string
	Checkin      time.Time
	Checkout     time.Time
	CheckInHour  int
	CheckOutHour int
	Guests       int
	Pets         int
	Notes        string
}

// ReservationSync mirrors bookings to the external reservation platform.
// Calls happen inside the booking transaction: a sync failure rolls the
// whole booking back, so the ledger and the platform never diverge.
type ReservationSync interface {
	CreateReservation(ctx context.Context, payload SyncPayload) (string, error)
	UpdateReservation(ctx context.Context, externalRef string, payload SyncPayload) error
	CancelReservation(ctx context.Context, externalRef string) error
}

type NotificationKind string

const (
	NotificationBookingConfirmed NotificationKind = "booking_confirmed"
	NotificationBookingModified  NotificationKind = "booking_modified"
	NotificationBookingCancelled NotificationKind = "booking_cancelled"
)

// Notification is an owner-facing email about a booking transition. Sent
// after commit; delivery failure never fails the booking.
type Notification struct {
	Kind         NotificationKind
	To           string
	OwnerName    string
	PropertyName string
	Booking      entity.Booking
}

type NotificationSender interface {
	Send(ctx context.Context, notification Notification) error
}
