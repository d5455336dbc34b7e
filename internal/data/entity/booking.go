package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type Booking struct {
	Base
	Reference  string    `db:"reference"` // FX<year><property code><sequence>
	OwnerID    uuid.UUID `db:"owner_id"`
	PropertyID uuid.UUID `db:"property_id"`

	// Dates are midnight-normalized; the clock hours are snapshots of the
	// property configuration at booking time.
	Checkin      time.Time `db:"checkin"`
	Checkout     time.Time `db:"checkout"`
	CheckInHour  int       `db:"check_in_hour"`
	CheckOutHour int       `db:"check_out_hour"`

	Guests     int    `db:"guests"`
	Pets       int    `db:"pets"`
	LastMinute bool   `db:"last_minute"`
	Notes      string `db:"notes"`

	CleaningFee decimal.Decimal `db:"cleaning_fee"`
	PetFee      decimal.Decimal `db:"pet_fee"`
	TotalFee    decimal.Decimal `db:"total_fee"`

	Status      BookingStatus `db:"status"`
	CancelledAt *time.Time    `db:"cancelled_at"`

	// Reservation id on the external platform this booking is mirrored to.
	ExternalRef string `db:"external_ref"`
}

// Nights returns the number of occupied nights; the checkout night itself is
// not occupied.
func (b *Booking) Nights() int {
	return int(b.Checkout.Sub(b.Checkin).Hours() / 24)
}

// Active reports whether the booking still occupies its dates.
func (b *Booking) Active() bool {
	return b.Status == BookingStatusConfirmed
}

// Overlaps reports whether the booking's occupied nights intersect
// [checkin, checkout).
func (b *Booking) Overlaps(checkin, checkout time.Time) bool {
	return b.Checkin.Before(checkout) && checkin.Before(b.Checkout)
}
