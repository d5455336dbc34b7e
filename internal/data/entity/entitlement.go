package entity

import (
	"time"

	"github.com/google/uuid"
)

// BucketCounts tracks one entitlement bucket for one year. The at-rest
// invariant is Allotted == Remaining + Booked + Lost; Used and Cancelled are
// informational counters advanced by completion and cancellation.
type BucketCounts struct {
	Allotted  int
	Remaining int
	Booked    int
	Used      int
	Cancelled int
	Lost      int
}

// Debit moves n nights from remaining to booked. Returns false when the
// bucket cannot cover n; the caller must treat that as an insufficiency
// signal and leave the entry untouched.
func (b *BucketCounts) Debit(n int) bool {
	if n > b.Remaining {
		return false
	}
	b.Remaining -= n
	b.Booked += n
	return true
}

// Credit reverses a prior debit of n nights.
func (b *BucketCounts) Credit(n int) {
	b.Booked -= n
	b.Remaining += n
}

// MarkLost forfeits n booked nights. They never return to remaining.
func (b *BucketCounts) MarkLost(n int) {
	b.Booked -= n
	b.Lost += n
}

// LastMinuteCounts is the reduced bucket for last-minute stays: nothing is
// ever lost or cancelled out of it because last-minute bookings are
// non-cancellable.
type LastMinuteCounts struct {
	Allotted  int
	Remaining int
	Booked    int
	Used      int
}

func (b *LastMinuteCounts) Debit(n int) bool {
	if n > b.Remaining {
		return false
	}
	b.Remaining -= n
	b.Booked += n
	return true
}

func (b *LastMinuteCounts) Credit(n int) {
	b.Booked -= n
	b.Remaining += n
}

// Entitlement is one owner's yearly night ledger for one property. Exactly
// one row exists per (owner, property, year).
type Entitlement struct {
	Base
	OwnerID    uuid.UUID `db:"owner_id"`
	PropertyID uuid.UUID `db:"property_id"`
	Year       int       `db:"year"`

	ShareCount        int       `db:"share_count"`
	AcquisitionDate   time.Time `db:"acquisition_date"`
	MaximumStayLength int       `db:"maximum_stay_length"`

	Peak        BucketCounts
	Off         BucketCounts
	PeakHoliday BucketCounts
	OffHoliday  BucketCounts
	LastMinute  LastMinuteCounts
}
