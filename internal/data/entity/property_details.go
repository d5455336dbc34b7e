package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyDetails carries the booking-relevant configuration of a property:
// the peak season window (month/day, year-independent), the check-in/out
// clock hours and the fee schedule.
type PropertyDetails struct {
	BaseSimple
	PropertyID uuid.UUID `db:"property_id"`

	PeakStartMonth int `db:"peak_start_month"`
	PeakStartDay   int `db:"peak_start_day"`
	PeakEndMonth   int `db:"peak_end_month"`
	PeakEndDay     int `db:"peak_end_day"`

	CheckInHour  int `db:"check_in_hour"`  // 0-23, local property time
	CheckOutHour int `db:"check_out_hour"` // 0-23

	CleaningFee decimal.Decimal `db:"cleaning_fee"`
	FeePerPet   decimal.Decimal `db:"fee_per_pet"`
}
