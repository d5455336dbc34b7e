package entity

import "time"

// Holiday is a named date range (inclusive on both ends). A holiday can be
// attached to multiple properties through the property_holidays join table.
type Holiday struct {
	BaseSimple
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
}

// Contains reports whether the given date (midnight-normalized) falls inside
// the holiday range.
func (h *Holiday) Contains(date time.Time) bool {
	return !date.Before(h.StartDate) && !date.After(h.EndDate)
}
