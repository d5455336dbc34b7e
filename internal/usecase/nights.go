package usecase

import (
	"time"

	"github.com/google/uuid"
)

// YearHalf selects which entitlement year of a stay a night belongs to. A
// stay that crosses Dec 31 draws from two yearly ledgers; FirstYear is the
// check-in year's ledger, SecondYear the check-out year's.
type YearHalf int

const (
	FirstYear YearHalf = iota
	SecondYear
)

// YearSplit is one bucket's night count split across the two entitlement
// years of a stay.
type YearSplit struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

func (s *YearSplit) Add(half YearHalf, n int) {
	if half == FirstYear {
		s.First += n
		return
	}
	s.Second += n
}

func (s YearSplit) In(half YearHalf) int {
	if half == FirstYear {
		return s.First
	}
	return s.Second
}

func (s YearSplit) Total() int {
	return s.First + s.Second
}

// NightCounts is the computed night accounting for a requested stay: the
// four season/holiday buckets plus the last-minute recount, each split per
// entitlement year. Strongly typed on purpose; buckets are fields, never
// string keys.
type NightCounts struct {
	Peak        YearSplit
	Off         YearSplit
	PeakHoliday YearSplit
	OffHoliday  YearSplit

	// LastMinute is the straight per-year night total with no season or
	// holiday split; only last-minute bookings consume it.
	LastMinute YearSplit

	// Entitlement years of the stay. SecondYearNumber equals
	// FirstYearNumber when the stay does not cross Dec 31.
	FirstYearNumber  int
	SecondYearNumber int

	// Holiday ids that contributed nights to this request, each at most
	// once.
	CountedHolidays []uuid.UUID
}

// TotalNights sums the four season/holiday buckets across both years. It
// must always equal checkout minus checkin in days.
func (c NightCounts) TotalNights() int {
	return c.Peak.Total() + c.Off.Total() + c.PeakHoliday.Total() + c.OffHoliday.Total()
}

// CrossesYear reports whether the stay draws from two entitlement years.
func (c NightCounts) CrossesYear() bool {
	return c.FirstYearNumber != c.SecondYearNumber
}

// entitlementYear returns the yearly ledger a night is drawn from. A
// December 31 night rolls into the following year's ledger; every other
// night uses its own calendar year.
func entitlementYear(night time.Time) int {
	if night.Month() == time.December && night.Day() == 31 {
		return night.Year() + 1
	}
	return night.Year()
}

// CalculateNightCounts walks every night in [checkin, checkout), classifies
// it, and accumulates the per-year bucket counts. The checkout night itself
// is not occupied.
func CalculateNightCounts(checkin, checkout time.Time, info SeasonInfo) NightCounts {
	firstYear := checkin.Year()

	counts := NightCounts{
		FirstYearNumber:  firstYear,
		SecondYearNumber: checkout.Year(),
	}

	counted := make(map[uuid.UUID]bool)

	for night := checkin; night.Before(checkout); night = night.AddDate(0, 0, 1) {
		half := FirstYear
		if entitlementYear(night) != firstYear {
			half = SecondYear
		}

		class := classifyNight(night, info, counted)
		switch {
		case class.peak && class.holiday:
			counts.PeakHoliday.Add(half, 1)
		case class.holiday:
			counts.OffHoliday.Add(half, 1)
		case class.peak:
			counts.Peak.Add(half, 1)
		default:
			counts.Off.Add(half, 1)
		}

		counts.LastMinute.Add(half, 1)
	}

	for id := range counted {
		counts.CountedHolidays = append(counts.CountedHolidays, id)
	}

	return counts
}
