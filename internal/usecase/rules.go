package usecase

import (
	"time"

	"fairshare-booking/internal/data/entity"
	"fairshare-booking/pkg/utils"

	"github.com/google/uuid"
)

const (
	// Regular stays span at least this many nights.
	minimumNights = 3

	// Last-minute stays are short by definition.
	lastMinuteMinNights = 1
	lastMinuteMaxNights = 3

	// Nights required between two stays of the same owner at the same
	// property. A gap of exactly this many nights is acceptable.
	minimumGapNights = 5

	// Check-in may fall no later than Dec 31 of the current year plus this.
	bookingHorizonYears = 2

	// Minimum lead time between submission and the check-in moment.
	minimumCheckinLead = 24 * time.Hour
)

// ValidationInput carries everything the booking rules need, loaded up
// front by the service inside the transaction. First and Second are the
// entitlement rows for the check-in and check-out years; Second is nil when
// the stay does not cross Dec 31. OwnerBookings are the requesting owner's
// confirmed stays at the property, PropertyBookings every confirmed stay at
// the property.
type ValidationInput struct {
	Now        time.Time
	Checkin    time.Time
	Checkout   time.Time
	Guests     int
	Pets       int
	LastMinute bool

	Property *entity.Property
	Info     SeasonInfo

	First  *entity.Entitlement
	Second *entity.Entitlement

	OwnerBookings    []*entity.Booking
	PropertyBookings []*entity.Booking

	// ExcludeBookingID skips one booking in gap and conflict checks so a
	// modification never collides with itself.
	ExcludeBookingID uuid.UUID

	// SkipConflict disables the property-wide conflict check for admin
	// overrides, which cancel the colliding stays instead.
	SkipConflict bool
}

// validateBookingRequest runs the full rule chain in order and returns the
// computed night counts on success. The checks are ordered cheapest first
// and the first failure wins.
func validateBookingRequest(in ValidationInput) (NightCounts, *RejectionError) {
	if rej := checkStayDates(in); rej != nil {
		return NightCounts{}, rej
	}

	if in.Guests > in.Property.MaxGuests || in.Pets > in.Property.MaxPets {
		return NightCounts{}, Reject(ReasonGuestOrPetLimit,
			"property %d allows %d guests and %d pets", in.Property.Code, in.Property.MaxGuests, in.Property.MaxPets)
	}

	if in.First == nil {
		return NightCounts{}, Reject(ReasonNoAccessToProperty,
			"no entitlement for property %d in %d", in.Property.Code, in.Checkin.Year())
	}
	if in.Checkout.Year() != in.Checkin.Year() && in.Second == nil {
		return NightCounts{}, Reject(ReasonNoAccessToProperty,
			"no entitlement for property %d in %d", in.Property.Code, in.Checkout.Year())
	}

	counts := CalculateNightCounts(in.Checkin, in.Checkout, in.Info)

	if rej := checkBookingGap(in.Checkin, in.Checkout, in.OwnerBookings, in.ExcludeBookingID); rej != nil {
		return NightCounts{}, rej
	}

	if !in.SkipConflict {
		if rej := checkDateConflict(in.Checkin, in.Checkout, in.PropertyBookings, in.ExcludeBookingID); rej != nil {
			return NightCounts{}, rej
		}
	}

	if in.LastMinute {
		if rej := checkLastMinuteStay(in, counts); rej != nil {
			return NightCounts{}, rej
		}
	} else {
		if rej := checkRegularStay(in, counts); rej != nil {
			return NightCounts{}, rej
		}
	}

	return counts, nil
}

// checkStayDates validates the calendar shape of the request. The check-in
// moment includes the property's check-in hour and must be at least 24 hours
// out from submission; a stay can check out past the two-year horizon as long
// as it checks in within it.
func checkStayDates(in ValidationInput) *RejectionError {
	checkinAt := time.Date(
		in.Checkin.Year(), in.Checkin.Month(), in.Checkin.Day(),
		in.Info.CheckInHour, 0, 0, 0, in.Checkin.Location(),
	)
	if checkinAt.Sub(in.Now) < minimumCheckinLead {
		return Reject(ReasonCheckinInPast,
			"check-in %s is less than %s away", checkinAt.Format(time.RFC3339), minimumCheckinLead)
	}

	if !in.Checkout.After(in.Checkin) {
		return Reject(ReasonCheckoutBeforeCheckin,
			"checkout %s is not after checkin %s",
			in.Checkout.Format(utils.DateLayout), in.Checkin.Format(utils.DateLayout))
	}

	if in.Checkin.Year() > in.Now.Year()+bookingHorizonYears {
		return Reject(ReasonDatesOutOfRange,
			"checkin %s is beyond Dec 31 %d",
			in.Checkin.Format(utils.DateLayout), in.Now.Year()+bookingHorizonYears)
	}

	return nil
}

// checkBookingGap enforces the minimum spacing between the owner's own
// stays at the property, symmetric on both sides of the requested dates.
func checkBookingGap(checkin, checkout time.Time, bookings []*entity.Booking, exclude uuid.UUID) *RejectionError {
	for _, b := range bookings {
		if b.ID == exclude || !b.Active() {
			continue
		}

		var gap int
		switch {
		case !checkin.Before(b.Checkout):
			gap = utils.DaysBetween(b.Checkout, checkin)
		case !checkout.After(b.Checkin):
			gap = utils.DaysBetween(checkout, b.Checkin)
		default:
			return Reject(ReasonDatesBooked, "dates overlap your booking %s", b.Reference)
		}

		if gap < minimumGapNights {
			return Reject(ReasonInsufficientGap,
				"%d nights from booking %s, minimum is %d", gap, b.Reference, minimumGapNights)
		}
	}
	return nil
}

// checkDateConflict rejects any overlap with a confirmed stay at the
// property, regardless of owner.
func checkDateConflict(checkin, checkout time.Time, bookings []*entity.Booking, exclude uuid.UUID) *RejectionError {
	for _, b := range bookings {
		if b.ID == exclude || !b.Active() {
			continue
		}
		if b.Overlaps(checkin, checkout) {
			return Reject(ReasonDatesBooked, "dates conflict with booking %s", b.Reference)
		}
	}
	return nil
}

// checkRegularStay covers length bounds and per-year bucket sufficiency for
// a regular booking. Peak-holiday demand from both halves of a cross-year
// stay is measured against the first year's balance.
func checkRegularStay(in ValidationInput, counts NightCounts) *RejectionError {
	nights := counts.TotalNights()
	if nights < minimumNights {
		return Reject(ReasonMinimumNightsNotMet, "%d nights, minimum is %d", nights, minimumNights)
	}

	maxStay := in.First.MaximumStayLength
	if in.Second != nil && in.Second.MaximumStayLength < maxStay {
		maxStay = in.Second.MaximumStayLength
	}
	if nights > maxStay {
		return Reject(ReasonMaximumStayExceeded, "%d nights, maximum is %d", nights, maxStay)
	}

	if in.First.Peak.Remaining < counts.Peak.In(FirstYear) {
		return Reject(ReasonInsufficientPeak,
			"need %d, %d remaining in %d", counts.Peak.In(FirstYear), in.First.Peak.Remaining, in.First.Year)
	}
	if in.First.Off.Remaining < counts.Off.In(FirstYear) {
		return Reject(ReasonInsufficientOff,
			"need %d, %d remaining in %d", counts.Off.In(FirstYear), in.First.Off.Remaining, in.First.Year)
	}
	if in.First.OffHoliday.Remaining < counts.OffHoliday.In(FirstYear) {
		return Reject(ReasonInsufficientOffHol,
			"need %d, %d remaining in %d", counts.OffHoliday.In(FirstYear), in.First.OffHoliday.Remaining, in.First.Year)
	}
	if in.First.PeakHoliday.Remaining < counts.PeakHoliday.Total() {
		return Reject(ReasonInsufficientPeakHol,
			"need %d, %d remaining in %d", counts.PeakHoliday.Total(), in.First.PeakHoliday.Remaining, in.First.Year)
	}

	if in.Second != nil {
		if in.Second.Peak.Remaining < counts.Peak.In(SecondYear) {
			return Reject(ReasonInsufficientPeak,
				"need %d, %d remaining in %d", counts.Peak.In(SecondYear), in.Second.Peak.Remaining, in.Second.Year)
		}
		if in.Second.Off.Remaining < counts.Off.In(SecondYear) {
			return Reject(ReasonInsufficientOff,
				"need %d, %d remaining in %d", counts.Off.In(SecondYear), in.Second.Off.Remaining, in.Second.Year)
		}
		if in.Second.OffHoliday.Remaining < counts.OffHoliday.In(SecondYear) {
			return Reject(ReasonInsufficientOffHol,
				"need %d, %d remaining in %d", counts.OffHoliday.In(SecondYear), in.Second.OffHoliday.Remaining, in.Second.Year)
		}
	}

	return nil
}

// checkLastMinuteStay covers the short-stay bounds and the last-minute pool
// balance. Seasonal buckets are not consulted.
func checkLastMinuteStay(in ValidationInput, counts NightCounts) *RejectionError {
	nights := counts.TotalNights()
	if nights < lastMinuteMinNights {
		return Reject(ReasonLastMinuteMinNights, "%d nights, minimum is %d", nights, lastMinuteMinNights)
	}
	if nights > lastMinuteMaxNights {
		return Reject(ReasonLastMinuteMaxNights, "%d nights, maximum is %d", nights, lastMinuteMaxNights)
	}

	if in.First.LastMinute.Remaining < counts.LastMinute.In(FirstYear) {
		return Reject(ReasonInsufficientLastMinute,
			"need %d, %d remaining in %d", counts.LastMinute.In(FirstYear), in.First.LastMinute.Remaining, in.First.Year)
	}
	if in.Second != nil && in.Second.LastMinute.Remaining < counts.LastMinute.In(SecondYear) {
		return Reject(ReasonInsufficientLastMinute,
			"need %d, %d remaining in %d", counts.LastMinute.In(SecondYear), in.Second.LastMinute.Remaining, in.Second.Year)
	}

	return nil
}
