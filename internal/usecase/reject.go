package usecase

import (
	"errors"
	"fmt"
)

// RejectionReason identifies why a booking operation was refused. These are
// business outcomes, not faults: they travel to the caller as structured
// results and never as generic 500s.
type RejectionReason string

const (
	ReasonCheckinInPast          RejectionReason = "CHECKIN_IN_PAST"
	ReasonCheckoutBeforeCheckin  RejectionReason = "CHECKOUT_BEFORE_CHECKIN"
	ReasonDatesOutOfRange        RejectionReason = "DATES_OUT_OF_RANGE"
	ReasonGuestOrPetLimit        RejectionReason = "GUEST_OR_PET_LIMIT_EXCEEDED"
	ReasonNoAccessToProperty     RejectionReason = "NO_ACCESS_TO_PROPERTY"
	ReasonDatesBooked            RejectionReason = "DATES_BOOKED_OR_UNAVAILABLE"
	ReasonInsufficientGap        RejectionReason = "INSUFFICIENT_GAP_BETWEEN_BOOKINGS"
	ReasonMinimumNightsNotMet    RejectionReason = "MINIMUM_NIGHTS_NOT_MET"
	ReasonMaximumStayExceeded    RejectionReason = "MAXIMUM_STAY_LENGTH_EXCEEDED"
	ReasonInsufficientPeak       RejectionReason = "INSUFFICIENT_PEAK_NIGHTS"
	ReasonInsufficientOff        RejectionReason = "INSUFFICIENT_OFF_NIGHTS"
	ReasonInsufficientPeakHol    RejectionReason = "INSUFFICIENT_PEAK_HOLIDAY_NIGHTS"
	ReasonInsufficientOffHol     RejectionReason = "INSUFFICIENT_OFF_HOLIDAY_NIGHTS"
	ReasonInsufficientLastMinute RejectionReason = "INSUFFICIENT_LAST_MINUTE_NIGHTS"
	ReasonLastMinuteMinNights    RejectionReason = "LAST_MINUTE_MIN_NIGHTS"
	ReasonLastMinuteMaxNights    RejectionReason = "LAST_MINUTE_MAX_NIGHTS"
	ReasonAlreadyCancelled       RejectionReason = "BOOKING_ALREADY_CANCELLED_OR_COMPLETED"
	ReasonCannotCancelPast       RejectionReason = "CANNOT_CANCEL_PAST_BOOKING"
	ReasonCannotCancelLastMinute RejectionReason = "CANNOT_CANCEL_LAST_MINUTE_BOOKING"
	ReasonExternalSyncFailed     RejectionReason = "EXTERNAL_SYNC_FAILED"
	ReasonBookingNotFound        RejectionReason = "BOOKING_NOT_FOUND"
)

// RejectionError carries a reason code plus a human-readable detail. It
// satisfies error so it flows through the usual return paths, and handlers
// unwrap it with AsRejection to pick a status code.
type RejectionError struct {
	Reason RejectionReason
	Detail string
}

func (e *RejectionError) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func Reject(reason RejectionReason, format string, args ...any) *RejectionError {
	return &RejectionError{
		Reason: reason,
		Detail: fmt.Sprintf(format, args...),
	}
}

// AsRejection extracts a RejectionError from an error chain.
func AsRejection(err error) (*RejectionError, bool) {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}
