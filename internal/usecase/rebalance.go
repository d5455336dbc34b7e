package usecase

// Cross-year holiday rebalancing. Peak-holiday entitlement alternates
// between co-owners year over year: depending on the parity of the booking
// year relative to the owner's acquisition year, a peak-holiday debit is
// mirrored onto an adjacent entitlement year's remaining balance. The rule
// is deterministic and must be applied with the same inputs on commit and
// on reversal so the adjacent ledger returns to its prior state.

// rebalanceTargetYear returns the adjacent entitlement year that shares a
// peak-holiday debit, or 0 when no rebalance applies. currentYear is the
// evaluation clock's year and is always passed in by the caller.
func rebalanceTargetYear(bookingYear, acquisitionYear, currentYear int) int {
	parity := (bookingYear - acquisitionYear + 1) % 2
	if parity < 0 {
		parity += 2
	}

	if parity == 1 {
		// Odd parity: the following year shares the debit, evaluated at
		// booking time or up to a year before the stay.
		if currentYear == bookingYear || currentYear+1 == bookingYear {
			return bookingYear + 1
		}
		return 0
	}

	// Even parity: the preceding year shares the debit when evaluated one
	// or two years after the booking year.
	if currentYear == bookingYear+1 || currentYear == bookingYear+2 {
		return bookingYear - 1
	}
	return 0
}

// rebalanceApplies reports whether a stay participates in cross-year
// holiday sharing at all: only regular bookings with peak-holiday demand
// do.
func rebalanceApplies(counts NightCounts, lastMinute bool) bool {
	return !lastMinute && counts.PeakHoliday.Total() > 0
}
