package usecase

import (
	"fairshare-booking/internal/data/entity"
)

// Ledger bucket operations for one stay, applied to the locked entitlement
// rows of its one or two years. Debits are the commit step: sufficiency has
// been validated beforehand, but every debit still refuses to overdraw so a
// racing request can never push a bucket negative.
//
// Peak-holiday nights are asymmetric: demand from both years is debited
// from the first entitlement year's ledger. All other buckets are strictly
// per-year.

// debitRegular moves the computed nights from remaining to booked.
// second may be nil for single-year stays.
func debitRegular(first, second *entity.Entitlement, counts NightCounts) *RejectionError {
	if !first.Peak.Debit(counts.Peak.In(FirstYear)) {
		return Reject(ReasonInsufficientPeak, "year %d", first.Year)
	}
	if !first.Off.Debit(counts.Off.In(FirstYear)) {
		return Reject(ReasonInsufficientOff, "year %d", first.Year)
	}
	if !first.OffHoliday.Debit(counts.OffHoliday.In(FirstYear)) {
		return Reject(ReasonInsufficientOffHol, "year %d", first.Year)
	}
	// Both years' peak-holiday demand is drawn from the first year.
	if !first.PeakHoliday.Debit(counts.PeakHoliday.Total()) {
		return Reject(ReasonInsufficientPeakHol, "year %d", first.Year)
	}

	if second != nil {
		if !second.Peak.Debit(counts.Peak.In(SecondYear)) {
			return Reject(ReasonInsufficientPeak, "year %d", second.Year)
		}
		if !second.Off.Debit(counts.Off.In(SecondYear)) {
			return Reject(ReasonInsufficientOff, "year %d", second.Year)
		}
		if !second.OffHoliday.Debit(counts.OffHoliday.In(SecondYear)) {
			return Reject(ReasonInsufficientOffHol, "year %d", second.Year)
		}
	}

	return nil
}

// creditRegular is the exact inverse of debitRegular.
func creditRegular(first, second *entity.Entitlement, counts NightCounts) {
	first.Peak.Credit(counts.Peak.In(FirstYear))
	first.Off.Credit(counts.Off.In(FirstYear))
	first.OffHoliday.Credit(counts.OffHoliday.In(FirstYear))
	first.PeakHoliday.Credit(counts.PeakHoliday.Total())

	if second != nil {
		second.Peak.Credit(counts.Peak.In(SecondYear))
		second.Off.Credit(counts.Off.In(SecondYear))
		second.OffHoliday.Credit(counts.OffHoliday.In(SecondYear))
	}
}

// markLostRegular forfeits the booked nights of a late cancellation: they
// leave booked and never return to remaining.
func markLostRegular(first, second *entity.Entitlement, counts NightCounts) {
	first.Peak.MarkLost(counts.Peak.In(FirstYear))
	first.Off.MarkLost(counts.Off.In(FirstYear))
	first.OffHoliday.MarkLost(counts.OffHoliday.In(FirstYear))
	first.PeakHoliday.MarkLost(counts.PeakHoliday.Total())

	if second != nil {
		second.Peak.MarkLost(counts.Peak.In(SecondYear))
		second.Off.MarkLost(counts.Off.In(SecondYear))
		second.OffHoliday.MarkLost(counts.OffHoliday.In(SecondYear))
	}
}

// recordCancelled advances the informational cancellation counters after a
// credit-back cancellation.
func recordCancelled(first, second *entity.Entitlement, counts NightCounts) {
	first.Peak.Cancelled += counts.Peak.In(FirstYear)
	first.Off.Cancelled += counts.Off.In(FirstYear)
	first.OffHoliday.Cancelled += counts.OffHoliday.In(FirstYear)
	first.PeakHoliday.Cancelled += counts.PeakHoliday.Total()

	if second != nil {
		second.Peak.Cancelled += counts.Peak.In(SecondYear)
		second.Off.Cancelled += counts.Off.In(SecondYear)
		second.OffHoliday.Cancelled += counts.OffHoliday.In(SecondYear)
	}
}

// debitLastMinute books out of the last-minute pool only. Last-minute stays
// never touch the seasonal buckets.
func debitLastMinute(first, second *entity.Entitlement, counts NightCounts) *RejectionError {
	if !first.LastMinute.Debit(counts.LastMinute.In(FirstYear)) {
		return Reject(ReasonInsufficientLastMinute, "year %d", first.Year)
	}
	if second != nil {
		if !second.LastMinute.Debit(counts.LastMinute.In(SecondYear)) {
			return Reject(ReasonInsufficientLastMinute, "year %d", second.Year)
		}
	}
	return nil
}

func creditLastMinute(first, second *entity.Entitlement, counts NightCounts) {
	first.LastMinute.Credit(counts.LastMinute.In(FirstYear))
	if second != nil {
		second.LastMinute.Credit(counts.LastMinute.In(SecondYear))
	}
}
