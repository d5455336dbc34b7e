package usecase

import (
	"testing"

	"fairshare-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestCalculateNightCountsConservation(t *testing.T) {
	info := summerInfo()

	// Jun 12 to Jun 22: three off nights then seven peak nights.
	checkin := date(2026, 6, 12)
	checkout := date(2026, 6, 22)

	counts := CalculateNightCounts(checkin, checkout, info)

	assert.Equal(t, utils.DaysBetween(checkin, checkout), counts.TotalNights())
	assert.Equal(t, 3, counts.Off.Total())
	assert.Equal(t, 7, counts.Peak.Total())
	assert.Equal(t, 0, counts.PeakHoliday.Total())
	assert.Equal(t, 0, counts.OffHoliday.Total())
	assert.Equal(t, 10, counts.LastMinute.Total())
	assert.False(t, counts.CrossesYear())
}

func TestCalculateNightCountsHolidaySplit(t *testing.T) {
	info := summerInfo()

	// Jul 2 to Jul 7: Jul 2 plain peak, Jul 3-5 peak holiday, Jul 6 plain peak.
	counts := CalculateNightCounts(date(2026, 7, 2), date(2026, 7, 7), info)

	assert.Equal(t, 2, counts.Peak.Total())
	assert.Equal(t, 3, counts.PeakHoliday.Total())
	assert.Equal(t, 5, counts.TotalNights())
	assert.Len(t, counts.CountedHolidays, 1)
}

func TestCalculateNightCountsCrossYear(t *testing.T) {
	info := summerInfo()

	// Dec 29 to Jan 3. Dec 29 and 30 stay in the first year; Dec 31 rolls
	// forward, joining Jan 1 and 2 in the second year.
	counts := CalculateNightCounts(date(2026, 12, 29), date(2027, 1, 3), info)

	assert.True(t, counts.CrossesYear())
	assert.Equal(t, 2026, counts.FirstYearNumber)
	assert.Equal(t, 2027, counts.SecondYearNumber)
	assert.Equal(t, 2, counts.Off.In(FirstYear))
	assert.Equal(t, 3, counts.Off.In(SecondYear))
	assert.Equal(t, 5, counts.TotalNights())
	assert.Equal(t, 2, counts.LastMinute.In(FirstYear))
	assert.Equal(t, 3, counts.LastMinute.In(SecondYear))
}

func TestDecember31RollsToFollowingYear(t *testing.T) {
	info := summerInfo()

	counts := CalculateNightCounts(date(2026, 12, 31), date(2027, 1, 1), info)

	assert.Equal(t, 1, counts.TotalNights())
	assert.Equal(t, 0, counts.Off.In(FirstYear))
	assert.Equal(t, 1, counts.Off.In(SecondYear))
}

func TestEntitlementYear(t *testing.T) {
	assert.Equal(t, 2026, entitlementYear(date(2026, 7, 1)))
	assert.Equal(t, 2026, entitlementYear(date(2026, 12, 30)))
	assert.Equal(t, 2027, entitlementYear(date(2026, 12, 31)))
	assert.Equal(t, 2027, entitlementYear(date(2027, 1, 1)))
}
