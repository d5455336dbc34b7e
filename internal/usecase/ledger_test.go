package usecase

import (
	"testing"

	"fairshare-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntitlement(year int) *entity.Entitlement {
	return &entity.Entitlement{
		Year:              year,
		ShareCount:        1,
		AcquisitionDate:   date(2020, 1, 15),
		MaximumStayLength: 14,
		Peak:              entity.BucketCounts{Allotted: 14, Remaining: 14},
		Off:               entity.BucketCounts{Allotted: 21, Remaining: 21},
		PeakHoliday:       entity.BucketCounts{Allotted: 7, Remaining: 7},
		OffHoliday:        entity.BucketCounts{Allotted: 7, Remaining: 7},
		LastMinute:        entity.LastMinuteCounts{Allotted: 6, Remaining: 6},
	}
}

func TestDebitCreditRoundTrip(t *testing.T) {
	first := testEntitlement(2026)
	second := testEntitlement(2027)
	before1, before2 := *first, *second

	var counts NightCounts
	counts.Peak.Add(FirstYear, 3)
	counts.Off.Add(FirstYear, 2)
	counts.Off.Add(SecondYear, 4)
	counts.PeakHoliday.Add(FirstYear, 1)
	counts.PeakHoliday.Add(SecondYear, 2)
	counts.OffHoliday.Add(SecondYear, 1)

	require.Nil(t, debitRegular(first, second, counts))

	assert.Equal(t, 11, first.Peak.Remaining)
	assert.Equal(t, 3, first.Peak.Booked)
	assert.Equal(t, 19, first.Off.Remaining)
	// Both years' peak-holiday demand lands on the first year.
	assert.Equal(t, 4, first.PeakHoliday.Remaining)
	assert.Equal(t, 3, first.PeakHoliday.Booked)
	assert.Equal(t, 7, second.PeakHoliday.Remaining)
	assert.Equal(t, 17, second.Off.Remaining)
	assert.Equal(t, 6, second.OffHoliday.Remaining)

	creditRegular(first, second, counts)

	assert.Equal(t, before1, *first)
	assert.Equal(t, before2, *second)
}

func TestDebitRegularInsufficient(t *testing.T) {
	first := testEntitlement(2026)
	first.PeakHoliday.Remaining = 1

	var counts NightCounts
	counts.PeakHoliday.Add(FirstYear, 2)

	rej := debitRegular(first, nil, counts)
	require.NotNil(t, rej)
	assert.Equal(t, ReasonInsufficientPeakHol, rej.Reason)
}

func TestMarkLostForfeitsNights(t *testing.T) {
	first := testEntitlement(2026)

	var counts NightCounts
	counts.Off.Add(FirstYear, 4)

	require.Nil(t, debitRegular(first, nil, counts))
	markLostRegular(first, nil, counts)

	assert.Equal(t, 17, first.Off.Remaining)
	assert.Equal(t, 0, first.Off.Booked)
	assert.Equal(t, 4, first.Off.Lost)
	// Allotted still reconciles: remaining + booked + lost.
	assert.Equal(t, first.Off.Allotted, first.Off.Remaining+first.Off.Booked+first.Off.Lost)
}

func TestRecordCancelled(t *testing.T) {
	first := testEntitlement(2026)

	var counts NightCounts
	counts.Peak.Add(FirstYear, 2)

	require.Nil(t, debitRegular(first, nil, counts))
	creditRegular(first, nil, counts)
	recordCancelled(first, nil, counts)

	assert.Equal(t, 14, first.Peak.Remaining)
	assert.Equal(t, 2, first.Peak.Cancelled)
}

func TestLastMinuteDebitCredit(t *testing.T) {
	first := testEntitlement(2026)
	before := *first

	var counts NightCounts
	counts.LastMinute.Add(FirstYear, 2)

	require.Nil(t, debitLastMinute(first, nil, counts))
	assert.Equal(t, 4, first.LastMinute.Remaining)
	assert.Equal(t, 2, first.LastMinute.Booked)
	// Seasonal buckets untouched.
	assert.Equal(t, before.Peak, first.Peak)
	assert.Equal(t, before.Off, first.Off)

	creditLastMinute(first, nil, counts)
	assert.Equal(t, before, *first)
}

func TestLastMinuteDebitInsufficient(t *testing.T) {
	first := testEntitlement(2026)
	first.LastMinute.Remaining = 1

	var counts NightCounts
	counts.LastMinute.Add(FirstYear, 2)

	rej := debitLastMinute(first, nil, counts)
	require.NotNil(t, rej)
	assert.Equal(t, ReasonInsufficientLastMinute, rej.Reason)
}
