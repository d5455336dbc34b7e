package usecase

import (
	"testing"
	"time"

	"fairshare-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func summerInfo() SeasonInfo {
	return SeasonInfo{
		Window:       SeasonWindow{StartMonth: 6, StartDay: 15, EndMonth: 9, EndDay: 15},
		CheckInHour:  16,
		CheckOutHour: 10,
		Holidays: []entity.Holiday{
			{
				BaseSimple: entity.BaseSimple{ID: uuid.New()},
				Name:       "Independence Day",
				StartDate:  date(2026, 7, 3),
				EndDate:    date(2026, 7, 5),
			},
			{
				BaseSimple: entity.BaseSimple{ID: uuid.New()},
				Name:       "Christmas",
				StartDate:  date(2026, 12, 24),
				EndDate:    date(2026, 12, 26),
			},
		},
	}
}

func TestSeasonWindowContains(t *testing.T) {
	window := SeasonWindow{StartMonth: 6, StartDay: 15, EndMonth: 9, EndDay: 15}

	assert.True(t, window.Contains(date(2026, 6, 15)))
	assert.True(t, window.Contains(date(2026, 7, 20)))
	assert.True(t, window.Contains(date(2026, 9, 15)))
	assert.False(t, window.Contains(date(2026, 6, 14)))
	assert.False(t, window.Contains(date(2026, 9, 16)))
	assert.False(t, window.Contains(date(2026, 12, 25)))
}

func TestSeasonWindowWrapsNewYear(t *testing.T) {
	window := SeasonWindow{StartMonth: 12, StartDay: 15, EndMonth: 1, EndDay: 10}

	assert.True(t, window.Contains(date(2026, 12, 20)))
	assert.True(t, window.Contains(date(2027, 1, 5)))
	assert.True(t, window.Contains(date(2026, 12, 15)))
	assert.True(t, window.Contains(date(2027, 1, 10)))
	assert.False(t, window.Contains(date(2026, 3, 1)))
	assert.False(t, window.Contains(date(2026, 11, 30)))
}

func TestClassifyNight(t *testing.T) {
	info := summerInfo()
	counted := make(map[uuid.UUID]bool)

	peakHoliday := classifyNight(date(2026, 7, 4), info, counted)
	assert.True(t, peakHoliday.peak)
	assert.True(t, peakHoliday.holiday)

	offHoliday := classifyNight(date(2026, 12, 25), info, counted)
	assert.False(t, offHoliday.peak)
	assert.True(t, offHoliday.holiday)

	plainPeak := classifyNight(date(2026, 8, 1), info, counted)
	assert.True(t, plainPeak.peak)
	assert.False(t, plainPeak.holiday)

	plainOff := classifyNight(date(2026, 3, 1), info, counted)
	assert.False(t, plainOff.peak)
	assert.False(t, plainOff.holiday)

	assert.Len(t, counted, 2)
}

func TestClassifyNightCountsHolidayOnce(t *testing.T) {
	info := summerInfo()
	counted := make(map[uuid.UUID]bool)

	classifyNight(date(2026, 7, 3), info, counted)
	classifyNight(date(2026, 7, 4), info, counted)
	classifyNight(date(2026, 7, 5), info, counted)

	assert.Len(t, counted, 1)
}
