package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebalanceTargetYear(t *testing.T) {
	tests := []struct {
		name            string
		bookingYear     int
		acquisitionYear int
		currentYear     int
		want            int
	}{
		{"odd parity evaluated in booking year", 2026, 2020, 2026, 2027},
		{"odd parity evaluated year before", 2026, 2020, 2025, 2027},
		{"odd parity evaluated too early", 2026, 2020, 2024, 0},
		{"odd parity evaluated after booking year", 2026, 2020, 2027, 0},
		{"even parity one year after", 2026, 2021, 2027, 2025},
		{"even parity two years after", 2026, 2021, 2028, 2025},
		{"even parity evaluated in booking year", 2026, 2021, 2026, 0},
		{"even parity evaluated long after", 2026, 2021, 2029, 0},
		{"acquisition after booking year", 2026, 2027, 2027, 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rebalanceTargetYear(tt.bookingYear, tt.acquisitionYear, tt.currentYear)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRebalanceApplies(t *testing.T) {
	var counts NightCounts
	counts.PeakHoliday.Add(FirstYear, 2)

	assert.True(t, rebalanceApplies(counts, false))
	assert.False(t, rebalanceApplies(counts, true))
	assert.False(t, rebalanceApplies(NightCounts{}, false))
}
