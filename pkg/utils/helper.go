package utils

import (
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseDate parses a YYYY-MM-DD string into a midnight UTC time.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// NormalizeDate strips the time-of-day component, keeping the calendar date
// in UTC.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from a to b, both midnight-normalized.
func DaysBetween(a, b time.Time) int {
	return int(NormalizeDate(b).Sub(NormalizeDate(a)).Hours() / 24)
}
