package utils

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== BOOKING REFERENCE ====================

// GenerateBookingReference builds the human-readable booking id
// FX<year><property code><sequence>, e.g. FX20260070012 for property 7,
// 12th booking of 2026. The sequence is derived from the highest reference
// already issued for the property.
func GenerateBookingReference(year, propertyCode, sequence int) string {
	return fmt.Sprintf("FX%d%03d%04d", year, propertyCode, sequence)
}

// ParseReferenceSequence extracts the trailing sequence from a booking
// reference. Returns 0 for malformed input so callers can start a fresh
// sequence.
func ParseReferenceSequence(reference string) int {
	if len(reference) < 4 {
		return 0
	}
	seq, err := strconv.Atoi(reference[len(reference)-4:])
	if err != nil {
		return 0
	}
	return seq
}
