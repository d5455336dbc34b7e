package response

import (
	"time"

	"fairshare-booking/internal/data/entity"
	"fairshare-booking/pkg/utils"
)

type BookingResponse struct {
	ID           string               `json:"id"`
	Reference    string               `json:"reference"`
	OwnerID      string               `json:"owner_id"`
	PropertyID   string               `json:"property_id"`
	PropertyName string               `json:"property_name,omitempty"`
	Checkin      string               `json:"checkin"`
	Checkout     string               `json:"checkout"`
	CheckInHour  int                  `json:"check_in_hour"`
	CheckOutHour int                  `json:"check_out_hour"`
	Nights       int                  `json:"nights"`
	Guests       int                  `json:"guests"`
	Pets         int                  `json:"pets"`
	LastMinute   bool                 `json:"last_minute"`
	Notes        string               `json:"notes,omitempty"`
	CleaningFee  string               `json:"cleaning_fee"`
	PetFee       string               `json:"pet_fee"`
	TotalFee     string               `json:"total_fee"`
	Status       entity.BookingStatus `json:"status"`
	CancelledAt  *time.Time           `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID.String(),
		Reference:    b.Reference,
		OwnerID:      b.OwnerID.String(),
		PropertyID:   b.PropertyID.String(),
		Checkin:      b.Checkin.Format(utils.DateLayout),
		Checkout:     b.Checkout.Format(utils.DateLayout),
		CheckInHour:  b.CheckInHour,
		CheckOutHour: b.CheckOutHour,
		Nights:       b.Nights(),
		Guests:       b.Guests,
		Pets:         b.Pets,
		LastMinute:   b.LastMinute,
		Notes:        b.Notes,
		CleaningFee:  b.CleaningFee.StringFixed(2),
		PetFee:       b.PetFee.StringFixed(2),
		TotalFee:     b.TotalFee.StringFixed(2),
		Status:       b.Status,
		CancelledAt:  b.CancelledAt,
		CreatedAt:    b.CreatedAt,
	}
}

func BookingsToResponses(bookings []*entity.Booking) []BookingResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, BookingToResponse(b))
	}
	return responses
}

// BookingHistoryEntry is one lifecycle transition in the audit trail.
type BookingHistoryEntry struct {
	ID      string    `json:"id"`
	Action  string    `json:"action"`
	ActorID string    `json:"actor_id"`
	At      time.Time `json:"at"`
}

// BookingDetailResponse is the single-booking read model: the booking plus
// its full audit trail.
type BookingDetailResponse struct {
	BookingResponse
	History []BookingHistoryEntry `json:"history"`
}

func BookingToDetailResponse(b *entity.Booking, history []*entity.BookingHistory) BookingDetailResponse {
	entries := make([]BookingHistoryEntry, 0, len(history))
	for _, h := range history {
		entries = append(entries, BookingHistoryEntry{
			ID:      h.ID.String(),
			Action:  h.Action,
			ActorID: h.ActorID.String(),
			At:      h.CreatedAt,
		})
	}

	return BookingDetailResponse{
		BookingResponse: BookingToResponse(b),
		History:         entries,
	}
}
