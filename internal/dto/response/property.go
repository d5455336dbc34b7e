package response

import (
	"fairshare-booking/internal/data/entity"
)

type PropertyResponse struct {
	ID          string `json:"id"`
	Code        int    `json:"code"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	MaxGuests   int    `json:"max_guests"`
	MaxPets     int    `json:"max_pets"`
	TotalShares int    `json:"total_shares"`
}

type PropertyDetailResponse struct {
	PropertyResponse
	PeakStartMonth int    `json:"peak_start_month"`
	PeakStartDay   int    `json:"peak_start_day"`
	PeakEndMonth   int    `json:"peak_end_month"`
	PeakEndDay     int    `json:"peak_end_day"`
	CheckInHour    int    `json:"check_in_hour"`
	CheckOutHour   int    `json:"check_out_hour"`
	CleaningFee    string `json:"cleaning_fee"`
	FeePerPet      string `json:"fee_per_pet"`
}

func PropertyToResponse(p *entity.Property) PropertyResponse {
	return PropertyResponse{
		ID:          p.ID.String(),
		Code:        p.Code,
		Name:        p.Name,
		Location:    p.Location,
		MaxGuests:   p.MaxGuests,
		MaxPets:     p.MaxPets,
		TotalShares: p.TotalShares,
	}
}

func PropertyToDetailResponse(p *entity.Property, d *entity.PropertyDetails) PropertyDetailResponse {
	return PropertyDetailResponse{
		PropertyResponse: PropertyToResponse(p),
		PeakStartMonth:   d.PeakStartMonth,
		PeakStartDay:     d.PeakStartDay,
		PeakEndMonth:     d.PeakEndMonth,
		PeakEndDay:       d.PeakEndDay,
		CheckInHour:      d.CheckInHour,
		CheckOutHour:     d.CheckOutHour,
		CleaningFee:      d.CleaningFee.StringFixed(2),
		FeePerPet:        d.FeePerPet.StringFixed(2),
	}
}

func PropertiesToResponses(properties []*entity.Property) []PropertyResponse {
	responses := make([]PropertyResponse, 0, len(properties))
	for _, p := range properties {
		responses = append(responses, PropertyToResponse(p))
	}
	return responses
}
