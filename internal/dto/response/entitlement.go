package response

import (
	"fairshare-booking/internal/data/entity"
	"fairshare-booking/pkg/utils"
)

type BucketResponse struct {
	Allotted  int `json:"allotted"`
	Remaining int `json:"remaining"`
	Booked    int `json:"booked"`
	Used      int `json:"used"`
	Cancelled int `json:"cancelled"`
	Lost      int `json:"lost"`
}

type LastMinuteBucketResponse struct {
	Allotted  int `json:"allotted"`
	Remaining int `json:"remaining"`
	Booked    int `json:"booked"`
	Used      int `json:"used"`
}

type EntitlementResponse struct {
	ID                string                   `json:"id"`
	PropertyID        string                   `json:"property_id"`
	PropertyName      string                   `json:"property_name,omitempty"`
	Year              int                      `json:"year"`
	ShareCount        int                      `json:"share_count"`
	AcquisitionDate   string                   `json:"acquisition_date"`
	MaximumStayLength int                      `json:"maximum_stay_length"`
	Peak              BucketResponse           `json:"peak"`
	Off               BucketResponse           `json:"off"`
	PeakHoliday       BucketResponse           `json:"peak_holiday"`
	OffHoliday        BucketResponse           `json:"off_holiday"`
	LastMinute        LastMinuteBucketResponse `json:"last_minute"`
}

func bucketToResponse(b entity.BucketCounts) BucketResponse {
	return BucketResponse{
		Allotted:  b.Allotted,
		Remaining: b.Remaining,
		Booked:    b.Booked,
		Used:      b.Used,
		Cancelled: b.Cancelled,
		Lost:      b.Lost,
	}
}

func EntitlementToResponse(e *entity.Entitlement) EntitlementResponse {
	return EntitlementResponse{
		ID:                e.ID.String(),
		PropertyID:        e.PropertyID.String(),
		Year:              e.Year,
		ShareCount:        e.ShareCount,
		AcquisitionDate:   e.AcquisitionDate.Format(utils.DateLayout),
		MaximumStayLength: e.MaximumStayLength,
		Peak:              bucketToResponse(e.Peak),
		Off:               bucketToResponse(e.Off),
		PeakHoliday:       bucketToResponse(e.PeakHoliday),
		OffHoliday:        bucketToResponse(e.OffHoliday),
		LastMinute: LastMinuteBucketResponse{
			Allotted:  e.LastMinute.Allotted,
			Remaining: e.LastMinute.Remaining,
			Booked:    e.LastMinute.Booked,
			Used:      e.LastMinute.Used,
		},
	}
}

func EntitlementsToResponses(entitlements []*entity.Entitlement) []EntitlementResponse {
	responses := make([]EntitlementResponse, 0, len(entitlements))
	for _, e := range entitlements {
		responses = append(responses, EntitlementToResponse(e))
	}
	return responses
}
