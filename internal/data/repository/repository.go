package repository

import (
	"fairshare-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Owner           OwnerRepository
	Session         SessionRepository
	Property        PropertyRepository
	PropertyDetails PropertyDetailsRepository
	Holiday         HolidayRepository
	Entitlement     EntitlementRepository
	Booking         BookingRepository
	BookingHistory  BookingHistoryRepository
}

func NewRepository(db database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Owner:           NewOwnerRepository(db, log),
		Session:         NewSessionRepository(db, log),
		Property:        NewPropertyRepository(db, log),
		PropertyDetails: NewPropertyDetailsRepository(db, log),
		Holiday:         NewHolidayRepository(db, log),
		Entitlement:     NewEntitlementRepository(db, log),
		Booking:         NewBookingRepository(db, log),
		BookingHistory:  NewBookingHistoryRepository(db, log),
	}
}
