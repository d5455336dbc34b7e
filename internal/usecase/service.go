package usecase

import (
	"fairshare-booking/internal/data/repository"
	"fairshare-booking/pkg/cache"

	"go.uber.org/zap"
)

type Service struct {
	Booking     BookingService
	Entitlement EntitlementService
	Property    PropertyService
	Session     SessionService
}

func NewService(
	repo *repository.Repository,
	tx repository.TxRunner,
	cache *cache.Cache,
	sync ReservationSync,
	notifier NotificationSender,
	log *zap.Logger,
) *Service {
	return &Service{
		Booking:     NewBookingService(repo, tx, cache, sync, notifier, log),
		Entitlement: NewEntitlementService(repo, log),
		Property:    NewPropertyService(repo, log),
		Session:     NewSessionService(repo, log),
	}
}
