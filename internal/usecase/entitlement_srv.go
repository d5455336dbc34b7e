package usecase

import (
	"context"

	"fairshare-booking/internal/data/repository"
	"fairshare-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EntitlementService interface {
	// GetOwnerEntitlements returns every yearly ledger the owner holds,
	// across properties and years.
	GetOwnerEntitlements(ctx context.Context, ownerID uuid.UUID) ([]response.EntitlementResponse, error)
}

type entitlementService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewEntitlementService(repo *repository.Repository, log *zap.Logger) EntitlementService {
	return &entitlementService{
		repo: repo,
		log:  log.With(zap.String("service", "entitlement")),
	}
}

func (s *entitlementService) GetOwnerEntitlements(ctx context.Context, ownerID uuid.UUID) ([]response.EntitlementResponse, error) {
	entitlements, err := s.repo.Entitlement.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := response.EntitlementsToResponses(entitlements)

	// Resolve property names once per property.
	names := make(map[uuid.UUID]string)
	for i, e := range entitlements {
		name, ok := names[e.PropertyID]
		if !ok {
			property, err := s.repo.Property.FindByID(ctx, e.PropertyID)
			if err != nil {
				return nil, err
			}
			if property != nil {
				name = property.Name
			}
			names[e.PropertyID] = name
		}
		responses[i].PropertyName = name
	}

	return responses, nil
}
