package usecase

import (
	"context"

	"fairshare-booking/internal/data/repository"
	"fairshare-booking/internal/dto/request"
	"fairshare-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PropertyService interface {
	GetProperties(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.PropertyResponse], error)
	GetPropertyByID(ctx context.Context, id uuid.UUID) (*response.PropertyDetailResponse, error)
}

type propertyService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPropertyService(repo *repository.Repository, log *zap.Logger) PropertyService {
	return &propertyService{
		repo: repo,
		log:  log.With(zap.String("service", "property")),
	}
}

func (s *propertyService) GetProperties(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.PropertyResponse], error) {
	properties, err := s.repo.Property.FindAllActive(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Property.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(
		response.PropertiesToResponses(properties),
		page.Page, page.Limit(), total,
	), nil
}

func (s *propertyService) GetPropertyByID(ctx context.Context, id uuid.UUID) (*response.PropertyDetailResponse, error) {
	property, err := s.repo.Property.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil || !property.Active {
		return nil, Reject(ReasonNoAccessToProperty, "property not found or inactive")
	}

	details, err := s.repo.PropertyDetails.FindByPropertyID(ctx, id)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, Reject(ReasonNoAccessToProperty, "property %d has no configuration", property.Code)
	}

	resp := response.PropertyToDetailResponse(property, details)
	return &resp, nil
}
