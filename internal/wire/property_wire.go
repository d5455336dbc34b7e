package wire

import (
	"fairshare-booking/internal/adaptor"
	"fairshare-booking/internal/data/repository"
	"fairshare-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProperty(
	r chi.Router,
	propertyHandler *adaptor.PropertyHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Owner, log))

		// GET /api/properties - Active properties in the program
		r.Get("/api/properties", propertyHandler.GetProperties)

		// GET /api/properties/{id} - Property configuration and fees
		r.Get("/api/properties/{id}", propertyHandler.GetPropertyByID)
	})
}
