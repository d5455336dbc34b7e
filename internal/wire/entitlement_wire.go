package wire

import (
	"fairshare-booking/internal/adaptor"
	"fairshare-booking/internal/data/repository"
	"fairshare-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireEntitlement(
	r chi.Router,
	entitlementHandler *adaptor.EntitlementHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Owner, log))

		// GET /api/entitlements - Night balances per property and year
		r.Get("/api/entitlements", entitlementHandler.GetOwnerEntitlements)
	})
}
