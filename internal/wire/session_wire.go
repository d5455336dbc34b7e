package wire

import (
	"fairshare-booking/internal/adaptor"
	"fairshare-booking/internal/data/repository"
	"fairshare-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSession(
	r chi.Router,
	sessionHandler *adaptor.SessionHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Owner, log))

		// POST /api/auth/logout - Revoke the presented session
		r.Post("/api/auth/logout", sessionHandler.Logout)

		// POST /api/auth/logout-all - Revoke every session of the owner
		r.Post("/api/auth/logout-all", sessionHandler.LogoutAll)
	})
}
