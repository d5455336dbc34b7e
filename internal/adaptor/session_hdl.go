package adaptor

import (
	"net/http"

	"fairshare-booking/internal/usecase"
	"fairshare-booking/pkg/utils"

	"go.uber.org/zap"
)

type SessionHandler struct {
	service usecase.SessionService
	log     *zap.Logger
}

func NewSessionHandler(service usecase.SessionService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log.With(zap.String("handler", "session")),
	}
}

// Logout handles POST /api/auth/logout (protected)
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logged out", nil)
}

// LogoutAll handles POST /api/auth/logout-all (protected)
func (h *SessionHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.LogoutAll(r.Context(), ownerID); err != nil {
		handleServiceError(w, h.log, err, "logout all")
		return
	}

	utils.ResponseSuccess(w, "Logged out everywhere", nil)
}
