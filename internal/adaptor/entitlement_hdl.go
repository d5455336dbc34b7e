package adaptor

import (
	"net/http"

	"fairshare-booking/internal/usecase"
	"fairshare-booking/pkg/utils"

	"go.uber.org/zap"
)

type EntitlementHandler struct {
	service usecase.EntitlementService
	log     *zap.Logger
}

func NewEntitlementHandler(service usecase.EntitlementService, log *zap.Logger) *EntitlementHandler {
	return &EntitlementHandler{
		service: service,
		log:     log.With(zap.String("handler", "entitlement")),
	}
}

// GetOwnerEntitlements handles GET /api/entitlements (protected)
func (h *EntitlementHandler) GetOwnerEntitlements(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	entitlements, err := h.service.GetOwnerEntitlements(r.Context(), ownerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get owner entitlements")
		return
	}

	utils.ResponseSuccess(w, "success", entitlements)
}
