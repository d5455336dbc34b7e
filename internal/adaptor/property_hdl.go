package adaptor

import (
	"net/http"

	"fairshare-booking/internal/dto/request"
	"fairshare-booking/internal/usecase"
	"fairshare-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PropertyHandler struct {
	service usecase.PropertyService
	log     *zap.Logger
}

func NewPropertyHandler(service usecase.PropertyService, log *zap.Logger) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		log:     log.With(zap.String("handler", "property")),
	}
}

// GetProperties handles GET /api/properties (protected)
func (h *PropertyHandler) GetProperties(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	properties, err := h.service.GetProperties(r.Context(), page)
	if err != nil {
		handleServiceError(w, h.log, err, "get properties")
		return
	}

	utils.ResponseSuccess(w, "success", properties)
}

// GetPropertyByID handles GET /api/properties/{id} (protected)
func (h *PropertyHandler) GetPropertyByID(w http.ResponseWriter, r *http.Request) {
	propertyID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid property id", nil)
		return
	}

	property, err := h.service.GetPropertyByID(r.Context(), propertyID)
	if err != nil {
		handleServiceError(w, h.log, err, "get property")
		return
	}

	utils.ResponseSuccess(w, "success", property)
}
