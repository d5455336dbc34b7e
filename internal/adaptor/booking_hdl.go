package adaptor

import (
	"encoding/json"
	"net/http"

	"fairshare-booking/internal/dto/request"
	"fairshare-booking/internal/usecase"
	"fairshare-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), ownerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking confirmed", booking)
}

// UpdateBooking handles PUT /api/bookings/{id} (protected)
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking id", nil)
		return
	}

	var req request.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), ownerID, bookingID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "Booking updated", booking)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking id", nil)
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), ownerID, bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}

// GetOwnerBookings handles GET /api/bookings (protected)
func (h *BookingHandler) GetOwnerBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	page := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.GetOwnerBookings(r.Context(), ownerID, page)
	if err != nil {
		handleServiceError(w, h.log, err, "get owner bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByID handles GET /api/bookings/{id} (protected)
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	bookingID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking id", nil)
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), ownerID, role, bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// AdminCreateBooking handles POST /api/admin/bookings (admin only)
func (h *BookingHandler) AdminCreateBooking(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AdminCreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.AdminCreateBooking(r.Context(), adminID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "admin create booking")
		return
	}

	utils.ResponseCreated(w, "Booking confirmed", booking)
}
