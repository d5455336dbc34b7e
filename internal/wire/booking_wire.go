package wire

import (
	"fairshare-booking/internal/adaptor"
	"fairshare-booking/internal/data/repository"
	"fairshare-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Owner, log))

		// POST /api/bookings - Book a stay
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings - Booking history (own bookings)
		r.Get("/api/bookings", bookingHandler.GetOwnerBookings)

		// GET /api/bookings/{id} - Booking details
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		// PUT /api/bookings/{id} - Modify an upcoming stay
		r.Put("/api/bookings/{id}", bookingHandler.UpdateBooking)

		// PUT /api/bookings/{id}/cancel - Cancel an upcoming stay
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, repo.Owner, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/bookings - Book on behalf of an owner, displacing conflicts
		r.Post("/", bookingHandler.AdminCreateBooking)
	})
}
