package wire

import (
	"hotel-reservation/internal/adaptor"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/bookings - Reserve rooms for a stay
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/user/bookings - Own booking history
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
		r.Get("/api/user/bookings/{id}", bookingHandler.GetBooking)

		// PUT /api/user/bookings/{id} - Move own booking while pending payment or reserved
		r.Put("/api/user/bookings/{id}", bookingHandler.ModifyBooking)

		// POST /api/user/bookings/{id}/cancel - Cancel own booking, refund per policy
		r.Post("/api/user/bookings/{id}/cancel", bookingHandler.CancelBooking)
	})
}
