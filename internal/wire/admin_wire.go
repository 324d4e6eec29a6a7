package wire

import (
	"hotel-reservation/internal/adaptor"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	roomHandler *adaptor.RoomHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/dashboard", adminHandler.Dashboard)

		r.Post("/rooms", roomHandler.CreateRoom)
		r.Put("/rooms/{id}", roomHandler.UpdateRoom)
		r.Delete("/rooms/{id}", roomHandler.DeleteRoom)

		r.Route("/bookings/{id}", func(r chi.Router) {
			r.Get("/", adminHandler.GetBooking)
			r.Put("/", adminHandler.ModifyBooking)
			r.Delete("/", adminHandler.DeleteBooking)
			r.Put("/status", adminHandler.UpdateStatus)
			r.Put("/cancel", adminHandler.CancelBooking)
		})
	})
}
