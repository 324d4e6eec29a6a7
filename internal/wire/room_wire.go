package wire

import (
	"hotel-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoom(r chi.Router, roomHandler *adaptor.RoomHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/rooms/available", roomHandler.GetAvailableRooms)
	r.Get("/api/rooms/{id}", roomHandler.GetRoom)
	r.Get("/api/rooms/{id}/availability", roomHandler.CheckAvailability)
	r.Post("/api/pricing/quote", roomHandler.Quote)
}

// wirePayment mounts the payment subsystem callbacks. These are reachable on
// the internal network only; the ingress does not route /internal.
func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	r.Route("/internal/payments/{bookingID}", func(r chi.Router) {
		r.Post("/confirmed", paymentHandler.Confirmed)
		r.Post("/rejected", paymentHandler.Rejected)
	})
}
