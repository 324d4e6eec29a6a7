package adaptor

import (
	"hotel-reservation/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Admin   *AdminHandler
	Payment *PaymentHandler
	Room    *RoomHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Booking, log),
		Admin:   NewAdminHandler(service.AdminBooking, service.Dashboard, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Room:    NewRoomHandler(service.Room, log),
	}
}
