package usecase

import (
	"time"

	"hotel-reservation/internal/data/repository"
	"hotel-reservation/pkg/broker"
	"hotel-reservation/pkg/database"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

// Settings carries the hotel-wide values every service reads.
type Settings struct {
	Location *time.Location
	Currency string
	Now      func() time.Time
}

// Today is the current calendar date at the hotel, as midnight UTC like
// every other stay date.
func (s Settings) Today() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := s.Now().In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NewSettings(config *utils.Config) Settings {
	return Settings{
		Location: config.Reservation.Location,
		Currency: config.Reservation.DefaultCurrency,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

type Service struct {
	Pricing      PricingService
	Inventory    InventoryService
	Booking      BookingService
	AdminBooking AdminBookingService
	Payment      PaymentService
	Invoice      InvoiceService
	Room         RoomService
	Dashboard    DashboardService
}

func NewService(repo *repository.Repository, tx database.Transactor, events broker.Publisher, config *utils.Config, log *zap.Logger) *Service {
	settings := NewSettings(config)

	pricing := NewPricingService(repo, log)
	inventory := NewInventoryService(repo, log)
	invoice := NewInvoiceService(repo, tx, events, settings, log)

	return &Service{
		Pricing:      pricing,
		Inventory:    inventory,
		Booking:      NewBookingService(repo, tx, inventory, pricing, events, settings, log),
		AdminBooking: NewAdminBookingService(repo, tx, inventory, pricing, events, settings, log),
		Payment:      NewPaymentService(repo, tx, invoice, events, settings, log),
		Invoice:      invoice,
		Room:         NewRoomService(repo, inventory, pricing, settings, log),
		Dashboard:    NewDashboardService(repo, log),
	}
}
