package repository

import (
	"time"

	"hotel-reservation/pkg/cache"
	"hotel-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Session     SessionRepository
	Room        RoomRepository
	Inventory   InventoryRepository
	Rate        RateRepository
	Booking     BookingRepository
	BookingRoom BookingRoomRepository
	Payment     PaymentRepository
	Invoice     InvoiceRepository
}

func NewRepository(db database.PgxIface, rateCache cache.Cache, rateTTL time.Duration, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Room:        NewRoomRepository(db, log),
		Inventory:   NewInventoryRepository(db, log),
		Rate:        NewCachedRateRepository(NewRateRepository(db, log), rateCache, rateTTL, log),
		Booking:     NewBookingRepository(db, log),
		BookingRoom: NewBookingRoomRepository(db, log),
		Payment:     NewPaymentRepository(db, log),
		Invoice:     NewInvoiceRepository(db, log),
	}
}
