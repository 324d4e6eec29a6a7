package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PricingService interface {
	// ResolveNightlyPrice returns the price of the first rate, in precedence
	// order, whose range contains date.
	ResolveNightlyPrice(ctx context.Context, roomType string, date time.Time) (int64, error)
	// ComputeStayTotal sums the nightly price of every room type over every
	// night of [checkIn, checkOut). Any unresolved night fails the whole call.
	ComputeStayTotal(ctx context.Context, checkIn, checkOut time.Time, roomTypes []string) (int64, error)
	ComputeTotalForExistingBooking(ctx context.Context, booking *entity.Booking) (int64, error)
	ComputeTotalForRoomIDs(ctx context.Context, checkIn, checkOut time.Time, roomIDs []uuid.UUID) (int64, error)
}

type pricingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPricingService(repo *repository.Repository, log *zap.Logger) PricingService {
	return &pricingService{
		repo: repo,
		log:  log.With(zap.String("service", "pricing")),
	}
}

func (s *pricingService) ResolveNightlyPrice(ctx context.Context, roomType string, date time.Time) (int64, error) {
	rates, err := s.repo.Rate.FindByRoomType(ctx, roomType)
	if err != nil {
		return 0, fmt.Errorf("load rates for %s: %w", roomType, err)
	}
	return resolve(rates, roomType, date)
}

func resolve(rates []*entity.Rate, roomType string, date time.Time) (int64, error) {
	for _, rate := range rates {
		if rate.Covers(date) {
			return rate.Price, nil
		}
	}
	return 0, &NoRateDefinedError{RoomType: roomType, Date: date}
}

func (s *pricingService) ComputeStayTotal(ctx context.Context, checkIn, checkOut time.Time, roomTypes []string) (int64, error) {
	if !checkOut.After(checkIn) || len(roomTypes) == 0 {
		return 0, nil
	}

	ratesByType := make(map[string][]*entity.Rate, len(roomTypes))
	for _, roomType := range roomTypes {
		if _, ok := ratesByType[roomType]; ok {
			continue
		}
		rates, err := s.repo.Rate.FindByRoomType(ctx, roomType)
		if err != nil {
			return 0, fmt.Errorf("load rates for %s: %w", roomType, err)
		}
		ratesByType[roomType] = rates
	}

	var total int64
	for _, night := range entity.Nights(checkIn, checkOut) {
		for _, roomType := range roomTypes {
			price, err := resolve(ratesByType[roomType], roomType, night)
			if err != nil {
				s.log.Warn("Stay total unresolved",
					zap.String("room_type", roomType),
					zap.Time("night", night),
				)
				return 0, err
			}
			total += price
		}
	}

	return total, nil
}

func (s *pricingService) ComputeTotalForExistingBooking(ctx context.Context, booking *entity.Booking) (int64, error) {
	lines, err := s.repo.BookingRoom.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return 0, fmt.Errorf("load rooms of booking %s: %w", booking.ID, err)
	}

	roomIDs := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		roomIDs[i] = line.RoomID
	}

	return s.ComputeTotalForRoomIDs(ctx, booking.CheckIn, booking.CheckOut, roomIDs)
}

// ComputeTotalForRoomIDs prices each listed room once per occurrence.
// Unknown rooms and rooms without a type are ignored.
func (s *pricingService) ComputeTotalForRoomIDs(ctx context.Context, checkIn, checkOut time.Time, roomIDs []uuid.UUID) (int64, error) {
	if len(roomIDs) == 0 {
		return 0, nil
	}

	rooms, err := s.repo.Room.FindByIDs(ctx, roomIDs)
	if err != nil {
		return 0, fmt.Errorf("load rooms: %w", err)
	}

	typeByID := make(map[uuid.UUID]string, len(rooms))
	for _, room := range rooms {
		typeByID[room.ID] = room.Type
	}

	var roomTypes []string
	for _, id := range roomIDs {
		if roomType := typeByID[id]; roomType != "" {
			roomTypes = append(roomTypes, roomType)
		}
	}

	return s.ComputeStayTotal(ctx, checkIn, checkOut, roomTypes)
}
