package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoomInput carries the editable fields of a room. Type is only read on
// create.
type RoomInput struct {
	Number    string
	Name      string
	Type      string
	Capacity  int
	BasePrice int64
	Status    entity.RoomStatus
}

type RoomService interface {
	// Public endpoints
	GetRoom(ctx context.Context, id uuid.UUID) (*response.RoomResponse, error)
	SearchAvailable(ctx context.Context, roomType string, checkIn, checkOut time.Time) ([]response.RoomResponse, error)
	CheckRoomAvailability(ctx context.Context, id uuid.UUID, checkIn, checkOut time.Time) (*response.RoomAvailabilityResponse, error)
	QuoteStay(ctx context.Context, checkIn, checkOut time.Time, roomIDs []uuid.UUID) (*response.QuoteResponse, error)

	// Admin endpoints
	CreateRoom(ctx context.Context, input RoomInput) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, input RoomInput) (*response.RoomResponse, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

type roomService struct {
	repo      *repository.Repository
	inventory InventoryService
	pricing   PricingService
	settings  Settings
	log       *zap.Logger
}

func NewRoomService(repo *repository.Repository, inventory InventoryService, pricing PricingService, settings Settings, log *zap.Logger) RoomService {
	return &roomService{
		repo:      repo,
		inventory: inventory,
		pricing:   pricing,
		settings:  settings,
		log:       log.With(zap.String("service", "room")),
	}
}

func (s *roomService) GetRoom(ctx context.Context, id uuid.UUID) (*response.RoomResponse, error) {
	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	resp := response.RoomToResponse(room)
	return &resp, nil
}

// SearchAvailable prices each room for the stay when a rate covers it.
func (s *roomService) SearchAvailable(ctx context.Context, roomType string, checkIn, checkOut time.Time) ([]response.RoomResponse, error) {
	if checkIn.Before(s.settings.Today()) {
		return nil, ErrCheckInInPast
	}

	rooms, err := s.inventory.FindAvailableRooms(ctx, roomType, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	results := make([]response.RoomResponse, len(rooms))
	stayTotals := make(map[string]*int64)
	for i, room := range rooms {
		results[i] = response.RoomToResponse(room)

		total, ok := stayTotals[room.Type]
		if !ok {
			computed, err := s.pricing.ComputeStayTotal(ctx, checkIn, checkOut, []string{room.Type})
			var noRate *NoRateDefinedError
			switch {
			case err == nil:
				total = &computed
			case errors.As(err, &noRate):
			default:
				return nil, fmt.Errorf("price room type %s: %w", room.Type, err)
			}
			stayTotals[room.Type] = total
		}
		if total != nil {
			results[i] = results[i].WithStayTotal(*total)
		}
	}

	s.log.Debug("Room search",
		zap.String("room_type", roomType),
		zap.Time("check_in", checkIn),
		zap.Time("check_out", checkOut),
		zap.Int("results", len(results)),
	)
	return results, nil
}

func (s *roomService) CheckRoomAvailability(ctx context.Context, id uuid.UUID, checkIn, checkOut time.Time) (*response.RoomAvailabilityResponse, error) {
	if checkIn.Before(s.settings.Today()) {
		return nil, ErrCheckInInPast
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	availability, err := s.inventory.CheckRoomAvailability(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	nights := make([]response.NightAvailabilityResponse, len(availability.Nights))
	for i, n := range availability.Nights {
		nights[i] = response.NightAvailabilityResponse{
			Night:     utils.FormatDate(n.Night),
			Booked:    n.Booked,
			Allotment: n.Allotment,
			Free:      n.Free(),
		}
	}

	return &response.RoomAvailabilityResponse{
		RoomID:    room.ID.String(),
		CheckIn:   utils.FormatDate(checkIn),
		CheckOut:  utils.FormatDate(checkOut),
		Available: availability.Available,
		Nights:    nights,
	}, nil
}

func (s *roomService) QuoteStay(ctx context.Context, checkIn, checkOut time.Time, roomIDs []uuid.UUID) (*response.QuoteResponse, error) {
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidDateRange
	}

	total, err := s.pricing.ComputeTotalForRoomIDs(ctx, checkIn, checkOut, roomIDs)
	if err != nil {
		return nil, err
	}

	return &response.QuoteResponse{
		CheckIn:        utils.FormatDate(checkIn),
		CheckOut:       utils.FormatDate(checkOut),
		Nights:         len(entity.Nights(checkIn, checkOut)),
		Rooms:          len(roomIDs),
		Total:          total,
		TotalFormatted: utils.FormatMinor(total),
		Currency:       s.settings.Currency,
	}, nil
}

func validateRoom(input RoomInput) error {
	if _, err := entity.ParseRoomStatus(string(input.Status)); err != nil {
		return err
	}
	if input.Capacity < 1 || input.BasePrice < 0 {
		return ErrInvalidRoom
	}
	return nil
}

func roomWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return ErrRoomNumberTaken
	case errors.Is(err, repository.ErrReferenced):
		return ErrRoomInUse
	case errors.Is(err, repository.ErrNotUpdated):
		return ErrRoomNotFound
	}
	return err
}

// CreateRoom adds a room. Its nightly inventory is provisioned separately,
// so a new room is not bookable until then.
func (s *roomService) CreateRoom(ctx context.Context, input RoomInput) (*response.RoomResponse, error) {
	if input.Status == "" {
		input.Status = entity.RoomStatusAvailable
	}
	if err := validateRoom(input); err != nil {
		return nil, err
	}

	room := &entity.Room{
		ID:        uuid.New(),
		Number:    input.Number,
		Name:      input.Name,
		Type:      input.Type,
		Capacity:  input.Capacity,
		BasePrice: input.BasePrice,
		Status:    input.Status,
	}
	if err := s.repo.Room.Create(ctx, room); err != nil {
		return nil, roomWriteError(err)
	}

	s.log.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("number", room.Number),
		zap.String("room_type", room.Type),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, id uuid.UUID, input RoomInput) (*response.RoomResponse, error) {
	if err := validateRoom(input); err != nil {
		return nil, err
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	from := room.Status
	room.Number = input.Number
	room.Name = input.Name
	room.Capacity = input.Capacity
	room.BasePrice = input.BasePrice
	room.Status = input.Status

	if err := s.repo.Room.Update(ctx, room); err != nil {
		return nil, roomWriteError(err)
	}

	s.log.Info("Room updated",
		zap.String("room_id", id.String()),
		zap.String("from_status", string(from)),
		zap.String("to_status", string(room.Status)),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

// DeleteRoom refuses rooms that any booking still references. Their
// inventory rows go with them.
func (s *roomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Room.Delete(ctx, id); err != nil {
		err = roomWriteError(err)
		if errors.Is(err, ErrRoomInUse) {
			s.log.Warn("Room still referenced", zap.String("room_id", id.String()))
		}
		return err
	}

	s.log.Info("Room deleted", zap.String("room_id", id.String()))
	return nil
}
