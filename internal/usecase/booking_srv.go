package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/pkg/broker"
	"hotel-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateBookingCmd struct {
	UserID      uuid.UUID
	CheckIn     time.Time
	CheckOut    time.Time
	RoomIDs     []uuid.UUID
	Adults      []int
	Children    []int
	TotalAmount *int64 // optional, must match the computed price when set
	Currency    string
}

// BookingDetail is a booking with its room lines.
type BookingDetail struct {
	Booking *entity.Booking
	Rooms   []*entity.BookingRoom
}

type BookingService interface {
	// Guest endpoints (auth required)
	CreateBooking(ctx context.Context, cmd CreateBookingCmd) (*BookingDetail, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDetail, error)
	CancelOwnBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDetail, int64, error)
	ModifyOwnBooking(ctx context.Context, userID, bookingID uuid.UUID, newCheckIn, newCheckOut time.Time) (*BookingDetail, error)

	// Jobs
	ExpireStalePending(ctx context.Context, olderThan time.Duration) (int, error)
}

type bookingService struct {
	repo      *repository.Repository
	tx        database.Transactor
	inventory InventoryService
	pricing   PricingService
	events    broker.Publisher
	settings  Settings
	canceller *canceller
	rebooker  *rebooker
	log       *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	tx database.Transactor,
	inventory InventoryService,
	pricing PricingService,
	events broker.Publisher,
	settings Settings,
	log *zap.Logger,
) BookingService {
	log = log.With(zap.String("service", "booking"))
	return &bookingService{
		repo:      repo,
		tx:        tx,
		inventory: inventory,
		pricing:   pricing,
		events:    events,
		settings:  settings,
		canceller: &canceller{repo: repo, tx: tx, inventory: inventory, events: events, settings: settings, log: log},
		rebooker:  &rebooker{repo: repo, tx: tx, inventory: inventory, pricing: pricing, settings: settings, log: log},
		log:       log,
	}
}

func validateCreate(cmd CreateBookingCmd, today time.Time) error {
	if !cmd.CheckIn.Before(cmd.CheckOut) {
		return ErrInvalidDateRange
	}
	if cmd.CheckIn.Before(today) {
		return ErrCheckInInPast
	}

	if len(cmd.RoomIDs) == 0 || len(cmd.RoomIDs) != len(cmd.Adults) || len(cmd.RoomIDs) != len(cmd.Children) {
		return ErrRoomOccupancyMismatch
	}
	for i := range cmd.RoomIDs {
		if cmd.Adults[i] < 1 || cmd.Children[i] < 0 {
			return ErrRoomOccupancyMismatch
		}
	}

	if cmd.TotalAmount != nil && *cmd.TotalAmount < 0 {
		return ErrInvalidTotalAmount
	}

	return nil
}

func (s *bookingService) CreateBooking(ctx context.Context, cmd CreateBookingCmd) (*BookingDetail, error) {
	if err := validateCreate(cmd, s.settings.Today()); err != nil {
		s.log.Warn("Create booking rejected",
			zap.Error(err),
			zap.String("user_id", cmd.UserID.String()),
		)
		return nil, err
	}

	user, err := s.repo.User.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve user %s: %w", cmd.UserID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	currency := cmd.Currency
	if currency == "" {
		currency = s.settings.Currency
	}

	var detail *BookingDetail
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		reservation, err := s.inventory.CheckAndReserve(ctx, cmd.RoomIDs, cmd.CheckIn, cmd.CheckOut)
		if err != nil {
			return err
		}

		total, err := s.pricing.ComputeTotalForRoomIDs(ctx, cmd.CheckIn, cmd.CheckOut, cmd.RoomIDs)
		if err != nil {
			return err
		}
		if cmd.TotalAmount != nil && *cmd.TotalAmount != total {
			s.log.Warn("Total amount mismatch",
				zap.Int64("supplied", *cmd.TotalAmount),
				zap.Int64("computed", total),
			)
			return ErrTotalAmountMismatch
		}

		now := s.settings.Now()
		booking := &entity.Booking{
			Base:     entity.NewBase(now),
			UserID:   user.ID,
			Status:   entity.BookingStatusPendingPayment,
			Currency: currency,
			CheckIn:  cmd.CheckIn,
			CheckOut: cmd.CheckOut,
		}
		if err := booking.SetTotalAmount(total); err != nil {
			return err
		}

		if err := s.repo.Booking.Create(ctx, booking); err != nil {
			return err
		}

		rooms := make([]*entity.BookingRoom, len(cmd.RoomIDs))
		for i, roomID := range cmd.RoomIDs {
			rooms[i] = &entity.BookingRoom{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				BookingID: booking.ID,
				RoomID:    roomID,
				Adults:    cmd.Adults[i],
				Children:  cmd.Children[i],
			}
		}
		if err := s.repo.BookingRoom.CreateBatch(ctx, rooms); err != nil {
			return err
		}

		if err := s.inventory.CommitReservation(ctx, reservation); err != nil {
			return err
		}

		detail = &BookingDetail{Booking: booking, Rooms: rooms}
		return nil
	})
	if err != nil {
		var unavailable *RoomUnavailableError
		if errors.As(err, &unavailable) {
			s.log.Warn("Room unavailable",
				zap.String("room_id", unavailable.RoomID.String()),
				zap.Time("night", unavailable.Night),
			)
		}
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", detail.Booking.ID.String()),
		zap.String("user_id", cmd.UserID.String()),
		zap.Int("room_count", len(detail.Rooms)),
		zap.Int("nights", len(detail.Booking.Nights())),
		zap.Int64("total_amount", detail.Booking.TotalAmount),
	)

	publishBestEffort(ctx, s.events, s.log, EventBookingCreated, bookingEvent(detail.Booking, detail.Rooms, s.settings.Now()))

	return detail, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		rooms, err := s.repo.BookingRoom.FindByBookingID(ctx, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("get rooms of booking %s: %w", booking.ID, err)
		}
		bookingResponses[i] = response.BookingToResponse(booking, rooms)
	}

	s.log.Debug("User bookings retrieved",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(bookingResponses, req.Page, limit, total), nil
}

// GetBooking reports bookings of other users as not found.
func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDetail, error) {
	detail, err := loadDetail(ctx, s.repo, bookingID)
	if err != nil {
		return nil, err
	}
	if detail.Booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	return detail, nil
}

func (s *bookingService) CancelOwnBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDetail, int64, error) {
	result, err := s.canceller.cancel(ctx, bookingID, func(b *entity.Booking) error {
		if b.UserID != userID {
			return ErrBookingNotFound
		}
		return nil
	}, true)
	if err != nil {
		return nil, 0, err
	}
	return &BookingDetail{Booking: result.booking, Rooms: result.rooms}, result.refund, nil
}

// ModifyOwnBooking moves a guest's own booking while it is still pending
// payment or reserved. Foreign bookings are reported as not found.
func (s *bookingService) ModifyOwnBooking(ctx context.Context, userID, bookingID uuid.UUID, newCheckIn, newCheckOut time.Time) (*BookingDetail, error) {
	if newCheckIn.Before(s.settings.Today()) {
		return nil, ErrCheckInInPast
	}

	return s.rebooker.rebook(ctx, bookingID, newCheckIn, newCheckOut, func(b *entity.Booking) error {
		if b.UserID != userID {
			return ErrBookingNotFound
		}
		if !b.Status.GuestModifiable() {
			return ErrBookingNotModifiable
		}
		return nil
	})
}

const expireBatchSize = 100

// ExpireStalePending cancels unpaid bookings created before now - olderThan.
// A booking paid in the meantime is left alone.
func (s *bookingService) ExpireStalePending(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := s.settings.Now().Add(-olderThan)

	ids, err := s.repo.Booking.FindStalePending(ctx, cutoff, expireBatchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, id := range ids {
		_, err := s.canceller.cancel(ctx, id, func(b *entity.Booking) error {
			if b.Status != entity.BookingStatusPendingPayment {
				return errSkipCancel
			}
			return nil
		}, false)
		switch {
		case err == nil:
			expired++
		case errors.Is(err, errSkipCancel), errors.Is(err, ErrBookingNotFound):
		default:
			s.log.Error("Failed to expire pending booking",
				zap.Error(err),
				zap.String("booking_id", id.String()),
			)
		}
	}

	if expired > 0 {
		s.log.Info("Expired pending bookings", zap.Int("count", expired), zap.Time("cutoff", cutoff))
	}
	return expired, nil
}

func loadDetail(ctx context.Context, repo *repository.Repository, id uuid.UUID) (*BookingDetail, error) {
	booking, err := repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	rooms, err := repo.BookingRoom.FindByBookingID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BookingDetail{Booking: booking, Rooms: rooms}, nil
}
