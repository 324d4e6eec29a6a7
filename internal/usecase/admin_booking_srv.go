package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/pkg/broker"
	"hotel-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminBookingService interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*BookingDetail, error)
	// CancelBooking returns the refund owed to the guest.
	CancelBooking(ctx context.Context, id uuid.UUID) (*BookingDetail, int64, error)
	ModifyBooking(ctx context.Context, id uuid.UUID, newCheckIn, newCheckOut time.Time) (*BookingDetail, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*BookingDetail, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
}

type adminBookingService struct {
	repo      *repository.Repository
	tx        database.Transactor
	inventory InventoryService
	settings  Settings
	canceller *canceller
	rebooker  *rebooker
	log       *zap.Logger
}

func NewAdminBookingService(
	repo *repository.Repository,
	tx database.Transactor,
	inventory InventoryService,
	pricing PricingService,
	events broker.Publisher,
	settings Settings,
	log *zap.Logger,
) AdminBookingService {
	log = log.With(zap.String("service", "admin_booking"))
	return &adminBookingService{
		repo:      repo,
		tx:        tx,
		inventory: inventory,
		settings:  settings,
		canceller: &canceller{repo: repo, tx: tx, inventory: inventory, events: events, settings: settings, log: log},
		rebooker:  &rebooker{repo: repo, tx: tx, inventory: inventory, pricing: pricing, settings: settings, log: log},
		log:       log,
	}
}

func (s *adminBookingService) GetBooking(ctx context.Context, id uuid.UUID) (*BookingDetail, error) {
	return loadDetail(ctx, s.repo, id)
}

func (s *adminBookingService) CancelBooking(ctx context.Context, id uuid.UUID) (*BookingDetail, int64, error) {
	result, err := s.canceller.cancel(ctx, id, nil, true)
	if err != nil {
		return nil, 0, err
	}
	return &BookingDetail{Booking: result.booking, Rooms: result.rooms}, result.refund, nil
}

// ModifyBooking moves the stay to new dates. Bookings that are finished or
// cancelled cannot move.
func (s *adminBookingService) ModifyBooking(ctx context.Context, id uuid.UUID, newCheckIn, newCheckOut time.Time) (*BookingDetail, error) {
	return s.rebooker.rebook(ctx, id, newCheckIn, newCheckOut, func(b *entity.Booking) error {
		if b.Status.IsTerminal() || b.Status == entity.BookingStatusCheckedOut {
			return &entity.TransitionError{From: b.Status, To: b.Status}
		}
		return nil
	})
}

// UpdateStatus routes CANCELLED through cancellation so inventory is released.
func (s *adminBookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*BookingDetail, error) {
	if _, err := entity.ParseBookingStatus(string(status)); err != nil {
		return nil, err
	}
	if status == entity.BookingStatusCancelled {
		detail, _, err := s.CancelBooking(ctx, id)
		return detail, err
	}

	var detail *BookingDetail
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		booking, err := s.repo.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}

		from := booking.Status
		if err := booking.TransitionTo(status, s.settings.Now()); err != nil {
			return err
		}
		if err := s.repo.Booking.Update(ctx, booking); err != nil {
			return err
		}

		rooms, err := s.repo.BookingRoom.FindByBookingID(ctx, booking.ID)
		if err != nil {
			return err
		}

		s.log.Info("Booking status updated",
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(status)),
		)
		detail = &BookingDetail{Booking: booking, Rooms: rooms}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *adminBookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		booking, err := s.repo.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}

		// cancelled bookings have already given their nights back
		if booking.Status != entity.BookingStatusCancelled {
			rooms, err := s.repo.BookingRoom.FindByBookingID(ctx, booking.ID)
			if err != nil {
				return err
			}
			if err := s.inventory.ReleaseReservation(ctx, lineRoomIDs(rooms), booking.CheckIn, booking.CheckOut); err != nil {
				return fmt.Errorf("release inventory of booking %s: %w", booking.ID, err)
			}
		}

		return s.repo.Booking.Delete(ctx, booking.ID)
	})
	if err != nil {
		return err
	}

	s.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}
