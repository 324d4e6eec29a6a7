package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/pkg/broker"
	"hotel-reservation/pkg/database"
	"hotel-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	fullRefundHours    = 48
	partialRefundHours = 0
)

// errSkipCancel lets a guard abort a cancellation without reporting failure.
var errSkipCancel = errors.New("cancellation skipped")

// canceller is shared by the guest, admin and expiry cancellation paths.
type canceller struct {
	repo      *repository.Repository
	tx        database.Transactor
	inventory InventoryService
	events    broker.Publisher
	settings  Settings
	log       *zap.Logger
}

type cancelResult struct {
	booking *entity.Booking
	rooms   []*entity.BookingRoom
	refund  int64
}

// RefundFor returns the refund for a booking of total cancelled at now.
// Whole hours until the start of the check-in day, in the hotel time zone,
// decide the tier: more than 48 refunds everything, more than 0 refunds half
// rounded up to the minor unit, otherwise nothing.
func RefundFor(total int64, checkIn, now time.Time, loc *time.Location) int64 {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, loc)
	hours := int64(start.Sub(now) / time.Hour)

	switch {
	case hours > fullRefundHours:
		return total
	case hours > partialRefundHours:
		return (total + 1) / 2
	default:
		return 0
	}
}

// cancel locks the booking, runs guard on it, then cancels and releases the
// inventory of every line. Unless refundable is false the refund follows
// RefundFor. The cancelled event is published after commit.
func (c *canceller) cancel(ctx context.Context, id uuid.UUID, guard func(*entity.Booking) error, refundable bool) (*cancelResult, error) {
	var result *cancelResult

	err := c.tx.WithinTx(ctx, func(ctx context.Context) error {
		booking, err := c.repo.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}
		if guard != nil {
			if err := guard(booking); err != nil {
				return err
			}
		}

		now := c.settings.Now()
		if err := booking.TransitionTo(entity.BookingStatusCancelled, now); err != nil {
			return err
		}

		var refund int64
		if refundable {
			refund = RefundFor(booking.TotalAmount, booking.CheckIn, now, c.settings.Location)
		}
		booking.RefundAmount = &refund

		rooms, err := c.repo.BookingRoom.FindByBookingID(ctx, booking.ID)
		if err != nil {
			return err
		}
		if err := c.inventory.ReleaseReservation(ctx, lineRoomIDs(rooms), booking.CheckIn, booking.CheckOut); err != nil {
			return fmt.Errorf("release inventory of booking %s: %w", booking.ID, err)
		}

		if err := c.repo.Booking.Update(ctx, booking); err != nil {
			return err
		}

		result = &cancelResult{booking: booking, rooms: rooms, refund: refund}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("Booking cancelled",
		zap.String("booking_id", result.booking.ID.String()),
		zap.Int64("total_amount", result.booking.TotalAmount),
		zap.Int64("refund_amount", result.refund),
	)

	publishBestEffort(ctx, c.events, c.log, EventBookingCancelled, BookingCancelledEvent{
		BookingEvent: bookingEvent(result.booking, result.rooms, c.settings.Now()),
		RefundAmount: result.refund,
	})

	return result, nil
}

func lineRoomIDs(rooms []*entity.BookingRoom) []uuid.UUID {
	ids := make([]uuid.UUID, len(rooms))
	for i, room := range rooms {
		ids[i] = room.RoomID
	}
	return ids
}

func bookingEvent(booking *entity.Booking, rooms []*entity.BookingRoom, now time.Time) BookingEvent {
	return BookingEvent{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		Status:      string(booking.Status),
		CheckIn:     utils.FormatDate(booking.CheckIn),
		CheckOut:    utils.FormatDate(booking.CheckOut),
		RoomIDs:     lineRoomIDs(rooms),
		TotalAmount: booking.TotalAmount,
		Currency:    booking.Currency,
		OccurredAt:  now,
	}
}
