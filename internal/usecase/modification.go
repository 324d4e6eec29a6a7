package usecase

import (
	"context"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// rebooker moves a booking to new dates for the guest and admin paths.
type rebooker struct {
	repo      *repository.Repository
	tx        database.Transactor
	inventory InventoryService
	pricing   PricingService
	settings  Settings
	log       *zap.Logger
}

// rebook locks the booking, runs guard on it, releases the old nights and
// reserves the new ones in one transaction, so an unavailable night leaves
// the booking and the ledger untouched. The total is recomputed for the new
// dates.
func (r *rebooker) rebook(ctx context.Context, id uuid.UUID, newCheckIn, newCheckOut time.Time, guard func(*entity.Booking) error) (*BookingDetail, error) {
	var detail *BookingDetail

	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		booking, err := r.repo.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}
		if err := guard(booking); err != nil {
			return err
		}
		if !newCheckOut.After(newCheckIn) {
			return ErrInvalidDateRange
		}

		rooms, err := r.repo.BookingRoom.FindByBookingID(ctx, booking.ID)
		if err != nil {
			return err
		}
		roomIDs := lineRoomIDs(rooms)

		if err := r.inventory.ReleaseReservation(ctx, roomIDs, booking.CheckIn, booking.CheckOut); err != nil {
			return err
		}

		reservation, err := r.inventory.CheckAndReserve(ctx, roomIDs, newCheckIn, newCheckOut)
		if err != nil {
			return err
		}
		if err := r.inventory.CommitReservation(ctx, reservation); err != nil {
			return err
		}

		booking.CheckIn = newCheckIn
		booking.CheckOut = newCheckOut

		total, err := r.pricing.ComputeTotalForExistingBooking(ctx, booking)
		if err != nil {
			return err
		}
		if err := booking.SetTotalAmount(total); err != nil {
			return err
		}
		booking.Touch(r.settings.Now())

		if err := r.repo.Booking.Update(ctx, booking); err != nil {
			return err
		}

		detail = &BookingDetail{Booking: booking, Rooms: rooms}
		return nil
	})
	if err != nil {
		r.log.Warn("Modify booking failed",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, err
	}

	r.log.Info("Booking modified",
		zap.String("booking_id", id.String()),
		zap.Time("check_in", newCheckIn),
		zap.Time("check_out", newCheckOut),
		zap.Int64("total_amount", detail.Booking.TotalAmount),
	)
	return detail, nil
}
