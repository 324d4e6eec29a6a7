package usecase

import (
	"errors"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange      = errors.New("invalid date range: check-in must be before check-out")
	ErrRoomOccupancyMismatch = errors.New("room and occupancy lists must have equal length with at least one adult per room")
	ErrUserNotFound          = errors.New("user not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrRoomNotFound          = errors.New("room not found")
	ErrTotalAmountMismatch   = errors.New("total amount does not match the computed price")
	ErrCheckInInPast         = errors.New("check-in date cannot be in the past")
	ErrBookingNotModifiable  = errors.New("booking can only be changed while pending payment or reserved")
	ErrRoomNumberTaken       = errors.New("room number already exists")
	ErrRoomInUse             = errors.New("room is referenced by bookings")
	ErrInvalidRoom           = errors.New("room capacity must be at least 1 and base price non-negative")

	// re-exported so callers only depend on this package
	ErrInvalidTotalAmount = entity.ErrInvalidTotalAmount
	ErrIllegalTransition  = entity.ErrIllegalTransition
	ErrAlreadyCancelled   = entity.ErrAlreadyCancelled
	ErrUnknownStatus      = entity.ErrUnknownStatus
	ErrUnknownRoomStatus  = entity.ErrUnknownRoomStatus
)

// RoomUnavailableError names the first room-night that cannot take the
// requested demand. A missing inventory record reports Allotment 0.
type RoomUnavailableError struct {
	RoomID    uuid.UUID
	Night     time.Time
	Booked    int
	Allotment int
	Requested int
}

func (e *RoomUnavailableError) Error() string {
	return fmt.Sprintf("room %s is unavailable on %s (booked %d of %d, requested %d)",
		e.RoomID, e.Night.Format("2006-01-02"), e.Booked, e.Allotment, e.Requested)
}

// NoRateDefinedError is returned when no rate covers a room type on a night.
type NoRateDefinedError struct {
	RoomType string
	Date     time.Time
}

func (e *NoRateDefinedError) Error() string {
	return fmt.Sprintf("no rate defined for room type %s on %s", e.RoomType, e.Date.Format("2006-01-02"))
}
