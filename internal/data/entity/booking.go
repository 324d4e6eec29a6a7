package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingStatusReserved       BookingStatus = "RESERVED"
	BookingStatusConfirmed      BookingStatus = "CONFIRMED"
	BookingStatusCheckedIn      BookingStatus = "CHECKED_IN"
	BookingStatusInProgress     BookingStatus = "IN_PROGRESS"
	BookingStatusCheckedOut     BookingStatus = "CHECKED_OUT"
	BookingStatusCompleted      BookingStatus = "COMPLETED"
	BookingStatusCancelled      BookingStatus = "CANCELLED"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPendingPayment: {BookingStatusReserved, BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusReserved:       {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:      {BookingStatusCheckedIn, BookingStatusCancelled},
	BookingStatusCheckedIn:      {BookingStatusInProgress, BookingStatusCheckedOut, BookingStatusCancelled},
	BookingStatusInProgress:     {BookingStatusCheckedOut, BookingStatusCancelled},
	BookingStatusCheckedOut:     {BookingStatusCompleted},
	BookingStatusCompleted:      nil,
	BookingStatusCancelled:      nil,
}

// guest-visible actions, used to drive UI only
var bookingActions = map[BookingStatus][]Action{
	BookingStatusPendingPayment: {ActionCancel, ActionView},
	BookingStatusReserved:       {ActionCancel, ActionView},
	BookingStatusConfirmed:      {ActionView},
	BookingStatusCheckedIn:      {ActionCancel, ActionView},
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if _, ok := bookingTransitions[status]; !ok {
		return "", ErrUnknownStatus
	}
	return status, nil
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// GuestModifiable reports whether the guest may still change the dates.
func (s BookingStatus) GuestModifiable() bool {
	return s == BookingStatusPendingPayment || s == BookingStatusReserved
}

func (s BookingStatus) AllowedActions() []Action {
	return append([]Action{}, bookingActions[s]...)
}

type Booking struct {
	Base
	UserID           uuid.UUID     `db:"user_id"`
	Status           BookingStatus `db:"status"`
	TotalAmount      int64         `db:"total_amount"`
	Currency         string        `db:"currency"`
	CheckIn          time.Time     `db:"check_in"`
	CheckOut         time.Time     `db:"check_out"`
	PaymentIntentRef *string       `db:"payment_intent_ref"`
	InvoiceNo        *string       `db:"invoice_no"`
	RefundAmount     *int64        `db:"refund_amount"`
}

// SetTotalAmount enforces a non-negative total.
func (b *Booking) SetTotalAmount(amount int64) error {
	if amount < 0 {
		return ErrInvalidTotalAmount
	}
	b.TotalAmount = amount
	return nil
}

// TransitionTo validates against the transition table and stamps UpdatedAt.
func (b *Booking) TransitionTo(to BookingStatus, now time.Time) error {
	if b.Status == BookingStatusCancelled && to == BookingStatusCancelled {
		return ErrAlreadyCancelled
	}
	if !b.Status.CanTransitionTo(to) {
		return &TransitionError{From: b.Status, To: to}
	}
	b.Status = to
	b.Touch(now)
	return nil
}

// Nights returns every night of the stay.
func (b *Booking) Nights() []time.Time {
	return Nights(b.CheckIn, b.CheckOut)
}

// Nights lists the dates in the half-open interval [checkIn, checkOut).
func Nights(checkIn, checkOut time.Time) []time.Time {
	var nights []time.Time
	for night := checkIn; night.Before(checkOut); night = night.AddDate(0, 0, 1) {
		nights = append(nights, night)
	}
	return nights
}
