package entity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTotalAmount = errors.New("invalid total amount: must not be negative")
	ErrIllegalTransition  = errors.New("illegal booking status transition")
	ErrAlreadyCancelled   = errors.New("booking is already cancelled")
	ErrUnknownStatus      = errors.New("unknown booking status")
)

// TransitionError reports a status change the state machine does not allow.
type TransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move booking from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }
