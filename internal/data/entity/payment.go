package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusRejected   PaymentStatus = "REJECTED"
)

// Payment records an outcome reported by the payment subsystem.
type Payment struct {
	BaseSimple
	BookingID   uuid.UUID     `db:"booking_id"`
	Provider    string        `db:"provider"`
	ProviderRef string        `db:"provider_ref"`
	Amount      int64         `db:"amount"`
	Status      PaymentStatus `db:"status"`
}

func (s PaymentStatus) AllowedActions() []Action {
	switch s {
	case PaymentStatusProcessing, PaymentStatusCompleted:
		return []Action{ActionView}
	default:
		return []Action{}
	}
}
