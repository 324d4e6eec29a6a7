package entity

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusRequested InvoiceStatus = "requested"
)

// Invoice tracks the request sent to the external document generator.
// There is at most one per booking. A pending invoice with ClaimedUntil in
// the future is being published by another worker.
type Invoice struct {
	BaseSimple
	BookingID    uuid.UUID     `db:"booking_id"`
	InvoiceNo    string        `db:"invoice_no"`
	Status       InvoiceStatus `db:"status"`
	Attempts     int           `db:"attempts"`
	ClaimedUntil *time.Time    `db:"claimed_until"`
	RequestedAt  *time.Time    `db:"requested_at"`
}
