package usecase

import (
	"context"
	"time"

	"hotel-reservation/pkg/broker"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Routing keys on the reservation exchange.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventBookingConfirmed = "booking.confirmed"
	EventInvoiceRequested = "invoice.requested"
)

type BookingEvent struct {
	BookingID   uuid.UUID   `json:"booking_id"`
	UserID      uuid.UUID   `json:"user_id"`
	Status      string      `json:"status"`
	CheckIn     string      `json:"check_in"`
	CheckOut    string      `json:"check_out"`
	RoomIDs     []uuid.UUID `json:"room_ids,omitempty"`
	TotalAmount int64       `json:"total_amount"`
	Currency    string      `json:"currency"`
	OccurredAt  time.Time   `json:"occurred_at"`
}

type BookingCancelledEvent struct {
	BookingEvent
	RefundAmount int64 `json:"refund_amount"`
}

type BookingConfirmedEvent struct {
	BookingEvent
	Provider    string `json:"provider"`
	ProviderRef string `json:"provider_ref"`
}

type InvoiceRequestedEvent struct {
	InvoiceNo   string    `json:"invoice_no"`
	BookingID   uuid.UUID `json:"booking_id"`
	CheckIn     string    `json:"check_in"`
	CheckOut    string    `json:"check_out"`
	TotalAmount int64     `json:"total_amount"`
	Currency    string    `json:"currency"`
	GuestName   string    `json:"guest_name"`
	GuestEmail  string    `json:"guest_email"`
	RequestedAt time.Time `json:"requested_at"`
}

// publishBestEffort is for lifecycle notifications that must not fail a
// committed operation.
func publishBestEffort(ctx context.Context, events broker.Publisher, log *zap.Logger, key string, payload any) {
	if err := events.Publish(ctx, key, payload); err != nil {
		log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("routing_key", key),
		)
	}
}
