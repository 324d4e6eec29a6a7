package response

import (
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/utils"
)

type BookingRoomResponse struct {
	ID       string `json:"id"`
	RoomID   string `json:"room_id"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
}

type BookingResponse struct {
	ID                   string                `json:"id"`
	UserID               string                `json:"user_id"`
	Status               entity.BookingStatus  `json:"status"`
	CheckIn              string                `json:"check_in"`
	CheckOut             string                `json:"check_out"`
	Nights               int                   `json:"nights"`
	TotalAmount          int64                 `json:"total_amount"`
	TotalAmountFormatted string                `json:"total_amount_formatted"`
	Currency             string                `json:"currency"`
	PaymentIntentRef     *string               `json:"payment_intent_ref,omitempty"`
	InvoiceNo            *string               `json:"invoice_no,omitempty"`
	RefundAmount         *int64                `json:"refund_amount,omitempty"`
	Rooms                []BookingRoomResponse `json:"rooms"`
	AllowedActions       []entity.Action       `json:"allowed_actions"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

type CancelBookingResponse struct {
	BookingID       string               `json:"booking_id"`
	Status          entity.BookingStatus `json:"status"`
	RefundAmount    int64                `json:"refund_amount"`
	RefundFormatted string               `json:"refund_formatted"`
}

type PaymentResponse struct {
	ID             string               `json:"id"`
	BookingID      string               `json:"booking_id"`
	Provider       string               `json:"provider"`
	ProviderRef    string               `json:"provider_ref"`
	Amount         int64                `json:"amount"`
	Status         entity.PaymentStatus `json:"status"`
	AllowedActions []entity.Action      `json:"allowed_actions"`
	CreatedAt      time.Time            `json:"created_at"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking, rooms []*entity.BookingRoom) BookingResponse {
	lines := make([]BookingRoomResponse, len(rooms))
	for i, room := range rooms {
		lines[i] = BookingRoomResponse{
			ID:       room.ID.String(),
			RoomID:   room.RoomID.String(),
			Adults:   room.Adults,
			Children: room.Children,
		}
	}

	return BookingResponse{
		ID:                   booking.ID.String(),
		UserID:               booking.UserID.String(),
		Status:               booking.Status,
		CheckIn:              utils.FormatDate(booking.CheckIn),
		CheckOut:             utils.FormatDate(booking.CheckOut),
		Nights:               len(booking.Nights()),
		TotalAmount:          booking.TotalAmount,
		TotalAmountFormatted: utils.FormatMinor(booking.TotalAmount),
		Currency:             booking.Currency,
		PaymentIntentRef:     booking.PaymentIntentRef,
		InvoiceNo:            booking.InvoiceNo,
		RefundAmount:         booking.RefundAmount,
		Rooms:                lines,
		AllowedActions:       booking.Status.AllowedActions(),
		CreatedAt:            booking.CreatedAt,
		UpdatedAt:            booking.UpdatedAt,
	}
}

func CancelToResponse(booking *entity.Booking, refund int64) CancelBookingResponse {
	return CancelBookingResponse{
		BookingID:       booking.ID.String(),
		Status:          booking.Status,
		RefundAmount:    refund,
		RefundFormatted: utils.FormatMinor(refund),
	}
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             payment.ID.String(),
		BookingID:      payment.BookingID.String(),
		Provider:       payment.Provider,
		ProviderRef:    payment.ProviderRef,
		Amount:         payment.Amount,
		Status:         payment.Status,
		AllowedActions: payment.Status.AllowedActions(),
		CreatedAt:      payment.CreatedAt,
	}
}
