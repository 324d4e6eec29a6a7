package adaptor

import (
	"net/http"

	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

// PaymentHandler receives callbacks from the payment subsystem.
type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// Confirmed handles POST /internal/payments/{bookingID}/confirmed
func (h *PaymentHandler) Confirmed(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathUUID(w, r, "bookingID")
	if !ok {
		return
	}

	var req request.PaymentConfirmedRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	detail, err := h.service.TransitionToConfirmed(r.Context(), bookingID, usecase.PaymentConfirmation{
		Provider:    req.Provider,
		ProviderRef: req.ProviderRef,
		Amount:      req.Amount,
	})
	if err != nil {
		handleServiceError(w, h.log, err, "confirm payment")
		return
	}

	utils.ResponseSuccess(w, "Payment confirmed", response.BookingToResponse(detail.Booking, detail.Rooms))
}

// Rejected handles POST /internal/payments/{bookingID}/rejected
func (h *PaymentHandler) Rejected(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathUUID(w, r, "bookingID")
	if !ok {
		return
	}

	var req request.PaymentRejectedRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	payment, err := h.service.RecordPaymentRejection(r.Context(), bookingID, req.Provider, req.ProviderRef)
	if err != nil {
		handleServiceError(w, h.log, err, "record payment rejection")
		return
	}

	utils.ResponseSuccess(w, "Payment rejection recorded", response.PaymentToResponse(payment))
}
