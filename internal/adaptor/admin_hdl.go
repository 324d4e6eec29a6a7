package adaptor

import (
	"net/http"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	bookings  usecase.AdminBookingService
	dashboard usecase.DashboardService
	log       *zap.Logger
}

func NewAdminHandler(bookings usecase.AdminBookingService, dashboard usecase.DashboardService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		bookings:  bookings,
		dashboard: dashboard,
		log:       log.With(zap.String("handler", "admin")),
	}
}

// GetBooking handles GET /api/admin/bookings/{id} (admin only)
func (h *AdminHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.bookings.GetBooking(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", response.BookingToResponse(detail.Booking, detail.Rooms))
}

// ModifyBooking handles PUT /api/admin/bookings/{id} (admin only)
func (h *AdminHandler) ModifyBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req request.ModifyBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	checkIn, checkOut, ok := parseStay(w, req.CheckIn, req.CheckOut)
	if !ok {
		return
	}

	detail, err := h.bookings.ModifyBooking(r.Context(), bookingID, checkIn, checkOut)
	if err != nil {
		handleServiceError(w, h.log, err, "modify booking")
		return
	}

	utils.ResponseSuccess(w, "Booking updated", response.BookingToResponse(detail.Booking, detail.Rooms))
}

// UpdateStatus handles PUT /api/admin/bookings/{id}/status (admin only)
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdateBookingStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	detail, err := h.bookings.UpdateStatus(r.Context(), bookingID, entity.BookingStatus(req.Status))
	if err != nil {
		handleServiceError(w, h.log, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking status updated", response.BookingToResponse(detail.Booking, detail.Rooms))
}

// CancelBooking handles PUT /api/admin/bookings/{id}/cancel (admin only)
func (h *AdminHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	detail, refund, err := h.bookings.CancelBooking(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", response.CancelToResponse(detail.Booking, refund))
}

// DeleteBooking handles DELETE /api/admin/bookings/{id} (admin only)
func (h *AdminHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.bookings.DeleteBooking(r.Context(), bookingID); err != nil {
		handleServiceError(w, h.log, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "Booking deleted", nil)
}

// Dashboard handles GET /api/admin/dashboard (admin only)
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}
