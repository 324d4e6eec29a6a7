package adaptor

import (
	"net/http"

	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	checkIn, checkOut, ok := parseStay(w, req.CheckIn, req.CheckOut)
	if !ok {
		return
	}
	roomIDs, ok := parseUUIDs(w, "room_ids", req.RoomIDs)
	if !ok {
		return
	}

	detail, err := h.service.CreateBooking(r.Context(), usecase.CreateBookingCmd{
		UserID:      userID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		RoomIDs:     roomIDs,
		Adults:      req.Adults,
		Children:    req.Children,
		TotalAmount: req.TotalAmount,
		Currency:    req.Currency,
	})
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", response.BookingToResponse(detail.Booking, detail.Rooms))
}

// GetUserBookings handles GET /api/user/bookings (protected)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := request.NewPaginatedRequest(query.Get("page"), query.Get("per_page"))

	bookings, err := h.service.GetUserBookings(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBooking handles GET /api/user/bookings/{id} (protected)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	bookingID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.service.GetBooking(r.Context(), userID, bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", response.BookingToResponse(detail.Booking, detail.Rooms))
}

// ModifyBooking handles PUT /api/user/bookings/{id} (protected)
func (h *BookingHandler) ModifyBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
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

	detail, err := h.service.ModifyOwnBooking(r.Context(), userID, bookingID, checkIn, checkOut)
	if err != nil {
		handleServiceError(w, h.log, err, "modify booking")
		return
	}

	utils.ResponseSuccess(w, "Booking updated", response.BookingToResponse(detail.Booking, detail.Rooms))
}

// CancelBooking handles POST /api/user/bookings/{id}/cancel (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	bookingID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	detail, refund, err := h.service.CancelOwnBooking(r.Context(), userID, bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", response.CancelToResponse(detail.Booking, refund))
}
