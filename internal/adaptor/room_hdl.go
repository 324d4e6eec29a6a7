package adaptor

import (
	"net/http"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

type RoomHandler struct {
	service usecase.RoomService
	log     *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log.With(zap.String("handler", "room")),
	}
}

// GetAvailableRooms handles GET /api/rooms/available?type=&check_in=&check_out= (public)
func (h *RoomHandler) GetAvailableRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.RoomSearchRequest{
		Type:     query.Get("type"),
		CheckIn:  query.Get("check_in"),
		CheckOut: query.Get("check_out"),
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	checkIn, checkOut, ok := parseStay(w, req.CheckIn, req.CheckOut)
	if !ok {
		return
	}

	rooms, err := h.service.SearchAvailable(r.Context(), req.Type, checkIn, checkOut)
	if err != nil {
		handleServiceError(w, h.log, err, "search available rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// GetRoom handles GET /api/rooms/{id} (public)
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	room, err := h.service.GetRoom(r.Context(), roomID)
	if err != nil {
		handleServiceError(w, h.log, err, "get room")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}

// CheckAvailability handles GET /api/rooms/{id}/availability?check_in=&check_out= (public)
func (h *RoomHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	query := r.URL.Query()
	req := request.AvailabilityRequest{
		CheckIn:  query.Get("check_in"),
		CheckOut: query.Get("check_out"),
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	checkIn, checkOut, ok := parseStay(w, req.CheckIn, req.CheckOut)
	if !ok {
		return
	}

	availability, err := h.service.CheckRoomAvailability(r.Context(), roomID, checkIn, checkOut)
	if err != nil {
		handleServiceError(w, h.log, err, "check room availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// Quote handles POST /api/pricing/quote (public)
func (h *RoomHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRequest
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

	quote, err := h.service.QuoteStay(r.Context(), checkIn, checkOut, roomIDs)
	if err != nil {
		handleServiceError(w, h.log, err, "quote stay")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// CreateRoom handles POST /api/admin/rooms (admin only)
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	room, err := h.service.CreateRoom(r.Context(), usecase.RoomInput{
		Number:    req.Number,
		Name:      req.Name,
		Type:      req.Type,
		Capacity:  req.Capacity,
		BasePrice: req.BasePrice,
		Status:    entity.RoomStatus(req.Status),
	})
	if err != nil {
		handleServiceError(w, h.log, err, "create room")
		return
	}

	utils.ResponseCreated(w, "Room created", room)
}

// UpdateRoom handles PUT /api/admin/rooms/{id} (admin only)
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdateRoomRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	room, err := h.service.UpdateRoom(r.Context(), roomID, usecase.RoomInput{
		Number:    req.Number,
		Name:      req.Name,
		Capacity:  req.Capacity,
		BasePrice: req.BasePrice,
		Status:    entity.RoomStatus(req.Status),
	})
	if err != nil {
		handleServiceError(w, h.log, err, "update room")
		return
	}

	utils.ResponseSuccess(w, "Room updated", room)
}

// DeleteRoom handles DELETE /api/admin/rooms/{id} (admin only)
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(r.Context(), roomID); err != nil {
		handleServiceError(w, h.log, err, "delete room")
		return
	}

	utils.ResponseSuccess(w, "Room deleted", nil)
}
