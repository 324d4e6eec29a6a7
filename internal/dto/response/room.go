package response

import (
	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/utils"
)

type RoomResponse struct {
	ID                 string            `json:"id"`
	Number             string            `json:"number"`
	Name               string            `json:"name"`
	Type               string            `json:"type"`
	Capacity           int               `json:"capacity"`
	BasePrice          int64             `json:"base_price"`
	Status             entity.RoomStatus `json:"status"`
	AllowedActions     []entity.Action   `json:"allowed_actions"`
	StayTotal          *int64            `json:"stay_total,omitempty"`
	StayTotalFormatted *string           `json:"stay_total_formatted,omitempty"`
}

type QuoteResponse struct {
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	Nights         int    `json:"nights"`
	Rooms          int    `json:"rooms"`
	Total          int64  `json:"total"`
	TotalFormatted string `json:"total_formatted"`
	Currency       string `json:"currency"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:             room.ID.String(),
		Number:         room.Number,
		Name:           room.Name,
		Type:           room.Type,
		Capacity:       room.Capacity,
		BasePrice:      room.BasePrice,
		Status:         room.Status,
		AllowedActions: room.Status.AllowedActions(),
	}
}

// WithStayTotal attaches the price of the searched stay.
func (r RoomResponse) WithStayTotal(total int64) RoomResponse {
	formatted := utils.FormatMinor(total)
	r.StayTotal = &total
	r.StayTotalFormatted = &formatted
	return r
}

type NightAvailabilityResponse struct {
	Night     string `json:"night"`
	Booked    int    `json:"booked"`
	Allotment int    `json:"allotment"`
	Free      int    `json:"free"`
}

type RoomAvailabilityResponse struct {
	RoomID    string                      `json:"room_id"`
	CheckIn   string                      `json:"check_in"`
	CheckOut  string                      `json:"check_out"`
	Available bool                        `json:"available"`
	Nights    []NightAvailabilityResponse `json:"nights"`
}
