package request

type RoomSearchRequest struct {
	Type     string `json:"type" validate:"required,max=50"`
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

type QuoteRequest struct {
	CheckIn  string   `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string   `json:"check_out" validate:"required,datetime=2006-01-02"`
	RoomIDs  []string `json:"room_ids" validate:"required,min=1,dive,uuid4"`
}

type AvailabilityRequest struct {
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

type CreateRoomRequest struct {
	Number    string `json:"number" validate:"required,max=20"`
	Name      string `json:"name" validate:"required,max=100"`
	Type      string `json:"type" validate:"required,max=50"`
	Capacity  int    `json:"capacity" validate:"required,min=1"`
	BasePrice int64  `json:"base_price" validate:"min=0"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=AVAILABLE OCCUPIED RESERVED CLEANING OUT_OF_SERVICE BLOCKED"`
}

// UpdateRoomRequest replaces the editable fields. The type is fixed at
// creation because rates are keyed on it.
type UpdateRoomRequest struct {
	Number    string `json:"number" validate:"required,max=20"`
	Name      string `json:"name" validate:"required,max=100"`
	Capacity  int    `json:"capacity" validate:"required,min=1"`
	BasePrice int64  `json:"base_price" validate:"min=0"`
	Status    string `json:"status" validate:"required,oneof=AVAILABLE OCCUPIED RESERVED CLEANING OUT_OF_SERVICE BLOCKED"`
}
