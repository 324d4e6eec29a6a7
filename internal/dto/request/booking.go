package request

type CreateBookingRequest struct {
	CheckIn     string   `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut    string   `json:"check_out" validate:"required,datetime=2006-01-02"`
	RoomIDs     []string `json:"room_ids" validate:"required,min=1,dive,uuid4"`
	Adults      []int    `json:"adults" validate:"required"`
	Children    []int    `json:"children"`
	TotalAmount *int64   `json:"total_amount,omitempty"`
	Currency    string   `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
}

type ModifyBookingRequest struct {
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,uppercase"`
}
