package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rate is a nightly price for a room type over [StartDate, EndDate], both inclusive.
type Rate struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RoomType  string    `db:"room_type" json:"room_type"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Price     int64     `db:"price" json:"price"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (r *Rate) Covers(night time.Time) bool {
	return !night.Before(r.StartDate) && !night.After(r.EndDate)
}
