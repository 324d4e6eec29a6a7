package entity

import "github.com/google/uuid"

// BookingRoom is one room line of a booking; deleted with its booking.
type BookingRoom struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	RoomID    uuid.UUID `db:"room_id"`
	Adults    int       `db:"adults"`
	Children  int       `db:"children"`
}
