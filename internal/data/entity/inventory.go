package entity

import (
	"time"

	"github.com/google/uuid"
)

// InventoryRecord counts bookings of one room on one night.
// Invariant: 0 <= BookedCount <= Allotment.
type InventoryRecord struct {
	ID          uuid.UUID `db:"id"`
	RoomID      uuid.UUID `db:"room_id"`
	NightDate   time.Time `db:"night_date"`
	BookedCount int       `db:"booked_count"`
	Allotment   int       `db:"allotment"`
}

// Free is the number of units still sellable.
func (r *InventoryRecord) Free() int {
	return r.Allotment - r.BookedCount
}
