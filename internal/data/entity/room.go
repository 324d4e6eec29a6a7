package entity

import (
	"errors"

	"github.com/google/uuid"
)

var ErrUnknownRoomStatus = errors.New("unknown room status")

type RoomStatus string

const (
	RoomStatusAvailable    RoomStatus = "AVAILABLE"
	RoomStatusOccupied     RoomStatus = "OCCUPIED"
	RoomStatusReserved     RoomStatus = "RESERVED"
	RoomStatusCleaning     RoomStatus = "CLEANING"
	RoomStatusOutOfService RoomStatus = "OUT_OF_SERVICE"
	RoomStatusBlocked      RoomStatus = "BLOCKED"
)

type Action string

const (
	ActionBook        Action = "BOOK"
	ActionView        Action = "VIEW"
	ActionCancel      Action = "CANCEL"
	ActionCheckout    Action = "CHECKOUT"
	ActionWait        Action = "WAIT"
	ActionMaintenance Action = "MAINTENANCE"
)

var roomActions = map[RoomStatus][]Action{
	RoomStatusAvailable:    {ActionBook, ActionView},
	RoomStatusOccupied:     {ActionView},
	RoomStatusReserved:     {ActionCheckout, ActionView},
	RoomStatusCleaning:     {ActionWait, ActionView},
	RoomStatusOutOfService: {ActionMaintenance, ActionView},
	RoomStatusBlocked:      {ActionView},
}

type Room struct {
	ID        uuid.UUID  `db:"id"`
	Number    string     `db:"number"`
	Name      string     `db:"name"`
	Type      string     `db:"type"`
	Capacity  int        `db:"capacity"`
	BasePrice int64      `db:"base_price"`
	Status    RoomStatus `db:"status"`
}

func ParseRoomStatus(s string) (RoomStatus, error) {
	status := RoomStatus(s)
	if _, ok := roomActions[status]; !ok {
		return "", ErrUnknownRoomStatus
	}
	return status, nil
}

// AllowedActions returns a copy; unknown statuses only allow VIEW.
func (s RoomStatus) AllowedActions() []Action {
	actions, ok := roomActions[s]
	if !ok {
		return []Action{ActionView}
	}
	return append([]Action(nil), actions...)
}
