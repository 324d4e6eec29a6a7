package usecase

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reservation is the result of a successful availability check. It holds
// locked records and is only valid inside the transaction that produced it.
type Reservation struct {
	CheckIn  time.Time
	CheckOut time.Time
	RoomIDs  []uuid.UUID
	Demand   map[uuid.UUID]int
	Records  []*entity.InventoryRecord
}

// NightAvailability is one night of a room. Unprovisioned nights report
// Allotment 0.
type NightAvailability struct {
	Night     time.Time
	Booked    int
	Allotment int
}

func (n NightAvailability) Free() int {
	if n.Booked >= n.Allotment {
		return 0
	}
	return n.Allotment - n.Booked
}

type RoomAvailability struct {
	RoomID    uuid.UUID
	CheckIn   time.Time
	CheckOut  time.Time
	Available bool
	Nights    []NightAvailability
}

type InventoryService interface {
	// CheckAndReserve locks the inventory of the rooms for [checkIn, checkOut)
	// and verifies every night can take the demand. It writes nothing.
	CheckAndReserve(ctx context.Context, roomIDs []uuid.UUID, checkIn, checkOut time.Time) (*Reservation, error)
	CommitReservation(ctx context.Context, reservation *Reservation) error
	ReleaseReservation(ctx context.Context, roomIDs []uuid.UUID, checkIn, checkOut time.Time) error
	FindAvailableRooms(ctx context.Context, roomType string, checkIn, checkOut time.Time) ([]*entity.Room, error)
	// CheckRoomAvailability reads without locking; the answer is advisory.
	CheckRoomAvailability(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*RoomAvailability, error)
}

type inventoryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewInventoryService(repo *repository.Repository, log *zap.Logger) InventoryService {
	return &inventoryService{
		repo: repo,
		log:  log.With(zap.String("service", "inventory")),
	}
}

// demandOf counts how many units each room needs and returns the distinct
// ids in canonical lock order.
func demandOf(roomIDs []uuid.UUID) ([]uuid.UUID, map[uuid.UUID]int) {
	demand := make(map[uuid.UUID]int, len(roomIDs))
	var distinct []uuid.UUID
	for _, id := range roomIDs {
		if demand[id] == 0 {
			distinct = append(distinct, id)
		}
		demand[id]++
	}

	sort.Slice(distinct, func(i, j int) bool {
		return bytes.Compare(distinct[i][:], distinct[j][:]) < 0
	})
	return distinct, demand
}

type nightKey struct {
	roomID uuid.UUID
	night  string
}

func indexRecords(records []*entity.InventoryRecord) map[nightKey]*entity.InventoryRecord {
	index := make(map[nightKey]*entity.InventoryRecord, len(records))
	for _, rec := range records {
		index[nightKey{roomID: rec.RoomID, night: utils.FormatDate(rec.NightDate)}] = rec
	}
	return index
}

func (s *inventoryService) CheckAndReserve(ctx context.Context, roomIDs []uuid.UUID, checkIn, checkOut time.Time) (*Reservation, error) {
	distinct, demand := demandOf(roomIDs)

	records, err := s.repo.Inventory.LockRange(ctx, distinct, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	index := indexRecords(records)

	nights := entity.Nights(checkIn, checkOut)
	reserved := make([]*entity.InventoryRecord, 0, len(distinct)*len(nights))

	for _, roomID := range distinct {
		for _, night := range nights {
			rec, ok := index[nightKey{roomID: roomID, night: utils.FormatDate(night)}]
			if !ok {
				s.log.Warn("Inventory record missing",
					zap.String("room_id", roomID.String()),
					zap.Time("night", night),
				)
				return nil, &RoomUnavailableError{RoomID: roomID, Night: night, Requested: demand[roomID]}
			}
			if rec.BookedCount+demand[roomID] > rec.Allotment {
				return nil, &RoomUnavailableError{
					RoomID:    roomID,
					Night:     night,
					Booked:    rec.BookedCount,
					Allotment: rec.Allotment,
					Requested: demand[roomID],
				}
			}
			reserved = append(reserved, rec)
		}
	}

	return &Reservation{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		RoomIDs:  distinct,
		Demand:   demand,
		Records:  reserved,
	}, nil
}

func (s *inventoryService) CommitReservation(ctx context.Context, reservation *Reservation) error {
	for _, rec := range reservation.Records {
		delta := reservation.Demand[rec.RoomID]
		if err := s.repo.Inventory.AdjustBooked(ctx, rec.ID, delta); err != nil {
			return fmt.Errorf("commit reservation of room %s on %s: %w",
				rec.RoomID, rec.NightDate.Format("2006-01-02"), err)
		}
		rec.BookedCount += delta
	}

	s.log.Debug("Reservation committed",
		zap.Int("rooms", len(reservation.RoomIDs)),
		zap.Int("records", len(reservation.Records)),
	)
	return nil
}

// ReleaseReservation never takes a count below zero; nights already at zero
// or missing are skipped.
func (s *inventoryService) ReleaseReservation(ctx context.Context, roomIDs []uuid.UUID, checkIn, checkOut time.Time) error {
	distinct, demand := demandOf(roomIDs)
	if len(distinct) == 0 {
		return nil
	}

	records, err := s.repo.Inventory.LockRange(ctx, distinct, checkIn, checkOut)
	if err != nil {
		return err
	}

	for _, rec := range records {
		release := demand[rec.RoomID]
		if release > rec.BookedCount {
			s.log.Warn("Releasing more than booked, clamping to zero",
				zap.String("room_id", rec.RoomID.String()),
				zap.Time("night", rec.NightDate),
				zap.Int("booked", rec.BookedCount),
				zap.Int("release", release),
			)
			release = rec.BookedCount
		}
		if release == 0 {
			continue
		}

		if err := s.repo.Inventory.AdjustBooked(ctx, rec.ID, -release); err != nil {
			return fmt.Errorf("release room %s on %s: %w",
				rec.RoomID, rec.NightDate.Format("2006-01-02"), err)
		}
		rec.BookedCount -= release
	}

	return nil
}

func (s *inventoryService) FindAvailableRooms(ctx context.Context, roomType string, checkIn, checkOut time.Time) ([]*entity.Room, error) {
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidDateRange
	}

	ids, err := s.repo.Inventory.FindAvailableRoomIDs(ctx, roomType, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*entity.Room{}, nil
	}

	rooms, err := s.repo.Room.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load available rooms: %w", err)
	}
	return rooms, nil
}

func (s *inventoryService) CheckRoomAvailability(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*RoomAvailability, error) {
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidDateRange
	}

	records, err := s.repo.Inventory.FindRange(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	index := indexRecords(records)

	result := &RoomAvailability{
		RoomID:    roomID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Available: true,
	}
	for _, night := range entity.Nights(checkIn, checkOut) {
		n := NightAvailability{Night: night}
		if rec, ok := index[nightKey{roomID: roomID, night: utils.FormatDate(night)}]; ok {
			n.Booked = rec.BookedCount
			n.Allotment = rec.Allotment
		}
		if n.Free() == 0 {
			result.Available = false
		}
		result.Nights = append(result.Nights, n)
	}

	return result, nil
}
