package repository

import (
	"context"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InventoryRepository interface {
	// LockRange locks every record of the rooms for nights in [from, to),
	// ordered by room id then night. Must run inside a transaction.
	LockRange(ctx context.Context, roomIDs []uuid.UUID, from, to time.Time) ([]*entity.InventoryRecord, error)
	AdjustBooked(ctx context.Context, recordID uuid.UUID, delta int) error
	FindAvailableRoomIDs(ctx context.Context, roomType string, from, to time.Time) ([]uuid.UUID, error)
	// FindRange reads the records of one room for [from, to) without locking.
	FindRange(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*entity.InventoryRecord, error)
}

type inventoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInventoryRepository(db database.PgxIface, log *zap.Logger) InventoryRepository {
	return &inventoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "inventory")),
	}
}

func (r *inventoryRepository) LockRange(ctx context.Context, roomIDs []uuid.UUID, from, to time.Time) ([]*entity.InventoryRecord, error) {
	if !database.InTx(ctx) {
		return nil, fmt.Errorf("lock inventory: no transaction in context")
	}

	// ORDER BY fixes the lock acquisition order across transactions
	query := `
		SELECT id, room_id, night_date, booked_count, allotment
		FROM room_inventory
		WHERE room_id = ANY($1)
		  AND night_date >= $2
		  AND night_date < $3
		ORDER BY room_id, night_date
		FOR UPDATE
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, roomIDs, from, to)
	if err != nil {
		r.log.Error("Failed to lock inventory",
			zap.Error(err),
			zap.Int("room_count", len(roomIDs)),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("lock inventory: %w", err)
	}
	defer rows.Close()

	var records []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.RoomID,
			&rec.NightDate,
			&rec.BookedCount,
			&rec.Allotment,
		); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory: %w", err)
	}

	return records, nil
}

func (r *inventoryRepository) AdjustBooked(ctx context.Context, recordID uuid.UUID, delta int) error {
	query := `
		UPDATE room_inventory
		SET booked_count = booked_count + $2
		WHERE id = $1
		  AND booked_count + $2 >= 0
		  AND booked_count + $2 <= allotment
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, recordID, delta)
	if err != nil {
		r.log.Error("Failed to adjust booked count",
			zap.Error(err),
			zap.String("record_id", recordID.String()),
			zap.Int("delta", delta),
		)
		return fmt.Errorf("adjust inventory %s: %w", recordID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("adjust inventory %s by %d: %w", recordID.String(), delta, ErrInventoryGuard)
	}

	return nil
}

// FindAvailableRoomIDs returns rooms of the type with at least one free unit
// on every night of [from, to). Rooms missing a night are excluded.
func (r *inventoryRepository) FindAvailableRoomIDs(ctx context.Context, roomType string, from, to time.Time) ([]uuid.UUID, error) {
	nights := len(entity.Nights(from, to))
	if nights == 0 {
		return nil, nil
	}

	query := `
		SELECT rm.id
		FROM rooms rm
		JOIN room_inventory inv
		  ON inv.room_id = rm.id
		 AND inv.night_date >= $2
		 AND inv.night_date < $3
		WHERE LOWER(rm.type) = LOWER($1)
		GROUP BY rm.id, rm.number
		HAVING COUNT(*) FILTER (WHERE inv.booked_count < inv.allotment) = $4
		ORDER BY rm.number
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, roomType, from, to, nights)
	if err != nil {
		r.log.Error("Failed to find available rooms",
			zap.Error(err),
			zap.String("room_type", roomType),
		)
		return nil, fmt.Errorf("find available rooms of type %s: %w", roomType, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan room id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *inventoryRepository) FindRange(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT id, room_id, night_date, booked_count, allotment
		FROM room_inventory
		WHERE room_id = $1
		  AND night_date >= $2
		  AND night_date < $3
		ORDER BY night_date
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, roomID, from, to)
	if err != nil {
		r.log.Error("Failed to read inventory",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("read inventory of room %s: %w", roomID.String(), err)
	}
	defer rows.Close()

	var records []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.RoomID,
			&rec.NightDate,
			&rec.BookedCount,
			&rec.Allotment,
		); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}
