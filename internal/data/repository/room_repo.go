package repository

import (
	"context"
	"fmt"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Room, error)
	CountAll(ctx context.Context) (int64, error)
	Create(ctx context.Context, room *entity.Room) error
	Update(ctx context.Context, room *entity.Room) error
	// Delete fails with ErrReferenced while booking lines point at the room.
	Delete(ctx context.Context, id uuid.UUID) error
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `
		SELECT id, number, name, type, capacity, base_price, status
		FROM rooms
		WHERE id = $1
	`

	var room entity.Room
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Number,
		&room.Name,
		&room.Type,
		&room.Capacity,
		&room.BasePrice,
		&room.Status,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return nil, fmt.Errorf("find room by ID %s: %w", id.String(), err)
	}

	return &room, nil
}

// FindByIDs skips unknown ids.
func (r *roomRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, number, name, type, capacity, base_price, status
		FROM rooms
		WHERE id = ANY($1)
		ORDER BY number
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find rooms by IDs",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return nil, fmt.Errorf("find rooms by IDs: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		var room entity.Room
		if err := rows.Scan(
			&room.ID,
			&room.Number,
			&room.Name,
			&room.Type,
			&room.Capacity,
			&room.BasePrice,
			&room.Status,
		); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, &room)
	}

	return rooms, rows.Err()
}

func (r *roomRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		r.log.Error("Failed to count rooms", zap.Error(err))
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return count, nil
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (id, number, name, type, capacity, base_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		room.ID,
		room.Number,
		room.Name,
		room.Type,
		room.Capacity,
		room.BasePrice,
		room.Status,
	)
	if err != nil {
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("number", room.Number),
		)
		return fmt.Errorf("create room %s: %w", room.Number, constraintError(err))
	}

	return nil
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms
		SET number = $2, name = $3, capacity = $4, base_price = $5, status = $6
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		room.ID,
		room.Number,
		room.Name,
		room.Capacity,
		room.BasePrice,
		room.Status,
	)
	if err != nil {
		r.log.Error("Failed to update room",
			zap.Error(err),
			zap.String("room_id", room.ID.String()),
		)
		return fmt.Errorf("update room %s: %w", room.ID.String(), constraintError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update room %s: %w", room.ID.String(), ErrNotUpdated)
	}

	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete room",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return fmt.Errorf("delete room %s: %w", id.String(), constraintError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete room %s: %w", id.String(), ErrNotUpdated)
	}

	return nil
}
