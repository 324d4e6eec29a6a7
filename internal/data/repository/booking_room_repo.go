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

type BookingRoomRepository interface {
	CreateBatch(ctx context.Context, lines []*entity.BookingRoom) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingRoom, error)
}

type bookingRoomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRoomRepository(db database.PgxIface, log *zap.Logger) BookingRoomRepository {
	return &bookingRoomRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_room")),
	}
}

func (r *bookingRoomRepository) CreateBatch(ctx context.Context, lines []*entity.BookingRoom) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO booking_rooms (id, booking_id, room_id, adults, children, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query, line.ID, line.BookingID, line.RoomID, line.Adults, line.Children, line.CreatedAt)
	}

	results := database.Conn(ctx, r.db).SendBatch(ctx, batch)
	defer results.Close()

	for _, line := range lines {
		if _, err := results.Exec(); err != nil {
			r.log.Error("Failed to create booking room",
				zap.Error(err),
				zap.String("booking_id", line.BookingID.String()),
				zap.String("room_id", line.RoomID.String()),
			)
			return fmt.Errorf("create booking room %s: %w", line.RoomID.String(), err)
		}
	}

	return nil
}

func (r *bookingRoomRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingRoom, error) {
	query := `
		SELECT id, booking_id, room_id, adults, children, created_at
		FROM booking_rooms
		WHERE booking_id = $1
		ORDER BY created_at, id
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking rooms",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find booking rooms for %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var lines []*entity.BookingRoom
	for rows.Next() {
		var line entity.BookingRoom
		if err := rows.Scan(
			&line.ID,
			&line.BookingID,
			&line.RoomID,
			&line.Adults,
			&line.Children,
			&line.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking room: %w", err)
		}
		lines = append(lines, &line)
	}

	return lines, rows.Err()
}
