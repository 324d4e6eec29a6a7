package repository

import (
	"context"
	"fmt"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/database"

	"go.uber.org/zap"
)

type RateRepository interface {
	// FindByRoomType returns all rates of a room type in precedence order:
	// narrowest range first, then most recently created.
	FindByRoomType(ctx context.Context, roomType string) ([]*entity.Rate, error)
}

type rateRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRateRepository(db database.PgxIface, log *zap.Logger) RateRepository {
	return &rateRepository{
		db:  db,
		log: log.With(zap.String("repository", "rate")),
	}
}

func (r *rateRepository) FindByRoomType(ctx context.Context, roomType string) ([]*entity.Rate, error) {
	query := `
		SELECT id, room_type, start_date, end_date, price, created_at
		FROM rates
		WHERE room_type = $1
		ORDER BY (end_date - start_date) ASC, created_at DESC, id ASC
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, roomType)
	if err != nil {
		r.log.Error("Failed to find rates",
			zap.Error(err),
			zap.String("room_type", roomType),
		)
		return nil, fmt.Errorf("find rates for %s: %w", roomType, err)
	}
	defer rows.Close()

	var rates []*entity.Rate
	for rows.Next() {
		var rate entity.Rate
		if err := rows.Scan(
			&rate.ID,
			&rate.RoomType,
			&rate.StartDate,
			&rate.EndDate,
			&rate.Price,
			&rate.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rate: %w", err)
		}
		rates = append(rates, &rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rates: %w", err)
	}

	return rates, nil
}
