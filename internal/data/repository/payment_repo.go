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

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error)

	// Business queries
	FindByBookingAndRef(ctx context.Context, bookingID uuid.UUID, providerRef string) (*entity.Payment, error)
	SumCompleted(ctx context.Context) (int64, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, provider, provider_ref, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.Provider,
		payment.ProviderRef,
		payment.Amount,
		payment.Status,
		payment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("provider_ref", payment.ProviderRef),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	query := `
		SELECT id, booking_id, provider, provider_ref, amount, status, created_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find payments by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payments for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func (r *paymentRepository) FindByBookingAndRef(ctx context.Context, bookingID uuid.UUID, providerRef string) (*entity.Payment, error) {
	query := `
		SELECT id, booking_id, provider, provider_ref, amount, status, created_at
		FROM payments
		WHERE booking_id = $1 AND provider_ref = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	payment, err := scanPayment(database.Conn(ctx, r.db).QueryRow(ctx, query, bookingID, providerRef))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by provider ref",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("provider_ref", providerRef),
		)
		return nil, fmt.Errorf("find payment %s for booking %s: %w", providerRef, bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) SumCompleted(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = $1`

	var total int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, entity.PaymentStatusCompleted).Scan(&total); err != nil {
		r.log.Error("Failed to sum completed payments", zap.Error(err))
		return 0, fmt.Errorf("sum completed payments: %w", err)
	}
	return total, nil
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Provider,
		&payment.ProviderRef,
		&payment.Amount,
		&payment.Status,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
