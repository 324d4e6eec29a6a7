package repository

import (
	"context"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type InvoiceRepository interface {
	// CreateIfAbsent inserts the invoice unless the booking already has one,
	// and returns the stored row either way.
	CreateIfAbsent(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Invoice, error)
	// Claim takes a publishing lease on a pending invoice until the given
	// time. It reports false when the invoice is already requested or another
	// lease is still running.
	Claim(ctx context.Context, id uuid.UUID, now, until time.Time) (bool, error)
	// ReleaseClaim drops the lease after a failed publish and counts the attempt.
	ReleaseClaim(ctx context.Context, id uuid.UUID) error
	MarkRequested(ctx context.Context, id uuid.UUID, at time.Time) error
	// FindPending skips invoices under a running lease.
	FindPending(ctx context.Context, now time.Time, limit int) ([]*entity.Invoice, error)
}

type invoiceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInvoiceRepository(db database.PgxIface, log *zap.Logger) InvoiceRepository {
	return &invoiceRepository{
		db:  db,
		log: log.With(zap.String("repository", "invoice")),
	}
}

const invoiceColumns = `id, booking_id, invoice_no, status, attempts, claimed_until, requested_at, created_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := row.Scan(
		&invoice.ID,
		&invoice.BookingID,
		&invoice.InvoiceNo,
		&invoice.Status,
		&invoice.Attempts,
		&invoice.ClaimedUntil,
		&invoice.RequestedAt,
		&invoice.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) CreateIfAbsent(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error) {
	query := `
		INSERT INTO invoices (id, booking_id, invoice_no, status, attempts, claimed_until, requested_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (booking_id) DO NOTHING
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		invoice.ID,
		invoice.BookingID,
		invoice.InvoiceNo,
		invoice.Status,
		invoice.Attempts,
		invoice.ClaimedUntil,
		invoice.RequestedAt,
		invoice.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create invoice",
			zap.Error(err),
			zap.String("booking_id", invoice.BookingID.String()),
			zap.String("invoice_no", invoice.InvoiceNo),
		)
		return nil, fmt.Errorf("create invoice for booking %s: %w", invoice.BookingID.String(), err)
	}

	stored, err := r.FindByBookingID(ctx, invoice.BookingID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("invoice for booking %s vanished after insert", invoice.BookingID.String())
	}
	return stored, nil
}

func (r *invoiceRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE booking_id = $1`

	invoice, err := scanInvoice(database.Conn(ctx, r.db).QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find invoice by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find invoice for booking %s: %w", bookingID.String(), err)
	}

	return invoice, nil
}

func (r *invoiceRepository) MarkRequested(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2, requested_at = $3, attempts = attempts + 1, claimed_until = NULL
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, entity.InvoiceStatusRequested, at)
	if err != nil {
		r.log.Error("Failed to mark invoice requested",
			zap.Error(err),
			zap.String("invoice_id", id.String()),
		)
		return fmt.Errorf("mark invoice %s requested: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("mark invoice %s requested: %w", id.String(), ErrNotUpdated)
	}

	return nil
}

func (r *invoiceRepository) Claim(ctx context.Context, id uuid.UUID, now, until time.Time) (bool, error) {
	query := `
		UPDATE invoices
		SET claimed_until = $4
		WHERE id = $1
		  AND status = $2
		  AND (claimed_until IS NULL OR claimed_until <= $3)
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, entity.InvoiceStatusPending, now, until)
	if err != nil {
		r.log.Error("Failed to claim invoice",
			zap.Error(err),
			zap.String("invoice_id", id.String()),
		)
		return false, fmt.Errorf("claim invoice %s: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *invoiceRepository) ReleaseClaim(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE invoices SET attempts = attempts + 1, claimed_until = NULL WHERE id = $1`

	if _, err := database.Conn(ctx, r.db).Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to release invoice claim",
			zap.Error(err),
			zap.String("invoice_id", id.String()),
		)
		return fmt.Errorf("release invoice %s: %w", id.String(), err)
	}

	return nil
}

func (r *invoiceRepository) FindPending(ctx context.Context, now time.Time, limit int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE status = $1
		  AND (claimed_until IS NULL OR claimed_until <= $2)
		ORDER BY created_at
		LIMIT $3
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, entity.InvoiceStatusPending, now, limit)
	if err != nil {
		r.log.Error("Failed to find pending invoices", zap.Error(err))
		return nil, fmt.Errorf("find pending invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	return invoices, rows.Err()
}
