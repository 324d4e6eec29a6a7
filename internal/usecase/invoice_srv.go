package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/pkg/broker"
	"hotel-reservation/pkg/database"
	"hotel-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// invoiceClaimLease bounds how long a crashed publisher keeps other workers
// off an invoice.
const invoiceClaimLease = time.Minute

type InvoiceService interface {
	// RequestInvoice is idempotent: a booking gets one invoice number and
	// the generator is asked at most once per successful publish.
	RequestInvoice(ctx context.Context, bookingID uuid.UUID) (*entity.Invoice, error)
	RetryPending(ctx context.Context, limit int) (int, error)
}

type invoiceService struct {
	repo     *repository.Repository
	tx       database.Transactor
	events   broker.Publisher
	settings Settings
	log      *zap.Logger
}

func NewInvoiceService(repo *repository.Repository, tx database.Transactor, events broker.Publisher, settings Settings, log *zap.Logger) InvoiceService {
	return &invoiceService{
		repo:     repo,
		tx:       tx,
		events:   events,
		settings: settings,
		log:      log.With(zap.String("service", "invoice")),
	}
}

func (s *invoiceService) RequestInvoice(ctx context.Context, bookingID uuid.UUID) (*entity.Invoice, error) {
	var (
		booking *entity.Booking
		invoice *entity.Invoice
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.repo.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}

		now := s.settings.Now()
		invoice, err = s.repo.Invoice.CreateIfAbsent(ctx, &entity.Invoice{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BookingID: booking.ID,
			InvoiceNo: utils.GenerateInvoiceNo(booking.ID, now),
			Status:    entity.InvoiceStatusPending,
		})
		if err != nil {
			return err
		}

		if booking.InvoiceNo == nil || *booking.InvoiceNo != invoice.InvoiceNo {
			booking.InvoiceNo = &invoice.InvoiceNo
			booking.Touch(now)
			return s.repo.Booking.Update(ctx, booking)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if invoice.Status == entity.InvoiceStatusRequested {
		return invoice, nil
	}

	s.publish(ctx, booking, invoice)
	return invoice, nil
}

// publish leaves the invoice pending when the broker is down; RetryPending
// picks it up later. Only the worker holding the claim publishes.
func (s *invoiceService) publish(ctx context.Context, booking *entity.Booking, invoice *entity.Invoice) bool {
	now := s.settings.Now()
	claimed, err := s.repo.Invoice.Claim(ctx, invoice.ID, now, now.Add(invoiceClaimLease))
	if err != nil {
		return false
	}
	if !claimed {
		s.log.Debug("Invoice claimed elsewhere", zap.String("invoice_no", invoice.InvoiceNo))
		return false
	}

	event := InvoiceRequestedEvent{
		InvoiceNo:   invoice.InvoiceNo,
		BookingID:   booking.ID,
		CheckIn:     utils.FormatDate(booking.CheckIn),
		CheckOut:    utils.FormatDate(booking.CheckOut),
		TotalAmount: booking.TotalAmount,
		Currency:    booking.Currency,
		RequestedAt: s.settings.Now(),
	}

	guest, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil {
		s.log.Warn("Failed to load guest for invoice", zap.Error(err), zap.String("booking_id", booking.ID.String()))
	}
	if guest != nil {
		event.GuestName = guest.Username
		event.GuestEmail = guest.Email
	}

	if err := s.events.Publish(ctx, EventInvoiceRequested, event); err != nil {
		s.log.Warn("Invoice request not published, will retry",
			zap.Error(err),
			zap.String("invoice_no", invoice.InvoiceNo),
		)
		if err := s.repo.Invoice.ReleaseClaim(ctx, invoice.ID); err != nil {
			s.log.Error("Failed to record invoice attempt", zap.Error(err))
		}
		return false
	}

	if err := s.repo.Invoice.MarkRequested(ctx, invoice.ID, event.RequestedAt); err != nil {
		s.log.Error("Failed to mark invoice requested",
			zap.Error(err),
			zap.String("invoice_no", invoice.InvoiceNo),
		)
		return false
	}

	invoice.Status = entity.InvoiceStatusRequested
	invoice.RequestedAt = &event.RequestedAt
	invoice.Attempts++

	s.log.Info("Invoice requested",
		zap.String("invoice_no", invoice.InvoiceNo),
		zap.String("booking_id", booking.ID.String()),
	)
	return true
}

func (s *invoiceService) RetryPending(ctx context.Context, limit int) (int, error) {
	invoices, err := s.repo.Invoice.FindPending(ctx, s.settings.Now(), limit)
	if err != nil {
		return 0, fmt.Errorf("find pending invoices: %w", err)
	}

	published := 0
	for _, invoice := range invoices {
		booking, err := s.repo.Booking.FindByID(ctx, invoice.BookingID)
		if err != nil {
			s.log.Error("Failed to load booking for invoice", zap.Error(err), zap.String("invoice_no", invoice.InvoiceNo))
			continue
		}
		if booking == nil {
			continue
		}
		if s.publish(ctx, booking, invoice) {
			published++
		}
	}

	return published, nil
}
