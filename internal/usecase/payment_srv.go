package usecase

import (
	"context"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/pkg/broker"
	"hotel-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentConfirmation is what the payment subsystem reports on success.
// A zero Amount means the booking total was charged.
type PaymentConfirmation struct {
	Provider    string
	ProviderRef string
	Amount      int64
}

type PaymentService interface {
	TransitionToConfirmed(ctx context.Context, bookingID uuid.UUID, confirmation PaymentConfirmation) (*BookingDetail, error)
	RecordPaymentRejection(ctx context.Context, bookingID uuid.UUID, provider, providerRef string) (*entity.Payment, error)
}

type paymentService struct {
	repo     *repository.Repository
	tx       database.Transactor
	invoices InvoiceService
	events   broker.Publisher
	settings Settings
	log      *zap.Logger
}

func NewPaymentService(
	repo *repository.Repository,
	tx database.Transactor,
	invoices InvoiceService,
	events broker.Publisher,
	settings Settings,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:     repo,
		tx:       tx,
		invoices: invoices,
		events:   events,
		settings: settings,
		log:      log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) TransitionToConfirmed(ctx context.Context, bookingID uuid.UUID, confirmation PaymentConfirmation) (*BookingDetail, error) {
	var (
		detail    *BookingDetail
		duplicate bool
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		booking, err := s.repo.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}

		rooms, err := s.repo.BookingRoom.FindByBookingID(ctx, booking.ID)
		if err != nil {
			return err
		}
		detail = &BookingDetail{Booking: booking, Rooms: rooms}

		// redelivery of the confirmation we already applied
		if booking.Status == entity.BookingStatusConfirmed {
			existing, err := s.repo.Payment.FindByBookingAndRef(ctx, booking.ID, confirmation.ProviderRef)
			if err != nil {
				return err
			}
			if existing != nil && existing.Status == entity.PaymentStatusCompleted {
				duplicate = true
				return nil
			}
		}

		now := s.settings.Now()
		if err := booking.TransitionTo(entity.BookingStatusConfirmed, now); err != nil {
			return err
		}

		amount := confirmation.Amount
		if amount == 0 {
			amount = booking.TotalAmount
		}
		if amount != booking.TotalAmount {
			s.log.Warn("Confirmed amount differs from booking total",
				zap.String("booking_id", booking.ID.String()),
				zap.Int64("amount", amount),
				zap.Int64("total_amount", booking.TotalAmount),
			)
		}

		payment := &entity.Payment{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BookingID:   booking.ID,
			Provider:    confirmation.Provider,
			ProviderRef: confirmation.ProviderRef,
			Amount:      amount,
			Status:      entity.PaymentStatusCompleted,
		}
		if err := s.repo.Payment.Create(ctx, payment); err != nil {
			return err
		}

		ref := confirmation.ProviderRef
		booking.PaymentIntentRef = &ref
		return s.repo.Booking.Update(ctx, booking)
	})
	if err != nil {
		s.log.Warn("Payment confirmation failed",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("provider_ref", confirmation.ProviderRef),
		)
		return nil, err
	}

	if duplicate {
		s.log.Info("Duplicate payment confirmation ignored",
			zap.String("booking_id", bookingID.String()),
			zap.String("provider_ref", confirmation.ProviderRef),
		)
		return detail, nil
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", bookingID.String()),
		zap.String("provider", confirmation.Provider),
		zap.String("provider_ref", confirmation.ProviderRef),
	)

	publishBestEffort(ctx, s.events, s.log, EventBookingConfirmed, BookingConfirmedEvent{
		BookingEvent: bookingEvent(detail.Booking, detail.Rooms, s.settings.Now()),
		Provider:     confirmation.Provider,
		ProviderRef:  confirmation.ProviderRef,
	})

	invoice, err := s.invoices.RequestInvoice(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to request invoice",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
	} else {
		detail.Booking.InvoiceNo = &invoice.InvoiceNo
	}

	return detail, nil
}

// RecordPaymentRejection stores the failed attempt. The booking stays
// pending so the guest can retry payment.
func (s *paymentService) RecordPaymentRejection(ctx context.Context, bookingID uuid.UUID, provider, providerRef string) (*entity.Payment, error) {
	var payment *entity.Payment

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		booking, err := s.repo.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}

		payment = &entity.Payment{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: s.settings.Now(),
			},
			BookingID:   booking.ID,
			Provider:    provider,
			ProviderRef: providerRef,
			Amount:      booking.TotalAmount,
			Status:      entity.PaymentStatusRejected,
		}
		return s.repo.Payment.Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.log.Warn("Payment rejected",
		zap.String("booking_id", bookingID.String()),
		zap.String("provider", provider),
		zap.String("provider_ref", providerRef),
	)
	return payment, nil
}
