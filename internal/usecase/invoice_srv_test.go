package usecase

import (
	"context"
	"errors"
	"testing"

	"hotel-reservation/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestInvoice_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	detail, _ := threeNightBooking(t, env)
	ctx := context.Background()

	first, err := env.invoice.RequestInvoice(ctx, detail.Booking.ID)
	require.NoError(t, err)
	second, err := env.invoice.RequestInvoice(ctx, detail.Booking.ID)
	require.NoError(t, err)

	assert.Equal(t, first.InvoiceNo, second.InvoiceNo)
	assert.Regexp(t, `^INV-20250601-[0-9A-F]{32}$`, first.InvoiceNo)
	assert.Equal(t, entity.InvoiceStatusRequested, second.Status)
	assert.Len(t, env.store.invoices, 1)
	assert.Equal(t, 1, env.events.count(EventInvoiceRequested))
	assert.Equal(t, first.InvoiceNo, *env.store.bookings[detail.Booking.ID].InvoiceNo)

	env.events.mu.Lock()
	event := env.events.messages[len(env.events.messages)-1].payload.(InvoiceRequestedEvent)
	env.events.mu.Unlock()
	assert.Equal(t, int64(30000), event.TotalAmount)
	assert.Equal(t, "2025-06-10", event.CheckIn)
	assert.Equal(t, "guest@example.com", event.GuestEmail)
}

func TestRequestInvoice_PublishFailureIsRetried(t *testing.T) {
	env := newTestEnv(t)
	detail, _ := threeNightBooking(t, env)
	ctx := context.Background()
	env.events.fail(errors.New("connection refused"))

	invoice, err := env.invoice.RequestInvoice(ctx, detail.Booking.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPending, invoice.Status)
	stored := env.store.invoices[detail.Booking.ID]
	assert.Equal(t, 1, stored.Attempts)

	published, err := env.invoice.RetryPending(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, published)
	assert.Equal(t, 2, env.store.invoices[detail.Booking.ID].Attempts)

	env.events.fail(nil)
	published, err = env.invoice.RetryPending(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, published)
	assert.Equal(t, entity.InvoiceStatusRequested, env.store.invoices[detail.Booking.ID].Status)
	assert.Equal(t, invoice.InvoiceNo, env.store.invoices[detail.Booking.ID].InvoiceNo)

	published, err = env.invoice.RetryPending(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, published)
	assert.Equal(t, 1, env.events.count(EventInvoiceRequested))
}

func TestRequestInvoice_UnknownBooking(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.invoice.RequestInvoice(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Empty(t, env.store.invoices)
}

func TestRequestInvoice_ConcurrentPublishersSendOnce(t *testing.T) {
	env := newTestEnv(t)
	detail, _ := threeNightBooking(t, env)
	ctx := context.Background()

	var (
		retried  int
		retryErr error
		again    *entity.Invoice
		againErr error
	)
	env.events.onPublish = func() {
		retried, retryErr = env.invoice.RetryPending(ctx, 10)
		again, againErr = env.invoice.RequestInvoice(ctx, detail.Booking.ID)
	}

	invoice, err := env.invoice.RequestInvoice(ctx, detail.Booking.ID)
	require.NoError(t, err)

	require.NoError(t, retryErr)
	require.NoError(t, againErr)
	assert.Zero(t, retried)
	assert.Equal(t, invoice.InvoiceNo, again.InvoiceNo)
	assert.Equal(t, entity.InvoiceStatusRequested, invoice.Status)
	assert.Equal(t, 1, env.events.count(EventInvoiceRequested))
	assert.Nil(t, env.store.invoices[detail.Booking.ID].ClaimedUntil)
}

func TestRetryPending_TakesOverExpiredClaim(t *testing.T) {
	env := newTestEnv(t)
	detail, _ := threeNightBooking(t, env)
	ctx := context.Background()
	env.events.fail(errors.New("connection refused"))

	_, err := env.invoice.RequestInvoice(ctx, detail.Booking.ID)
	require.NoError(t, err)
	held := env.clock.Add(invoiceClaimLease)
	env.store.invoices[detail.Booking.ID].ClaimedUntil = &held
	env.events.fail(nil)

	published, err := env.invoice.RetryPending(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, published, "lease still running")

	env.clock = env.clock.Add(2 * invoiceClaimLease)
	published, err = env.invoice.RetryPending(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, published)
	assert.Equal(t, 1, env.events.count(EventInvoiceRequested))
}
