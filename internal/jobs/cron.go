package jobs

import (
	"context"
	"fmt"
	"time"

	"hotel-reservation/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	invoiceRetryBatch = 50
	jobTimeout        = 2 * time.Minute
)

type InvoiceRetrier interface {
	RetryPending(ctx context.Context, limit int) (int, error)
}

type PendingExpirer interface {
	ExpireStalePending(ctx context.Context, olderThan time.Duration) (int, error)
}

// Jobs runs the periodic maintenance work of the reservation core.
type Jobs struct {
	invoices   InvoiceRetrier
	bookings   PendingExpirer
	pendingTTL time.Duration
	log        *zap.Logger
}

func NewJobs(invoices InvoiceRetrier, bookings PendingExpirer, pendingTTL time.Duration, log *zap.Logger) *Jobs {
	return &Jobs{
		invoices:   invoices,
		bookings:   bookings,
		pendingTTL: pendingTTL,
		log:        log.With(zap.String("job", "cron")),
	}
}

// NewCron builds a scheduler whose jobs never overlap with themselves and
// survive panics.
func NewCron(log *zap.Logger) *cron.Cron {
	l := cronLogger{log: log.With(zap.String("component", "cron")).Sugar()}
	return cron.New(
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)
}

// Register adds the jobs to c. The caller starts and stops c.
func (j *Jobs) Register(c *cron.Cron, config utils.JobsConfig) error {
	if _, err := c.AddFunc(config.InvoiceRetrySpec, j.RetryInvoices); err != nil {
		return fmt.Errorf("schedule invoice retry %q: %w", config.InvoiceRetrySpec, err)
	}
	if j.pendingTTL > 0 {
		if _, err := c.AddFunc(config.PendingExpirySpec, j.ExpirePending); err != nil {
			return fmt.Errorf("schedule pending expiry %q: %w", config.PendingExpirySpec, err)
		}
	}

	j.log.Info("Cron jobs registered",
		zap.String("invoice_retry", config.InvoiceRetrySpec),
		zap.String("pending_expiry", config.PendingExpirySpec),
		zap.Duration("pending_ttl", j.pendingTTL),
	)
	return nil
}

// RetryInvoices re-publishes invoice requests that are still pending.
func (j *Jobs) RetryInvoices() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := j.invoices.RetryPending(ctx, invoiceRetryBatch)
	if err != nil {
		j.log.Error("Invoice retry failed", zap.Error(err))
		return
	}
	if n > 0 {
		j.log.Info("Invoice requests re-published", zap.Int("count", n))
	}
}

// ExpirePending cancels bookings left unpaid longer than the pending TTL.
func (j *Jobs) ExpirePending() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := j.bookings.ExpireStalePending(ctx, j.pendingTTL)
	if err != nil {
		j.log.Error("Pending expiry failed", zap.Error(err))
		return
	}
	if n > 0 {
		j.log.Info("Stale pending bookings expired", zap.Int("count", n))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
