package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrNacked is returned when the broker refuses a published message.
var ErrNacked = errors.New("message nacked by broker")

const (
	defaultConfirmTimeout = 5 * time.Second
	dialTimeout           = 5 * time.Second
	redialInterval        = 5 * time.Second
)

// Publisher sends a JSON message under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// RabbitMQ publishes persistent messages to a durable topic exchange and
// waits for the broker to confirm each one. The connection is opened on
// first use and reopened after a failure, so Publish reports an error for
// as long as the broker is unreachable. A single channel is shared, so
// Publish is serialized.
type RabbitMQ struct {
	mu             sync.Mutex
	url            string
	exchange       string
	confirmTimeout time.Duration
	conn           *amqp.Connection
	channel        *amqp.Channel
	dialErr        error
	retryAfter     time.Time
	log            *zap.Logger
}

func NewRabbitMQ(url, exchange string, log *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		url:            url,
		exchange:       exchange,
		confirmTimeout: defaultConfirmTimeout,
		log:            log.With(zap.String("component", "broker")),
	}
}

// Connect dials eagerly. A failure is not fatal: Publish retries.
func (b *RabbitMQ) Connect() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ensureConnection()
}

// connect fails fast with the last dial error until redialInterval has
// passed since that attempt.
func (b *RabbitMQ) connect() error {
	if b.dialErr != nil && time.Now().Before(b.retryAfter) {
		return b.dialErr
	}

	conn, err := amqp.DialConfig(b.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout),
	})
	if err != nil {
		b.dialErr = fmt.Errorf("dial rabbitmq: %w", err)
		b.retryAfter = time.Now().Add(redialInterval)
		return b.dialErr
	}
	b.dialErr = nil
	b.conn = conn

	if err := b.openChannel(); err != nil {
		conn.Close()
		b.conn = nil
		return err
	}
	return nil
}

func (b *RabbitMQ) openChannel() error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		ch.Close()
		return fmt.Errorf("enable publisher confirms: %w", err)
	}

	err = ch.ExchangeDeclare(
		b.exchange, // name
		"topic",    // kind
		true,       // durable
		false,      // autoDelete
		false,      // internal
		false,      // noWait
		nil,        // args
	)
	if err != nil {
		ch.Close()
		return fmt.Errorf("declare exchange %s: %w", b.exchange, err)
	}

	b.channel = ch
	return nil
}

// ensureConnection redials only when the connection is gone; a closed
// channel on a live connection is reopened in place.
func (b *RabbitMQ) ensureConnection() error {
	if b.conn == nil || b.conn.IsClosed() {
		if b.conn != nil {
			b.log.Warn("Reconnecting to RabbitMQ")
		}
		b.channel = nil
		return b.connect()
	}
	if b.channel == nil || b.channel.IsClosed() {
		b.log.Warn("Reopening RabbitMQ channel")
		return b.openChannel()
	}
	return nil
}

func (b *RabbitMQ) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", routingKey, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureConnection(); err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	confirm, err := b.channel.PublishWithDeferredConfirmWithContext(ctx, b.exchange, routingKey, false, false, pub)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, b.confirmTimeout)
	defer cancel()

	acked, err := confirm.WaitContext(waitCtx)
	if err != nil {
		return fmt.Errorf("confirm %s: %w", routingKey, err)
	}
	if !acked {
		return fmt.Errorf("publish %s: %w", routingKey, ErrNacked)
	}

	b.log.Debug("Published message", zap.String("routing_key", routingKey))
	return nil
}

func (b *RabbitMQ) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.channel != nil {
		if err := b.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			return fmt.Errorf("close channel: %w", err)
		}
		b.channel = nil
	}
	if b.conn != nil {
		if err := b.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			return fmt.Errorf("close connection: %w", err)
		}
		b.conn = nil
	}
	return nil
}

// Noop drops every message. Used only when no broker URL is configured.
type Noop struct {
	Log *zap.Logger
}

func (n Noop) Publish(_ context.Context, routingKey string, _ any) error {
	if n.Log != nil {
		n.Log.Debug("Broker disabled, dropping message", zap.String("routing_key", routingKey))
	}
	return nil
}

func (Noop) Close() error { return nil }
