package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shiftboard/shiftboard-backend/pkg/config"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
)

// ErrConnectionClosed is returned once Close has been called
var ErrConnectionClosed = errors.New("rabbitmq connection is permanently closed")

// RabbitMQ owns the broker connection and the single publishing channel
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  *config.RabbitMQConfig
	logger  *logger.Logger
	mu      sync.RWMutex
	closed  bool
}

// New dials the broker and opens a channel
func New(cfg *config.RabbitMQConfig, log *logger.Logger) (*RabbitMQ, error) {
	rmq := &RabbitMQ{
		config: cfg,
		logger: log.WithComponent("rabbitmq"),
	}

	if err := rmq.connect(); err != nil {
		return nil, err
	}

	return rmq, nil
}

// connect must be called with mu held or before the value is shared
func (r *RabbitMQ) connect() error {
	props := amqp.NewConnectionProperties()
	if r.config.ConnectionName != "" {
		props.SetClientConnectionName(r.config.ConnectionName)
	}

	conn, err := amqp.DialConfig(r.config.URL, amqp.Config{
		Heartbeat:  10 * time.Second,
		Properties: props,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	r.conn, r.channel = conn, ch
	go r.watch(conn.NotifyClose(make(chan *amqp.Error, 1)))

	r.logger.Info().Str("connection_name", r.config.ConnectionName).Msg("connected to RabbitMQ")
	return nil
}

// watch logs broker-initiated closes. Publish reconnects lazily on the next event.
func (r *RabbitMQ) watch(notify <-chan *amqp.Error) {
	if amqpErr, ok := <-notify; ok && amqpErr != nil {
		r.logger.Warn().
			Int("code", amqpErr.Code).
			Str("reason", amqpErr.Reason).
			Msg("RabbitMQ connection lost")
	}
}

// Channel returns the current channel
func (r *RabbitMQ) Channel() *amqp.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.channel
}

// IsClosed reports whether the underlying connection is gone
func (r *RabbitMQ) IsClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conn == nil || r.conn.IsClosed()
}

// Close closes the channel and connection. The value cannot be reconnected afterwards.
func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	if r.channel != nil && !r.channel.IsClosed() {
		if err := r.channel.Close(); err != nil {
			r.logger.Warn().Err(err).Msg("failed to close channel")
		}
	}

	if r.conn != nil && !r.conn.IsClosed() {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}

	r.logger.Info().Msg("RabbitMQ connection closed")
	return nil
}

// Health reports the connection state for /health
func (r *RabbitMQ) Health() map[string]string {
	if r.IsClosed() {
		return map[string]string{"status": "down", "error": "connection closed"}
	}
	return map[string]string{"status": "up"}
}

// DeclareExchange declares the durable topic exchange sync events are published to
func (r *RabbitMQ) DeclareExchange(name string) error {
	return r.Channel().ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-deleted
		false,   // internal
		false,   // no-wait
		nil,     // arguments
	)
}

// Reconnect redials up to MaxRetries times, waiting ReconnectDelay between attempts
func (r *RabbitMQ) Reconnect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrConnectionClosed
	}
	if r.conn != nil && !r.conn.IsClosed() {
		return nil
	}

	attempts := r.config.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			timer := time.NewTimer(r.config.ReconnectDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		r.logger.Info().Int("attempt", i+1).Msg("attempting to reconnect to RabbitMQ")
		if lastErr = r.connect(); lastErr == nil {
			return nil
		}
		r.logger.Warn().Err(lastErr).Msg("reconnection attempt failed")
	}

	return fmt.Errorf("failed to reconnect after %d attempts: %w", attempts, lastErr)
}
