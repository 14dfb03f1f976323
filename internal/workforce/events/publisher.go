package events

import (
	"context"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
	"github.com/shiftboard/shiftboard-backend/pkg/messaging"
)

// Publisher is the subset of messaging.Publisher used for sync events
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// SyncEventPublisher publishes synchronization events
type SyncEventPublisher struct {
	publisher Publisher
	logger    *logger.Logger
}

// NewSyncEventPublisher creates a sync event publisher on the given exchange
func NewSyncEventPublisher(rmq *messaging.RabbitMQ, exchange string, log *logger.Logger) (*SyncEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, exchange, "shiftboard-service", log)
	if err != nil {
		return nil, err
	}

	return NewSyncEventPublisherWith(publisher, log), nil
}

// NewSyncEventPublisherWith wraps an existing publisher
func NewSyncEventPublisherWith(publisher Publisher, log *logger.Logger) *SyncEventPublisher {
	return &SyncEventPublisher{
		publisher: publisher,
		logger:    log,
	}
}

// PublishSyncResult publishes workforce.sync.completed or workforce.sync.failed.
// A nil receiver is a no-op so the service runs without a broker.
func (p *SyncEventPublisher) PublishSyncResult(ctx context.Context, result domain.SyncResult) {
	if p == nil || p.publisher == nil {
		return
	}

	eventType := messaging.EventSyncCompleted
	if !result.Success {
		eventType = messaging.EventSyncFailed
	}

	data := messaging.SyncEvent{
		RunID:        result.RunID,
		Entity:       string(result.Entity),
		Success:      result.Success,
		Count:        result.Count,
		WarningCount: len(result.Warnings),
		Error:        result.Error,
		StartedAt:    result.StartedAt,
		DurationMS:   result.DurationMS,
	}

	ctx = messaging.WithCorrelationID(ctx, result.RunID)
	if err := p.publisher.Publish(ctx, eventType, data); err != nil {
		p.logger.Error().Err(err).
			Str("run_id", result.RunID).
			Str("event_type", eventType).
			Msg("failed to publish sync event")
	}
}
