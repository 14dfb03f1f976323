package messaging

import (
	"context"
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (c *recordingChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange = exchange
	c.key = key
	c.msg = msg
	return c.err
}

func TestPublisher_Publish(t *testing.T) {
	ch := &recordingChannel{}
	p := NewPublisherWithChannel(ch, "workforce.events", "shiftboard-service", logger.Nop())

	ctx := WithCorrelationID(context.Background(), "req-1")
	err := p.Publish(ctx, EventSyncCompleted, map[string]int{"count": 3})
	require.NoError(t, err)

	assert.Equal(t, "workforce.events", ch.exchange)
	assert.Equal(t, EventSyncCompleted, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, "req-1", ch.msg.CorrelationId)

	var event Event
	require.NoError(t, json.Unmarshal(ch.msg.Body, &event))
	assert.Equal(t, EventSyncCompleted, event.Type)
	assert.Equal(t, "shiftboard-service", event.Source)
	assert.Equal(t, ch.msg.MessageId, event.ID)

	var data map[string]int
	require.NoError(t, event.UnmarshalData(&data))
	assert.Equal(t, 3, data["count"])
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &recordingChannel{err: assert.AnError}
	p := NewPublisherWithChannel(ch, "workforce.events", "test", logger.Nop())

	err := p.Publish(context.Background(), EventSyncFailed, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
