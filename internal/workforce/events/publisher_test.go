package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/events"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
	"github.com/shiftboard/shiftboard-backend/pkg/messaging"
	"github.com/shiftboard/shiftboard-backend/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSyncResult_Completed(t *testing.T) {
	mock := testutil.NewMockPublisher()
	p := events.NewSyncEventPublisherWith(mock, logger.Nop())

	started := time.Date(2025, 9, 1, 3, 0, 0, 0, time.UTC)
	p.PublishSyncResult(context.Background(), domain.SyncResult{
		RunID:      "run-1",
		Entity:     domain.EntityShifts,
		Success:    true,
		Count:      42,
		Warnings:   []domain.ParseWarning{{Line: 3, Message: "bad number"}},
		StartedAt:  started,
		DurationMS: 850,
	})

	published := mock.Events()
	require.Len(t, published, 1)
	assert.Equal(t, messaging.EventSyncCompleted, published[0].Type)

	var data messaging.SyncEvent
	require.NoError(t, json.Unmarshal(published[0].Payload, &data))
	assert.Equal(t, "run-1", data.RunID)
	assert.Equal(t, "shifts", data.Entity)
	assert.Equal(t, 42, data.Count)
	assert.Equal(t, 1, data.WarningCount)
	assert.Equal(t, int64(850), data.DurationMS)
	assert.True(t, data.StartedAt.Equal(started))
}

func TestPublishSyncResult_Failed(t *testing.T) {
	mock := testutil.NewMockPublisher()
	p := events.NewSyncEventPublisherWith(mock, logger.Nop())

	p.PublishSyncResult(context.Background(), domain.SyncResult{
		Entity: domain.EntityUsers,
		Error:  "failed to fetch data: 502 Bad Gateway from http://example",
	})

	mock.AssertEventPublished(t, messaging.EventSyncFailed)

	var data messaging.SyncEvent
	require.NoError(t, json.Unmarshal(mock.Events()[0].Payload, &data))
	assert.False(t, data.Success)
	assert.Contains(t, data.Error, "502")
}

func TestPublishSyncResult_PublishErrorIsSwallowed(t *testing.T) {
	mock := testutil.NewMockPublisher()
	mock.Err = errors.New("broker down")
	p := events.NewSyncEventPublisherWith(mock, logger.Nop())

	assert.NotPanics(t, func() {
		p.PublishSyncResult(context.Background(), domain.SyncResult{Entity: domain.EntityShifts, Success: true})
	})
	assert.Len(t, mock.Events(), 1)
}

func TestPublishSyncResult_NilPublisher(t *testing.T) {
	var p *events.SyncEventPublisher
	assert.NotPanics(t, func() {
		p.PublishSyncResult(context.Background(), domain.SyncResult{})
	})
}
