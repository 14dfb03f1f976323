package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
)

// MockPublisher records events instead of sending them to a broker.
// Set Err to make every Publish fail after recording.
type MockPublisher struct {
	Err error

	mu     sync.Mutex
	events []PublishedEvent
}

// PublishedEvent is one recorded Publish call with its JSON-encoded payload
type PublishedEvent struct {
	Type    string
	Payload []byte
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// Publish satisfies the event publisher interface
func (m *MockPublisher) Publish(_ context.Context, eventType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, PublishedEvent{Type: eventType, Payload: body})
	return m.Err
}

// Events returns a copy of everything published so far
func (m *MockPublisher) Events() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishedEvent(nil), m.events...)
}

// AssertEventPublished fails the test unless at least one event has the given type
func (m *MockPublisher) AssertEventPublished(t *testing.T, eventType string) {
	t.Helper()
	for _, e := range m.Events() {
		if e.Type == eventType {
			return
		}
	}
	t.Errorf("expected event %q to be published, got %d other event(s)", eventType, len(m.Events()))
}
