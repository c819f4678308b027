package testutil

import (
	"context"
	"sync"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/dafibh/spendsense/spendsense-backend/internal/websocket"
)

// MockSnapshotRepository is an in-memory domain.SnapshotRepository
type MockSnapshotRepository struct {
	mu        sync.Mutex
	Payload   []byte
	LoadErr   error
	SaveErr   error
	SaveCount int
}

// NewMockSnapshotRepository creates an empty MockSnapshotRepository
func NewMockSnapshotRepository() *MockSnapshotRepository {
	return &MockSnapshotRepository{}
}

// Load returns the stored payload, or ErrSnapshotNotFound when nothing was saved
func (m *MockSnapshotRepository) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Payload == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	out := make([]byte, len(m.Payload))
	copy(out, m.Payload)
	return out, nil
}

// Save stores a copy of payload
func (m *MockSnapshotRepository) Save(ctx context.Context, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Payload = make([]byte, len(payload))
	copy(m.Payload, payload)
	m.SaveCount++
	return nil
}

// Saves returns how many successful saves happened
func (m *MockSnapshotRepository) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SaveCount
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of the recorded events in publish order
func (m *MockEventPublisher) Events() []websocket.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]websocket.Event, len(m.events))
	copy(out, m.events)
	return out
}
