package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to the entity
type EventType string

const (
	EventTypeUpdated EventType = "updated"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeAnalysis EntityType = "analysis"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "analysis.updated"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "analysis"
	Command   string      `json:"command,omitempty"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// AnalysisUpdated creates an analysis.updated event carrying the recomputed
// analysis and the name of the command that caused it
func AnalysisUpdated(command string, payload interface{}) Event {
	e := NewEvent(EventTypeUpdated, EntityTypeAnalysis, payload)
	e.Command = command
	return e
}
