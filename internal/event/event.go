package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/outliner/internal/event/topic"
)

// Event is a published occurrence. Events are values and are not mutated
// after creation.
type Event[T any] struct {
	// Type is the hierarchical event type (e.g., "caret.moved").
	Type topic.Topic

	// Payload contains the event-specific data.
	Payload T

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata is attached to every event.
type Metadata struct {
	// ID uniquely identifies this event instance.
	ID uuid.UUID

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string

	// CausationID links to the event that caused this one.
	CausationID uuid.UUID
}

// NewEvent creates an event with fresh metadata.
func NewEvent[T any](eventType topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    eventType,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.New(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// EventTopic returns the event's topic for type-erased handling.
func (e Event[T]) EventTopic() topic.Topic {
	return e.Type
}

// EventMetadata returns the event's metadata for type-erased handling.
func (e Event[T]) EventMetadata() Metadata {
	return e.Metadata
}

// WithCausation returns a copy of the event caused by id.
func (e Event[T]) WithCausation(id uuid.UUID) Event[T] {
	e.Metadata.CausationID = id
	return e
}

// TopicProvider is implemented by every Event.
type TopicProvider interface {
	EventTopic() topic.Topic
}
