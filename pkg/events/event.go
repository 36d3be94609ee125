package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "QUERY_DISPATCHED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the stock implementation the dispatcher emits.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published on the analytics bus.
const (
	TypeQueryDispatched = "QUERY_DISPATCHED"
	TypeQueryAnswered   = "QUERY_ANSWERED"
	TypeSessionReset    = "SESSION_RESET"
)

// NewQueryDispatched records that a prompt entered the dispatch pipeline.
func NewQueryDispatched(sessionId string, intent string) Event {
	return BaseEvent{
		Type: TypeQueryDispatched,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"intent":     intent,
		},
		OccurredAt: time.Now(),
	}
}

// NewQueryAnswered records the result shape a dispatch produced.
func NewQueryAnswered(sessionId string, resultKind string, imageCount int) Event {
	return BaseEvent{
		Type: TypeQueryAnswered,
		Data: map[string]interface{}{
			"session_id":  sessionId,
			"result_kind": resultKind,
			"image_count": imageCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionReset records an explicit new-chat action.
func NewSessionReset(sessionId string) Event {
	return BaseEvent{
		Type: TypeSessionReset,
		Data: map[string]interface{}{
			"session_id": sessionId,
		},
		OccurredAt: time.Now(),
	}
}
