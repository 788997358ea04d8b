package events

import "time"

// Event type codes emitted by the generation backend.
const (
	TypeGenerationCompleted = "GENERATION_COMPLETED"
	TypeGenerationFailed    = "GENERATION_FAILED"
	TypeProblemPersisted    = "PROBLEM_PERSISTED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PROBLEM_PERSISTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
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

// NewGenerationCompleted marks a session that reached its terminal stage.
// ArtifactRef is empty when compilation failed but the record is usable.
func NewGenerationCompleted(sessionId, problemId, artifactRef string, compileFailed bool) Event {
	return BaseEvent{
		Type: TypeGenerationCompleted,
		Data: map[string]interface{}{
			"session_id":     sessionId,
			"problem_id":     problemId,
			"artifact_ref":   artifactRef,
			"compile_failed": compileFailed,
		},
		OccurredAt: time.Now(),
	}
}

// NewGenerationFailed marks a session parked in its failed state.
func NewGenerationFailed(sessionId, stage, kind, message string) Event {
	return BaseEvent{
		Type: TypeGenerationFailed,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"stage":      stage,
			"kind":       kind,
			"message":    message,
		},
		OccurredAt: time.Now(),
	}
}

// NewProblemPersisted announces a stored problem so the embedding consumer
// can index it.
func NewProblemPersisted(problemId, subject string) Event {
	return BaseEvent{
		Type: TypeProblemPersisted,
		Data: map[string]interface{}{
			"problem_id": problemId,
			"subject":    subject,
		},
		OccurredAt: time.Now(),
	}
}
