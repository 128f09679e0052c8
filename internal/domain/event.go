package domain

import "time"

// EventType defines the type of event that occurred.
type EventType string

const (
	EventImagePulled   EventType = "image.pulled"
	EventImagePushed   EventType = "image.pushed"
	EventImageRemoved  EventType = "image.removed"
	EventImageTagged   EventType = "image.tagged"
	EventImageProgress EventType = "image.progress"
)

// Event represents a domain event that occurred in the system.
type Event struct {
	ID        string
	Type      EventType
	Timestamp time.Time
	ImageName string
	Reference string
	Data      any
}

// ProgressPhase marks where an action is in its lifecycle.
type ProgressPhase string

const (
	PhaseStart    ProgressPhase = "start"
	PhaseProgress ProgressPhase = "progress"
	PhaseDone     ProgressPhase = "done"
	PhaseError    ProgressPhase = "error"
)

// ProgressChunk is one decoded message of a streamed pull or push.
type ProgressChunk struct {
	ID      string
	Status  string
	Current int64
	Total   int64
}

// ProgressEvent is what image actions report to a progress sink.
type ProgressEvent struct {
	Phase     ProgressPhase
	Action    string
	Subject   string
	Reference string
	Chunk     ProgressChunk
	Err       error
}

// EventType maps a progress event to the bus event type it is published as.
func (e ProgressEvent) EventType() EventType {
	if e.Phase != PhaseDone {
		return EventImageProgress
	}
	switch e.Action {
	case "pull":
		return EventImagePulled
	case "push":
		return EventImagePushed
	case "remove":
		return EventImageRemoved
	case "tag":
		return EventImageTagged
	default:
		return EventImageProgress
	}
}
