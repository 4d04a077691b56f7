// Package events defines the event taxonomy and base structures for gong's
// event stream. The controller emits events through a Router; the TUI, the
// cue listener and the log sink consume them.
package events

import (
	"time"

	"github.com/npratt/gong/internal/interval"
)

// EventType identifies the category and nature of an event.
type EventType string

// Event types.
const (
	// Controller loop lifecycle
	EventLoopStart EventType = "loop.start"
	EventLoopStop  EventType = "loop.stop"

	// Configuration edits
	EventConfigUpdated EventType = "config.updated"

	// Session lifecycle
	EventSessionStart EventType = "session.start"
	EventSessionEnd   EventType = "session.end"

	// Countdown progress
	EventPhaseChanged  EventType = "phase.changed"
	EventTick          EventType = "tick"
	EventRoundComplete EventType = "round.complete"

	// Error events
	EventError EventType = "error"
)

// Source constants identify the origin of events.
const (
	SourceController = "controller"
	SourceCLI        = "cli"
)

// Session end reasons.
const (
	ReasonCompleted = "completed"
	ReasonCancelled = "cancelled"
	ReasonStopped   = "stopped"
)

// Event is the base interface for all events in the system.
type Event interface {
	Type() EventType
	Timestamp() time.Time
	Source() string
}

// BaseEvent provides the common fields for all events.
type BaseEvent struct {
	EventType EventType `json:"type"`
	Time      time.Time `json:"timestamp"`
	Src       string    `json:"source"`
}

// Type returns the event type.
func (e BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// Source returns the origin of the event.
func (e BaseEvent) Source() string {
	return e.Src
}

// LoopStartEvent is emitted when the controller loop starts.
type LoopStartEvent struct {
	BaseEvent
}

// LoopStopEvent is emitted when the controller loop exits.
type LoopStopEvent struct {
	BaseEvent
	Reason string `json:"reason,omitempty"`
}

// ConfigUpdatedEvent is emitted after the configuration was edited.
type ConfigUpdatedEvent struct {
	BaseEvent
	Field  string                 `json:"field,omitempty"`
	Config interval.Configuration `json:"config"`
}

// SessionStartEvent is emitted when a session starts and the preset is captured.
type SessionStartEvent struct {
	BaseEvent
	SessionID string          `json:"session_id"`
	Preset    interval.Preset `json:"preset"`
	Rounds    int             `json:"rounds"`
}

// SessionEndEvent is emitted when a session completes or is cancelled.
type SessionEndEvent struct {
	BaseEvent
	SessionID       string `json:"session_id"`
	Reason          string `json:"reason"`
	RoundsCompleted int    `json:"rounds_completed"`
	DurationMs      int64  `json:"duration_ms"`
	RoundCount      string `json:"round_count"`
}

// PhaseChangedEvent is emitted each time a rest or round countdown begins.
// The cue player plays once per PhaseChangedEvent.
type PhaseChangedEvent struct {
	BaseEvent
	From       interval.Phase    `json:"from"`
	Phase      interval.Phase    `json:"phase"`
	Remaining  interval.Duration `json:"remaining"`
	RoundsLeft int               `json:"rounds_left"`
}

// TickEvent is emitted after every one-second advance of a running session.
type TickEvent struct {
	BaseEvent
	Phase      interval.Phase    `json:"phase"`
	Remaining  interval.Duration `json:"remaining"`
	RoundsLeft int               `json:"rounds_left"`
}

// RoundCompleteEvent is emitted at every round boundary.
type RoundCompleteEvent struct {
	BaseEvent
	RoundsLeft int `json:"rounds_left"`
}

// Severity constants for error events.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// ErrorEvent is emitted for any error condition.
type ErrorEvent struct {
	BaseEvent
	Message  string            `json:"message"`
	Severity string            `json:"severity"`
	Context  map[string]string `json:"context,omitempty"`
}

// NewEvent creates a BaseEvent with the given type and source.
func NewEvent(eventType EventType, source string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Src:       source,
	}
}

// NewControllerEvent creates a BaseEvent with the controller as the source.
func NewControllerEvent(eventType EventType) BaseEvent {
	return NewEvent(eventType, SourceController)
}
