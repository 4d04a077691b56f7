package events

import (
	"encoding/json"
	"fmt"

	"github.com/npratt/gong/internal/interval"
)

// eventEnvelope is used for initial JSON parsing to determine event type.
type eventEnvelope struct {
	Type EventType `json:"type"`
}

// ParseEvent parses a JSON line into a typed Event.
// Returns nil with no error for unknown event types so newer logs stay readable.
func ParseEvent(line []byte) (Event, error) {
	var envelope eventEnvelope
	if err := json.Unmarshal(line, &envelope); err != nil {
		return nil, err
	}

	var ev Event
	switch envelope.Type {
	case EventLoopStart:
		ev = &LoopStartEvent{}
	case EventLoopStop:
		ev = &LoopStopEvent{}
	case EventConfigUpdated:
		ev = &ConfigUpdatedEvent{}
	case EventSessionStart:
		ev = &SessionStartEvent{}
	case EventSessionEnd:
		ev = &SessionEndEvent{}
	case EventPhaseChanged:
		ev = &PhaseChangedEvent{}
	case EventTick:
		ev = &TickEvent{}
	case EventRoundComplete:
		ev = &RoundCompleteEvent{}
	case EventError:
		ev = &ErrorEvent{}
	default:
		return nil, nil
	}

	if err := json.Unmarshal(line, ev); err != nil {
		return nil, fmt.Errorf("parse %s event: %w", envelope.Type, err)
	}
	return ev, nil
}

// PhaseOf returns the countdown phase carried by an event, if any.
func PhaseOf(ev Event) (interval.Phase, bool) {
	switch e := ev.(type) {
	case *PhaseChangedEvent:
		return e.Phase, true
	case *TickEvent:
		return e.Phase, true
	default:
		return interval.PhaseNone, false
	}
}
