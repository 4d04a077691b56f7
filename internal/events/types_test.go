package events

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/npratt/gong/internal/interval"
)

func TestNewEvent(t *testing.T) {
	before := time.Now()
	ev := NewEvent(EventError, SourceCLI)
	after := time.Now()

	if ev.Type() != EventError {
		t.Errorf("Type() = %s, want %s", ev.Type(), EventError)
	}
	if ev.Source() != SourceCLI {
		t.Errorf("Source() = %s, want %s", ev.Source(), SourceCLI)
	}
	if ev.Timestamp().Before(before) || ev.Timestamp().After(after) {
		t.Errorf("Timestamp() = %v, want between %v and %v", ev.Timestamp(), before, after)
	}
}

func TestNewControllerEvent(t *testing.T) {
	ev := NewControllerEvent(EventTick)
	if ev.Source() != SourceController {
		t.Errorf("Source() = %s, want %s", ev.Source(), SourceController)
	}
}

func TestEventsImplementInterface(t *testing.T) {
	var _ Event = &LoopStartEvent{}
	var _ Event = &LoopStopEvent{}
	var _ Event = &ConfigUpdatedEvent{}
	var _ Event = &SessionStartEvent{}
	var _ Event = &SessionEndEvent{}
	var _ Event = &PhaseChangedEvent{}
	var _ Event = &TickEvent{}
	var _ Event = &RoundCompleteEvent{}
	var _ Event = &ErrorEvent{}
}

func TestPhaseChangedEventJSON(t *testing.T) {
	ev := &PhaseChangedEvent{
		BaseEvent:  NewControllerEvent(EventPhaseChanged),
		From:       interval.PhaseRest,
		Phase:      interval.PhaseRound,
		Remaining:  interval.Duration{Minutes: 1, Seconds: 30},
		RoundsLeft: 2,
	}

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	for _, want := range []string{
		`"type":"phase.changed"`,
		`"source":"controller"`,
		`"from":"rest"`,
		`"phase":"round"`,
		`"remaining":{"minutes":1,"seconds":30}`,
		`"rounds_left":2`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s missing %s", s, want)
		}
	}
}

func TestErrorEventOmitsEmptyContext(t *testing.T) {
	ev := &ErrorEvent{
		BaseEvent: NewControllerEvent(EventError),
		Message:   "cue failed",
		Severity:  SeverityWarning,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(data), "context") {
		t.Errorf("empty context should be omitted: %s", data)
	}
}
