package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/npratt/gong/internal/interval"
	"github.com/npratt/gong/internal/testutil"
)

func TestParseEvent_AllTypes(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	base := func(et EventType) BaseEvent {
		return BaseEvent{EventType: et, Time: now, Src: SourceController}
	}
	cfg := interval.Configuration{
		Rest:       interval.Duration{Seconds: 30},
		Round:      interval.Duration{Minutes: 1, Seconds: 30},
		RoundCount: "3",
	}

	events := []Event{
		&LoopStartEvent{BaseEvent: base(EventLoopStart)},
		&LoopStopEvent{BaseEvent: base(EventLoopStop), Reason: "shutdown"},
		&ConfigUpdatedEvent{BaseEvent: base(EventConfigUpdated), Field: "rest.seconds", Config: cfg},
		&SessionStartEvent{BaseEvent: base(EventSessionStart), Preset: interval.Preset(cfg), Rounds: 3},
		&SessionEndEvent{BaseEvent: base(EventSessionEnd), Reason: ReasonCompleted, RoundsCompleted: 3, DurationMs: 360000, RoundCount: "3"},
		&PhaseChangedEvent{BaseEvent: base(EventPhaseChanged), From: interval.PhaseNone, Phase: interval.PhaseRest, Remaining: cfg.Rest, RoundsLeft: 3},
		&TickEvent{BaseEvent: base(EventTick), Phase: interval.PhaseRound, Remaining: interval.Duration{Minutes: 1, Seconds: 29}, RoundsLeft: 3},
		&RoundCompleteEvent{BaseEvent: base(EventRoundComplete), RoundsLeft: 2},
		&ErrorEvent{BaseEvent: base(EventError), Message: "boom", Severity: SeverityError, Context: map[string]string{"cue": "command"}},
	}

	for _, want := range events {
		t.Run(string(want.Type()), func(t *testing.T) {
			data, err := json.Marshal(want)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			got, err := ParseEvent(data)
			if err != nil {
				t.Fatalf("ParseEvent: %v", err)
			}
			if got == nil {
				t.Fatal("ParseEvent returned nil")
			}
			if got.Type() != want.Type() {
				t.Errorf("Type() = %s, want %s", got.Type(), want.Type())
			}
			if !got.Timestamp().Equal(now) {
				t.Errorf("Timestamp() = %v, want %v", got.Timestamp(), now)
			}
			if Format(got) != Format(want) {
				t.Errorf("Format after parse = %q, want %q", Format(got), Format(want))
			}
		})
	}
}

func TestParseEvent_UnknownType(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"future.event","timestamp":"2024-01-15T10:30:00Z"}`))
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if ev != nil {
		t.Errorf("expected nil event for unknown type, got %T", ev)
	}
}

func TestParseEvent_InvalidJSON(t *testing.T) {
	if _, err := ParseEvent([]byte(`{not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParseEvent_InvalidPhase(t *testing.T) {
	_, err := ParseEvent([]byte(`{"type":"tick","phase":"lunch"}`))
	if err == nil {
		t.Error("expected error for unknown phase name")
	}
}

func TestPhaseOf(t *testing.T) {
	tests := []struct {
		name   string
		event  Event
		phase  interval.Phase
		hasOne bool
	}{
		{"phase changed", &PhaseChangedEvent{Phase: interval.PhaseRest}, interval.PhaseRest, true},
		{"tick", &TickEvent{Phase: interval.PhaseRound}, interval.PhaseRound, true},
		{"session end", &SessionEndEvent{}, interval.PhaseNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phase, ok := PhaseOf(tt.event)
			if phase != tt.phase || ok != tt.hasOne {
				t.Errorf("PhaseOf = (%v, %v), want (%v, %v)", phase, ok, tt.phase, tt.hasOne)
			}
		})
	}
}

func TestParseEvent_SampleSession(t *testing.T) {
	want := []string{
		"session started: 1 round, rest 00:01, round 00:01",
		"phase → rest 00:01 (1 round left)",
		"rest 00:00",
		"phase → round 00:01 (1 round left)",
		"round 00:00",
		"round complete, 0 left",
		"session completed: 1 round completed",
	}

	for i, line := range testutil.SampleSessionLines {
		ev, err := ParseEvent([]byte(line))
		if err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if got := Format(ev); got != want[i] {
			t.Errorf("line %d: Format() = %q, want %q", i, got, want[i])
		}
	}

	start, err := ParseEvent([]byte(testutil.SampleSessionStart))
	if err != nil {
		t.Fatal(err)
	}
	end, err := ParseEvent([]byte(testutil.SampleSessionEnd))
	if err != nil {
		t.Fatal(err)
	}
	if id := start.(*SessionStartEvent).SessionID; id != testutil.SampleSessionID {
		t.Errorf("start SessionID = %q, want %q", id, testutil.SampleSessionID)
	}
	if id := end.(*SessionEndEvent).SessionID; id != testutil.SampleSessionID {
		t.Errorf("end SessionID = %q, want %q", id, testutil.SampleSessionID)
	}
}
