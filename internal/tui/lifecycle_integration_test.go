package tui

import (
	"bytes"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/npratt/gong/internal/events"
	"github.com/npratt/gong/internal/interval"
)

// TestTUILifecycleSmoke runs the full bubbletea program headlessly: render
// the editor, start a session, cancel it and quit.
func TestTUILifecycleSmoke(t *testing.T) {
	eventChan := make(chan events.Event, 10)
	eventChan <- &events.LoopStartEvent{
		BaseEvent: events.NewControllerEvent(events.EventLoopStart),
	}

	var quitCalled atomic.Bool
	timer := newFakeTimer(interval.Configuration{
		Rest:       interval.Duration{Seconds: 10},
		Round:      interval.Duration{Minutes: 1},
		RoundCount: "2",
	})
	m := newModel(timer, eventChan, func() { quitCalled.Store(true) })

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Rounds"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})

	fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	final, ok := fm.(model)
	if !ok {
		t.Fatalf("FinalModel type = %T", fm)
	}

	if !quitCalled.Load() {
		t.Error("quit callback was not invoked")
	}
	calls := timer.Calls()
	if !slices.Contains(calls, "start") || !slices.Contains(calls, "cancel") {
		t.Errorf("calls = %v, want start and cancel", calls)
	}
	if final.state.Running {
		t.Error("session should be cancelled")
	}
	if final.state.Phase != interval.PhaseRest {
		t.Errorf("phase = %v, want rest kept after cancel", final.state.Phase)
	}
}

// TestTUILifecycle_ChannelClose verifies the program exits when the event
// stream ends.
func TestTUILifecycle_ChannelClose(t *testing.T) {
	eventChan := make(chan events.Event)
	m := newModel(newFakeTimer(interval.DefaultConfiguration), eventChan, nil)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))
	close(eventChan)

	fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	if fm == nil {
		t.Fatal("FinalModel returned nil")
	}
}
