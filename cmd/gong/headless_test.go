package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/npratt/gong/internal/controller"
	"github.com/npratt/gong/internal/events"
	"github.com/npratt/gong/internal/interval"
	"github.com/npratt/gong/internal/testutil"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startController(t *testing.T, cfg interval.Configuration) (*controller.Controller, *testutil.FakeClock, <-chan events.Event) {
	t.Helper()
	router := events.NewRouter(100)
	ch := router.Subscribe()
	clk := testutil.NewFakeClock()
	ctrl := controller.New(cfg, router, controller.WithClock(clk))

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = ctrl.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-ctrl.Done()
		router.Close()
	})
	return ctrl, clk, ch
}

func TestRunHeadless_CompletesSession(t *testing.T) {
	ctrl, clk, ch := startController(t, interval.Configuration{
		Rest:       interval.Duration{Seconds: 1},
		Round:      interval.Duration{Seconds: 1},
		RoundCount: "1",
	})
	out := &lockedBuffer{}

	done := make(chan error, 1)
	go func() { done <- runHeadless(context.Background(), ctrl, ch, out) }()

	for i := 0; i < 2; i++ {
		if !clk.WaitForTimers(1, time.Second) {
			t.Fatalf("tick %d was not scheduled", i+1)
		}
		clk.Advance(time.Second)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runHeadless returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runHeadless did not return at session end")
	}

	text := out.String()
	for _, want := range []string{"session started: 1 round", "phase → rest 00:01", "phase → round 00:01", "session completed"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunHeadless_CancelledContextPrintsSessionEnd(t *testing.T) {
	ctrl, clk, ch := startController(t, interval.Configuration{
		Round:      interval.Duration{Minutes: 1},
		RoundCount: "3",
	})
	out := &lockedBuffer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- runHeadless(ctx, ctrl, ch, out) }()

	if !clk.WaitForTimers(1, time.Second) {
		t.Fatal("session was not started")
	}
	// What the graceful shutdown does on a signal.
	if ok, err := ctrl.Cancel(); !ok || err != nil {
		t.Fatalf("Cancel() = %v, %v", ok, err)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("runHeadless returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runHeadless did not return after cancel")
	}
	if !strings.Contains(out.String(), "session cancelled") {
		t.Errorf("output should report the cancelled session:\n%s", out.String())
	}
}

type failingTimer struct{}

func (failingTimer) Start() (bool, error) { return false, controller.ErrStopped }

func TestRunHeadless_StartError(t *testing.T) {
	err := runHeadless(context.Background(), failingTimer{}, nil, &bytes.Buffer{})
	if !errors.Is(err, controller.ErrStopped) {
		t.Errorf("err = %v, want ErrStopped", err)
	}
}

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer

	if writeEvent(&buf, &events.TickEvent{BaseEvent: events.NewControllerEvent(events.EventTick)}) {
		t.Error("tick should not end the session")
	}
	if buf.Len() != 0 {
		t.Errorf("ticks should not be printed, got %q", buf.String())
	}

	end := &events.SessionEndEvent{
		BaseEvent: events.NewControllerEvent(events.EventSessionEnd),
		Reason:    events.ReasonCompleted,
	}
	if !writeEvent(&buf, end) {
		t.Error("session end should end the session")
	}
	if !strings.Contains(buf.String(), "session completed") {
		t.Errorf("output = %q", buf.String())
	}
}
