package main

import (
	"context"
	"fmt"
	"io"

	"github.com/npratt/gong/internal/events"
)

// sessionTimer is the part of the controller headless mode needs.
type sessionTimer interface {
	Start() (bool, error)
}

// runHeadless starts a session and writes each event as a line until the
// session ends, the channel closes or ctx is done. Ticks are not printed.
func runHeadless(ctx context.Context, timer sessionTimer, ch <-chan events.Event, w io.Writer) error {
	if _, err := timer.Start(); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			// Whatever the shutdown produced is already queued.
			drainEvents(ch, w)
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			if writeEvent(w, ev) {
				return nil
			}
		}
	}
}

// writeEvent prints ev unless it is a tick and reports whether it ended the session.
func writeEvent(w io.Writer, ev events.Event) bool {
	if _, tick := ev.(*events.TickEvent); !tick {
		if text := events.FormatWithTimestamp(ev); text != "" {
			_, _ = fmt.Fprintln(w, text)
		}
	}
	_, ended := ev.(*events.SessionEndEvent)
	return ended
}

func drainEvents(ch <-chan events.Event, w io.Writer) {
	for {
		select {
		case ev, ok := <-ch:
			if !ok || writeEvent(w, ev) {
				return
			}
		default:
			return
		}
	}
}
