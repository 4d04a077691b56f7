package tui

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/npratt/gong/internal/events"
)

// isTerminal returns true if both stdout and stdin are TTYs.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// runSimple provides line-by-line output for non-interactive environments.
// Nobody can press enter, so it starts the session itself and returns when
// the session ends, the channel closes or an interrupt arrives. An interrupt
// cancels the running session.
func (t *TUI) runSimple() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if _, err := t.timer.Start(); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	if !t.timer.Snapshot().Running {
		// Zero rounds: the session ended during Start.
		t.printPending()
		return nil
	}

	for {
		select {
		case <-sigChan:
			_, _ = t.timer.Cancel()
			t.printPending()
			return nil
		case event, ok := <-t.eventChan:
			if !ok {
				return nil
			}
			if t.printEvent(event) {
				return nil
			}
		}
	}
}

// printEvent writes one event and reports whether it ended the session.
func (t *TUI) printEvent(event events.Event) bool {
	if _, isTick := event.(*events.TickEvent); !isTick {
		if text := events.FormatWithTimestamp(event); text != "" {
			_, _ = fmt.Fprintln(t.out, text)
		}
	}
	_, ended := event.(*events.SessionEndEvent)
	return ended
}

// printPending flushes events already queued on the channel.
func (t *TUI) printPending() {
	for {
		select {
		case event, ok := <-t.eventChan:
			if !ok || t.printEvent(event) {
				return
			}
		default:
			return
		}
	}
}
