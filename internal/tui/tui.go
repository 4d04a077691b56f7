// Package tui provides the terminal front end for gong using bubbletea.
package tui

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/gong/internal/events"
	"github.com/npratt/gong/internal/interval"
)

// Timer is the controller surface the TUI drives.
type Timer interface {
	Snapshot() interval.State
	ConfigureText(f interval.Field, text string) (bool, error)
	SetRoundCount(text string) (bool, error)
	Start() (bool, error)
	Cancel() (bool, error)
	Reset() (bool, error)
}

// TUI is the terminal UI for the interval timer.
type TUI struct {
	timer     Timer
	eventChan <-chan events.Event
	onQuit    func()
	altScreen bool
	out       io.Writer
}

// Option configures the TUI.
type Option func(*TUI)

// New creates a new TUI for timer, redrawing on every event from eventChan.
func New(timer Timer, eventChan <-chan events.Event, opts ...Option) *TUI {
	t := &TUI{
		timer:     timer,
		eventChan: eventChan,
		altScreen: true,
		out:       os.Stdout,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithOnQuit sets the callback invoked when the user quits.
func WithOnQuit(fn func()) Option {
	return func(t *TUI) {
		t.onQuit = fn
	}
}

// WithAltScreen selects whether the TUI takes over the alternate screen.
func WithAltScreen(enabled bool) Option {
	return func(t *TUI) {
		t.altScreen = enabled
	}
}

// WithOutput sets where the line-by-line fallback writes.
func WithOutput(w io.Writer) Option {
	return func(t *TUI) {
		t.out = w
	}
}

// Run starts the TUI and blocks until it exits. Without a terminal it
// starts the session and prints events line by line instead.
func (t *TUI) Run() error {
	if !isTerminal() {
		return t.runSimple()
	}

	m := newModel(t.timer, t.eventChan, t.onQuit)

	var opts []tea.ProgramOption
	if t.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, opts...)
	_, err := p.Run()
	return err
}
