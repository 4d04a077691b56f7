package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/gong/internal/events"
)

// channelClosedMsg signals that the event channel was closed.
type channelClosedMsg struct{}

// waitForEvent creates a command that waits for the next event from the channel.
// Returns channelClosedMsg if the channel is closed.
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return channelClosedMsg{}
		}
		return eventMsg(event)
	}
}

// Update implements tea.Model. It handles all message types and updates the model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		m.handleEvent(events.Event(msg))
		return m, waitForEvent(m.eventChan)

	case channelClosedMsg:
		slog.Info("event channel closed, exiting TUI")
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		if m.running() {
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
}

// handleKey processes keyboard input for the current mode.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.running() {
		return m.handleRunningKey(msg)
	}
	return m.handleEditKey(msg)
}

func (m model) handleRunningKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.RunQuit):
		return m.quit()
	case key.Matches(msg, keys.Cancel):
		_, err := m.timer.Cancel()
		m.setErr(err)
		m.refresh()
		m.syncInputs()
	}
	return m, nil
}

func (m model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m.quit()

	case key.Matches(msg, keys.Start):
		_, err := m.timer.Start()
		m.setErr(err)
		m.refresh()
		return m, nil

	case key.Matches(msg, keys.Reset):
		_, err := m.timer.Reset()
		m.setErr(err)
		m.refresh()
		m.syncInputs()
		return m, nil

	case key.Matches(msg, keys.Next):
		return m, m.setFocus(m.focus + 1)

	case key.Matches(msg, keys.Prev):
		return m, m.setFocus(m.focus - 1)
	}

	// Only digits reach the fields.
	if msg.Type == tea.KeyRunes && !allDigits(msg.Runes) {
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	if m.selected && msg.Type == tea.KeyRunes {
		m.inputs[m.focus].SetValue("")
	}
	m.selected = false

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.applyInput(m.focus, after)
	}
	return m, cmd
}

// applyInput sends an edited field to the timer.
func (m *model) applyInput(field int, text string) {
	var err error
	if field == fieldRounds {
		_, err = m.timer.SetRoundCount(text)
	} else {
		_, err = m.timer.ConfigureText(fieldTargets[field], text)
	}
	m.setErr(err)
	m.refresh()
}

// handleEvent records an event and re-reads the timer state.
func (m *model) handleEvent(event events.Event) {
	m.refresh()

	switch e := event.(type) {
	case *events.TickEvent:
		return
	case *events.SessionEndEvent:
		m.syncInputs()
	case *events.ConfigUpdatedEvent:
		if e.Field == "reset" {
			m.syncInputs()
		}
	}
	m.lastEvent = events.Format(event)
}

func (m model) quit() (tea.Model, tea.Cmd) {
	if m.onQuit != nil {
		m.onQuit()
	}
	return m, tea.Quit
}

func (m *model) setErr(err error) {
	if err != nil {
		slog.Warn("timer operation failed", "error", err)
	}
	m.err = err
}

func allDigits(rs []rune) bool {
	for _, r := range rs {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(rs) > 0
}
