package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/gong/internal/events"
	"github.com/npratt/gong/internal/interval"
)

// Editor field positions, in tab order.
const (
	fieldRestMinutes = iota
	fieldRestSeconds
	fieldRoundMinutes
	fieldRoundSeconds
	fieldRounds
	fieldCount
)

// fieldTargets maps the duration inputs to the configuration fields they edit.
var fieldTargets = [fieldRounds]interval.Field{
	{Target: interval.TargetRest, Unit: interval.UnitMinutes},
	{Target: interval.TargetRest, Unit: interval.UnitSeconds},
	{Target: interval.TargetRound, Unit: interval.UnitMinutes},
	{Target: interval.TargetRound, Unit: interval.UnitSeconds},
}

// model is the bubbletea model for the TUI.
type model struct {
	timer     Timer
	eventChan <-chan events.Event
	onQuit    func()

	// Last snapshot read from the timer.
	state interval.State

	// Editor
	inputs [fieldCount]textinput.Model
	focus  int
	// The focused value is selected: the next digit replaces it.
	selected bool

	// Decorations
	spinner   spinner.Model
	help      help.Model
	lastEvent string
	err       error

	width  int
	height int
}

// eventMsg wraps an event for the bubbletea message system.
type eventMsg events.Event

// newModel creates a model showing the timer's current snapshot.
func newModel(timer Timer, eventChan <-chan events.Event, onQuit func()) model {
	m := model{
		timer:     timer,
		eventChan: eventChan,
		onQuit:    onQuit,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 2
		ti.Width = 2
		ti.Placeholder = "00"
		if i == fieldRounds {
			ti.CharLimit = 3
			ti.Width = 3
			ti.Placeholder = "0"
		}
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()

	m.refresh()
	m.syncInputs()
	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.eventChan), textinput.Blink, m.spinner.Tick)
}

// refresh reads the latest snapshot from the timer.
func (m *model) refresh() {
	m.state = m.timer.Snapshot()
}

// syncInputs copies the configuration into the editor fields.
func (m *model) syncInputs() {
	c := m.state.Config
	m.inputs[fieldRestMinutes].SetValue(fmt.Sprintf("%02d", c.Rest.Minutes))
	m.inputs[fieldRestSeconds].SetValue(fmt.Sprintf("%02d", c.Rest.Seconds))
	m.inputs[fieldRoundMinutes].SetValue(fmt.Sprintf("%02d", c.Round.Minutes))
	m.inputs[fieldRoundSeconds].SetValue(fmt.Sprintf("%02d", c.Round.Seconds))
	m.inputs[fieldRounds].SetValue(c.RoundCount)
	m.selected = true
}

// setFocus moves editor focus to field i, wrapping around.
func (m *model) setFocus(i int) tea.Cmd {
	i = (i%fieldCount + fieldCount) % fieldCount
	m.inputs[m.focus].Blur()
	m.focus = i
	m.selected = true
	return m.inputs[i].Focus()
}

// running reports whether the last snapshot was counting down.
func (m model) running() bool {
	return m.state.Running
}
