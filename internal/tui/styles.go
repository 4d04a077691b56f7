package tui

import "github.com/charmbracelet/lipgloss"

// Phase colours. Rest is amber; rounds and the idle display are green.
var (
	restColor  = lipgloss.Color("214")
	roundColor = lipgloss.Color("42")
)

// styles contains all lipgloss styles used by the TUI.
var styles = struct {
	// Layout styles
	Container lipgloss.Style
	Divider   lipgloss.Style

	// Header styles
	Title  lipgloss.Style
	Status lipgloss.Style

	// Clock styles
	RestClock  lipgloss.Style
	RoundClock lipgloss.Style
	PhaseLabel lipgloss.Style

	// Editor styles
	FieldLabel   lipgloss.Style
	FieldFocused lipgloss.Style
	FieldBlurred lipgloss.Style

	// Footer styles
	Footer lipgloss.Style
	Event  lipgloss.Style
	Error  lipgloss.Style
}{
	Container: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1),

	Divider: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	RestClock: lipgloss.NewStyle().
		Bold(true).
		Foreground(restColor),

	RoundClock: lipgloss.NewStyle().
		Bold(true).
		Foreground(roundColor),

	PhaseLabel: lipgloss.NewStyle().
		Bold(true),

	FieldLabel: lipgloss.NewStyle().
		Width(8).
		Foreground(lipgloss.Color("250")),

	FieldFocused: lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")),

	FieldBlurred: lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")),

	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Event: lipgloss.NewStyle().
		Foreground(lipgloss.Color("177")),

	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),
}
