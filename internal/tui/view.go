package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/npratt/gong/internal/interval"
)

const (
	minWidth  = 40
	minHeight = 14
)

// bigGlyphs is a three-row block font for the clock.
var bigGlyphs = map[rune][3]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {"▀█ ", " █ ", "▀▀▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", " ▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
	':': {" ", "▀", "▀"},
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.width < minWidth || m.height < minHeight {
		return m.renderTooSmall()
	}

	sections := []string{
		m.renderHeader(),
		m.renderDivider(),
		m.renderClock(),
	}
	if !m.running() {
		sections = append(sections, "", m.renderEditor())
	}
	sections = append(sections, m.renderDivider(), m.renderFooter())

	rendered := styles.Container.
		Width(safeWidth(m.width - 2)).
		Render(strings.Join(sections, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, rendered)
}

func (m model) renderTooSmall() string {
	return fmt.Sprintf("Terminal too small (%dx%d). Need %dx%d minimum.",
		m.width, m.height, minWidth, minHeight)
}

func (m model) renderHeader() string {
	status := "ready"
	if m.running() {
		status = m.spinner.View() + " running"
	}
	return styles.Title.Render("gong") + "  " + styles.Status.Render(status)
}

func (m model) renderDivider() string {
	return styles.Divider.Render(strings.Repeat("─", safeWidth(m.width-6)))
}

// phaseLabel names the active countdown: "Rest", "Round N" with N rounds
// left, or "Ready" when idle.
func phaseLabel(st interval.State) string {
	switch {
	case st.Phase == interval.PhaseRest:
		return "Rest"
	case st.Running || st.Phase == interval.PhaseRound:
		return fmt.Sprintf("Round %d", st.RoundsLeft)
	default:
		return "Ready"
	}
}

// clockStyle picks amber for rest and green otherwise.
func clockStyle(p interval.Phase) lipgloss.Style {
	if p == interval.PhaseRest {
		return styles.RestClock
	}
	return styles.RoundClock
}

func (m model) renderClock() string {
	style := clockStyle(m.state.Phase)
	label := styles.PhaseLabel.Foreground(style.GetForeground()).Render(phaseLabel(m.state))
	return label + "\n\n" + style.Render(renderBig(m.state.Remaining.String()))
}

// renderBig draws s in the block font. Runes without a glyph are skipped.
func renderBig(s string) string {
	var rows [3][]string
	for _, r := range s {
		g, ok := bigGlyphs[r]
		if !ok {
			continue
		}
		for i := range rows {
			rows[i] = append(rows[i], g[i])
		}
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, " ")
	}
	return strings.Join(lines, "\n")
}

func (m model) renderEditor() string {
	field := func(i int) string {
		style := styles.FieldBlurred
		if i == m.focus {
			style = styles.FieldFocused
		}
		return style.Render(m.inputs[i].View())
	}

	lines := []string{
		styles.FieldLabel.Render("Rest") + field(fieldRestMinutes) + ":" + field(fieldRestSeconds),
		styles.FieldLabel.Render("Round") + field(fieldRoundMinutes) + ":" + field(fieldRoundSeconds),
		styles.FieldLabel.Render("Rounds") + field(fieldRounds),
	}
	return strings.Join(lines, "\n")
}

func (m model) renderFooter() string {
	var lines []string
	if m.err != nil {
		lines = append(lines, styles.Error.Render(m.fitLine("error: "+m.err.Error())))
	} else if m.lastEvent != "" {
		lines = append(lines, styles.Event.Render(m.fitLine(m.lastEvent)))
	}

	if m.running() {
		lines = append(lines, m.help.View(runKeys{keys}))
	} else {
		lines = append(lines, m.help.View(editKeys{keys}))
	}
	return styles.Footer.Render(strings.Join(lines, "\n"))
}

// fitLine cuts s to the content width so a long message cannot wrap the footer.
func (m model) fitLine(s string) string {
	return truncate.StringWithTail(s, uint(safeWidth(m.width-6)), "…")
}

// safeWidth clamps a computed width to a usable minimum.
func safeWidth(w int) int {
	if w < 1 {
		return 1
	}
	return w
}
