package events

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

const (
	maxTextLength     = 200
	truncateIndicator = "..."
)

// Format converts an event to a human-readable string for display.
// Returns empty string for nil or unknown event types.
func Format(event Event) string {
	if event == nil {
		return ""
	}

	switch e := event.(type) {
	case *LoopStartEvent:
		return "timer ready"
	case *LoopStopEvent:
		return formatLoopStop(e)
	case *ConfigUpdatedEvent:
		return formatConfigUpdated(e)
	case *SessionStartEvent:
		return formatSessionStart(e)
	case *SessionEndEvent:
		return formatSessionEnd(e)
	case *PhaseChangedEvent:
		return formatPhaseChanged(e)
	case *TickEvent:
		return fmt.Sprintf("%s %s", e.Phase, e.Remaining)
	case *RoundCompleteEvent:
		return formatRoundComplete(e)
	case *ErrorEvent:
		return formatError(e)
	default:
		return ""
	}
}

// FormatWithTimestamp formats an event with a timestamp prefix.
// Used for the events command and fallback output.
func FormatWithTimestamp(event Event) string {
	if event == nil {
		return ""
	}
	ts := event.Timestamp().Format("15:04:05")
	detail := Format(event)
	if detail == "" {
		return fmt.Sprintf("[%s] %s", ts, event.Type())
	}
	return fmt.Sprintf("[%s] %s", ts, detail)
}

func formatLoopStop(e *LoopStopEvent) string {
	reason := SafeString(e.Reason)
	if reason != "" {
		return fmt.Sprintf("timer stopped: %s", reason)
	}
	return "timer stopped"
}

func formatConfigUpdated(e *ConfigUpdatedEvent) string {
	c := e.Config
	detail := fmt.Sprintf("rest %s, round %s, rounds %q", c.Rest, c.Round, SafeString(c.RoundCount))
	if e.Field != "" {
		return fmt.Sprintf("config %s: %s", SafeString(e.Field), detail)
	}
	return "config: " + detail
}

func formatSessionStart(e *SessionStartEvent) string {
	return fmt.Sprintf("session started: %d %s, rest %s, round %s",
		e.Rounds, plural(e.Rounds, "round", "rounds"), e.Preset.Rest, e.Preset.Round)
}

func formatSessionEnd(e *SessionEndEvent) string {
	reason := SafeString(e.Reason)
	if reason == "" {
		reason = "ended"
	}
	return fmt.Sprintf("session %s: %d %s completed",
		reason, e.RoundsCompleted, plural(e.RoundsCompleted, "round", "rounds"))
}

func formatPhaseChanged(e *PhaseChangedEvent) string {
	return fmt.Sprintf("phase → %s %s (%d %s left)",
		e.Phase, e.Remaining, e.RoundsLeft, plural(e.RoundsLeft, "round", "rounds"))
}

func formatRoundComplete(e *RoundCompleteEvent) string {
	return fmt.Sprintf("round complete, %d left", e.RoundsLeft)
}

func formatError(e *ErrorEvent) string {
	msg := Truncate(e.Message, maxTextLength)
	prefix := "error"
	if e.Severity == SeverityWarning {
		prefix = "warning"
	}
	if len(e.Context) == 0 {
		return fmt.Sprintf("%s: %s", prefix, msg)
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+SafeString(e.Context[k]))
	}
	return fmt.Sprintf("%s: %s (%s)", prefix, msg, strings.Join(parts, " "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Truncate shortens text to maxLen, adding indicator if truncated.
func Truncate(s string, maxLen int) string {
	s = SafeString(s)
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= len(truncateIndicator) {
		return truncateIndicator
	}
	return s[:maxLen-len(truncateIndicator)] + truncateIndicator
}

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// SafeString sanitizes a string for display by removing control characters
// and limiting newlines.
func SafeString(s string) string {
	s = StripANSI(s)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == ' ' || !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	result := sb.String()
	for strings.Contains(result, "  ") {
		result = strings.ReplaceAll(result, "  ", " ")
	}
	return strings.TrimSpace(result)
}
