package interval

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxRoundCount bounds the parsed round count.
const MaxRoundCount = 999

// Phase identifies the active countdown.
type Phase int

// Phases. PhaseNone means no countdown is active.
const (
	PhaseNone Phase = iota
	PhaseRest
	PhaseRound
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRest:
		return "rest"
	case PhaseRound:
		return "round"
	default:
		return "none"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name produced by MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "rest":
		*p = PhaseRest
	case "round":
		*p = PhaseRound
	case "none", "":
		*p = PhaseNone
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

// Target selects which duration a Field edits.
type Target int

// Configurable durations.
const (
	TargetRest Target = iota
	TargetRound
)

func (t Target) String() string {
	if t == TargetRest {
		return "rest"
	}
	return "round"
}

// Unit selects the minutes or seconds half of a Duration.
type Unit int

// Duration units.
const (
	UnitMinutes Unit = iota
	UnitSeconds
)

func (u Unit) String() string {
	if u == UnitMinutes {
		return "minutes"
	}
	return "seconds"
}

// Field addresses one editable number of the configuration.
type Field struct {
	Target Target
	Unit   Unit
}

func (f Field) String() string {
	return f.Target.String() + "." + f.Unit.String()
}

// Configuration is the user-editable timer setup.
// RoundCount is kept as entered and parsed at each comparison.
type Configuration struct {
	Rest       Duration `json:"rest"`
	Round      Duration `json:"round"`
	RoundCount string   `json:"round_count"`
}

// Rounds returns the parsed round count.
func (c Configuration) Rounds() int {
	return ParseRoundCount(c.RoundCount)
}

// Preset is the configuration captured when a session starts.
type Preset Configuration

// Rounds returns the parsed round count of the preset.
func (p Preset) Rounds() int {
	return ParseRoundCount(p.RoundCount)
}

// State is a point-in-time copy of a session.
type State struct {
	Running    bool          `json:"running"`
	Phase      Phase         `json:"phase"`
	Remaining  Duration      `json:"remaining"`
	RoundsLeft int           `json:"rounds_left"`
	Config     Configuration `json:"config"`
	Preset     Preset        `json:"preset"`
}

// ParseRoundCount parses a round count, defaulting to 0 for anything that is
// not an integer. The result is bounded to [0, MaxRoundCount].
func ParseRoundCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	if n > MaxRoundCount {
		return MaxRoundCount
	}
	return n
}

// truncateInput keeps at most two leading digits of a non-negative value.
func truncateInput(v int) int {
	if v < 0 {
		return 0
	}
	for v > MaxFieldValue {
		v /= 10
	}
	return v
}

// parseInput keeps the first two characters of text and parses them,
// defaulting to 0.
func parseInput(text string) int {
	r := []rune(strings.TrimSpace(text))
	if len(r) > 2 {
		r = r[:2]
	}
	n, err := strconv.Atoi(string(r))
	if err != nil {
		return 0
	}
	return n
}
