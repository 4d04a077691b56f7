package cue

import (
	"strconv"
	"strings"

	"github.com/npratt/gong/internal/events"
)

// Vars describes the phase being announced.
type Vars struct {
	Phase      string
	Remaining  string
	RoundsLeft int
}

// VarsFromEvent builds Vars from a phase change.
func VarsFromEvent(e *events.PhaseChangedEvent) Vars {
	return Vars{
		Phase:      e.Phase.String(),
		Remaining:  e.Remaining.String(),
		RoundsLeft: e.RoundsLeft,
	}
}

// ExpandArgs substitutes {{.Phase}}, {{.Remaining}} and {{.RoundsLeft}} in
// each argument. Replacement is single-pass, so substituted values are never
// expanded again.
func ExpandArgs(args []string, vars Vars) []string {
	r := strings.NewReplacer(
		"{{.Phase}}", vars.Phase,
		"{{.Remaining}}", vars.Remaining,
		"{{.RoundsLeft}}", strconv.Itoa(vars.RoundsLeft),
	)
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = r.Replace(a)
	}
	return out
}
