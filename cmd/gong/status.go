package main

import (
	"fmt"
	"io"

	"github.com/npratt/gong/internal/daemon"
)

// printStatus writes a human-readable status report.
func printStatus(w io.Writer, s *daemon.StatusResponse) {
	_, _ = fmt.Fprintf(w, "Status: %s\n", s.Status)
	if s.Running {
		_, _ = fmt.Fprintf(w, "Phase: %s %s (%d left)\n", s.Phase, s.Remaining, s.RoundsLeft)
	} else if s.Phase != "none" && s.Phase != "" {
		_, _ = fmt.Fprintf(w, "Cancelled in %s at %s\n", s.Phase, s.Remaining)
	}
	if s.SessionID != "" {
		_, _ = fmt.Fprintf(w, "Session: %s\n", s.SessionID)
	}
	_, _ = fmt.Fprintf(w, "Config: rest %s, round %s, rounds %s\n", s.Rest, s.Round, s.RoundCount)
	_, _ = fmt.Fprintf(w, "Uptime: %s\n", s.Uptime)
	_, _ = fmt.Fprintf(w, "Started: %s\n", s.StartTime)
}
