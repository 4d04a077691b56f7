package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npratt/gong/internal/daemon"
)

func TestPrintStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  daemon.StatusResponse
		want    []string
		notWant string
	}{
		{
			name:    "running",
			status:  daemon.StatusResponse{Status: "running", Running: true, SessionID: "abc-123", Phase: "round", Remaining: "00:42", RoundsLeft: 2, Rest: "00:30", Round: "01:30", RoundCount: "3"},
			want:    []string{"Status: running", "Session: abc-123", "Phase: round 00:42 (2 left)", "rounds 3"},
			notWant: "Cancelled",
		},
		{
			name:    "cancelled",
			status:  daemon.StatusResponse{Status: "idle", Phase: "rest", Remaining: "00:12"},
			want:    []string{"Status: idle", "Cancelled in rest at 00:12"},
			notWant: "Phase:",
		},
		{
			name:    "idle",
			status:  daemon.StatusResponse{Status: "idle", Phase: "none", Remaining: "01:30"},
			want:    []string{"Status: idle"},
			notWant: "Session:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printStatus(&buf, &tt.status)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			if strings.Contains(out, tt.notWant) {
				t.Errorf("output should not contain %q:\n%s", tt.notWant, out)
			}
		})
	}
}
