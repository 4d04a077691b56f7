package testutil

import "strings"

// Sample event log lines for a one-round session with one-second rest and
// round, as written by the event log sink.

// SampleSessionID identifies the sample session.
const SampleSessionID = "5f0c2a1e-8d4b-4c3a-9e7f-1b2d3c4e5f60"

// SampleSessionStart opens the session.
var SampleSessionStart = `{"type":"session.start","timestamp":"2026-03-01T10:00:00Z","source":"controller","session_id":"5f0c2a1e-8d4b-4c3a-9e7f-1b2d3c4e5f60","preset":{"rest":{"minutes":0,"seconds":1},"round":{"minutes":0,"seconds":1},"round_count":"1"},"rounds":1}`

// SamplePhaseRest enters the rest phase.
var SamplePhaseRest = `{"type":"phase.changed","timestamp":"2026-03-01T10:00:00Z","source":"controller","from":"none","phase":"rest","remaining":{"minutes":0,"seconds":1},"rounds_left":1}`

// SampleTickRest counts the rest down to zero.
var SampleTickRest = `{"type":"tick","timestamp":"2026-03-01T10:00:01Z","source":"controller","phase":"rest","remaining":{"minutes":0,"seconds":0},"rounds_left":1}`

// SamplePhaseRound enters the round phase.
var SamplePhaseRound = `{"type":"phase.changed","timestamp":"2026-03-01T10:00:01Z","source":"controller","from":"rest","phase":"round","remaining":{"minutes":0,"seconds":1},"rounds_left":1}`

// SampleTickRound counts the round down to zero.
var SampleTickRound = `{"type":"tick","timestamp":"2026-03-01T10:00:02Z","source":"controller","phase":"round","remaining":{"minutes":0,"seconds":0},"rounds_left":0}`

// SampleRoundComplete marks the round boundary.
var SampleRoundComplete = `{"type":"round.complete","timestamp":"2026-03-01T10:00:02Z","source":"controller","rounds_left":0}`

// SampleSessionEnd closes the session.
var SampleSessionEnd = `{"type":"session.end","timestamp":"2026-03-01T10:00:02Z","source":"controller","session_id":"5f0c2a1e-8d4b-4c3a-9e7f-1b2d3c4e5f60","reason":"completed","rounds_completed":1,"duration_ms":2000,"round_count":"1"}`

// SampleSessionLines is the whole session in order.
var SampleSessionLines = []string{
	SampleSessionStart,
	SamplePhaseRest,
	SampleTickRest,
	SamplePhaseRound,
	SampleTickRound,
	SampleRoundComplete,
	SampleSessionEnd,
}

// SampleEventLog is SampleSessionLines as a JSONL file body.
func SampleEventLog() string {
	return strings.Join(SampleSessionLines, "\n") + "\n"
}
