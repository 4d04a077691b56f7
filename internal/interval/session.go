// Package interval implements the rest/round countdown state machine.
//
// A Session is driven entirely by its methods: Start captures the preset,
// Tick advances one second, Cancel stops without touching the clock values.
// It performs no I/O and is not safe for concurrent use; the controller
// package owns a Session from a single goroutine.
package interval

import "strconv"

// DefaultConfiguration is the setup a new timer starts with.
var DefaultConfiguration = Configuration{
	Rest:       Duration{Minutes: 0, Seconds: 30},
	Round:      Duration{Minutes: 1, Seconds: 30},
	RoundCount: "3",
}

// Outcome describes what a Start or Tick did.
type Outcome struct {
	// Counted is the phase whose countdown consumed the second.
	Counted Phase
	// RoundsCompleted counts round boundaries crossed.
	RoundsCompleted int
	// Entered is the phase that became active, or PhaseNone if the active
	// phase simply continued. Every entry should play the cue.
	Entered Phase
	// Ended is set when the session finished.
	Ended bool
}

// Session holds the configuration, the preset and the active phase.
type Session struct {
	cfg     Configuration
	preset  Preset
	running bool
	phase   Phase
}

// New creates an idle session with the given configuration.
func New(cfg Configuration) *Session {
	return &Session{
		cfg:    cfg,
		preset: Preset(cfg),
	}
}

// Running reports whether a session is in progress.
func (s *Session) Running() bool {
	return s.running
}

// Configure sets one minutes or seconds field. Values are truncated to two
// digits and negatives become 0. Ignored while running.
func (s *Session) Configure(f Field, value int) bool {
	if s.running {
		return false
	}
	value = truncateInput(value)

	d := &s.cfg.Rest
	if f.Target == TargetRound {
		d = &s.cfg.Round
	}
	if f.Unit == UnitMinutes {
		d.Minutes = value
	} else {
		d.Seconds = value
	}
	return true
}

// ConfigureText sets a field from raw input text. Only the first two
// characters are considered; unparseable text sets 0.
func (s *Session) ConfigureText(f Field, text string) bool {
	return s.Configure(f, parseInput(text))
}

// SetRoundCount stores the round count as entered. Ignored while running.
func (s *Session) SetRoundCount(text string) bool {
	if s.running {
		return false
	}
	s.cfg.RoundCount = text
	return true
}

// Start captures the preset and begins the session. The first phase is chosen
// by the same guards as Tick, so a zero rest goes straight to the round and a
// zero round count ends the session at once.
func (s *Session) Start() Outcome {
	if s.running {
		return Outcome{}
	}
	s.preset = Preset(s.cfg)
	s.running = true
	return s.settle(Outcome{}, PhaseNone)
}

// Tick advances the session by one second.
func (s *Session) Tick() Outcome {
	if !s.running {
		return Outcome{}
	}
	prev := s.phase

	var out Outcome
	left := s.cfg.Rounds()
	switch {
	case !s.cfg.Rest.IsZero() && left > 0:
		s.cfg.Rest = s.cfg.Rest.Decrement()
		s.phase = PhaseRest
		out.Counted = PhaseRest
	case left > 0 && !s.cfg.Round.IsZero():
		s.cfg.Round = s.cfg.Round.Decrement()
		s.phase = PhaseRound
		out.Counted = PhaseRound
	}
	return s.settle(out, prev)
}

// settle applies the zero-duration transitions (round boundary, session end)
// and selects the phase that counts down next.
func (s *Session) settle(out Outcome, prev Phase) Outcome {
	newRound := false
	for {
		left := s.cfg.Rounds()
		switch {
		case !s.cfg.Rest.IsZero() && left > 0:
			s.phase = PhaseRest
		case left > 0 && !s.cfg.Round.IsZero():
			s.phase = PhaseRound
		case left > 0:
			// Both clocks exhausted: next round.
			s.cfg.RoundCount = strconv.Itoa(left - 1)
			s.cfg.Round = s.preset.Round
			s.cfg.Rest = s.preset.Rest
			out.RoundsCompleted++
			newRound = true
			continue
		default:
			s.running = false
			s.phase = PhaseNone
			s.cfg.RoundCount = s.preset.RoundCount
			out.Ended = true
			return out
		}

		if s.phase != prev || newRound {
			out.Entered = s.phase
		}
		return out
	}
}

// Cancel stops a running session. Phase and clock values are left as they
// are, so starting again continues from the remaining time.
func (s *Session) Cancel() bool {
	if !s.running {
		return false
	}
	s.running = false
	return true
}

// Reset restores the configuration from the last preset. Ignored while running.
func (s *Session) Reset() bool {
	if s.running {
		return false
	}
	s.cfg = Configuration(s.preset)
	s.phase = PhaseNone
	return true
}

// State returns a copy of the session state. While idle Remaining is the
// round duration unless a cancelled rest is still on the clock.
func (s *Session) State() State {
	remaining := s.cfg.Round
	if s.phase == PhaseRest {
		remaining = s.cfg.Rest
	}
	return State{
		Running:    s.running,
		Phase:      s.phase,
		Remaining:  remaining,
		RoundsLeft: s.cfg.Rounds(),
		Config:     s.cfg,
		Preset:     s.preset,
	}
}
