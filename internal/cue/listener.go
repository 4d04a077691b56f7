package cue

import (
	"context"
	"log/slog"

	"github.com/npratt/gong/internal/events"
)

// Listener plays a cue for every phase change on an event stream.
type Listener struct {
	player Player
	logger *slog.Logger
}

// NewListener creates a Listener for player.
func NewListener(player Player, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{player: player, logger: logger}
}

// Run consumes events until the channel is closed or ctx is done.
func (l *Listener) Run(ctx context.Context, ch <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if e, isPhase := ev.(*events.PhaseChangedEvent); isPhase {
				l.logger.Debug("playing cue", "phase", e.Phase, "rounds_left", e.RoundsLeft)
				l.player.PlayCue(VarsFromEvent(e))
			}
		}
	}
}
