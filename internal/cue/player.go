// Package cue plays the audible signal that marks the start of each
// rest and round countdown.
package cue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/npratt/gong/internal/config"
	"github.com/npratt/gong/internal/exec"
)

// ErrUnknownMode is returned by New for an unrecognised cue mode.
var ErrUnknownMode = errors.New("unknown cue mode")

// Player plays a cue. PlayCue never blocks the caller on playback.
type Player interface {
	PlayCue(vars Vars)
}

// Bell writes the terminal bell character.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// PlayCue writes BEL.
func (b *Bell) PlayCue(Vars) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.w.Write([]byte{'\a'})
}

// Nop plays nothing.
type Nop struct{}

// PlayCue does nothing.
func (Nop) PlayCue(Vars) {}

// Command runs an external program, such as a sound player, for each cue.
type Command struct {
	runner  exec.CommandRunner
	name    string
	args    []string
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewCommand creates a Command cue. Args may reference Vars placeholders.
func NewCommand(runner exec.CommandRunner, name string, args []string, timeout time.Duration, logger *slog.Logger) *Command {
	if logger == nil {
		logger = slog.Default()
	}
	return &Command{
		runner:  runner,
		name:    name,
		args:    args,
		timeout: timeout,
		logger:  logger,
	}
}

// PlayCue starts the command in its own goroutine. Failures are logged.
func (c *Command) PlayCue(vars Vars) {
	args := ExpandArgs(c.args, vars)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if _, err := c.runner.Run(ctx, c.name, args...); err != nil {
			c.logger.Warn("cue command failed",
				"command", c.name,
				"phase", vars.Phase,
				"error", err)
			return
		}
		c.logger.Debug("cue played", "command", c.name, "phase", vars.Phase)
	}()
}

// Wait blocks until every started command has finished.
func (c *Command) Wait() {
	c.wg.Wait()
}

// New builds the Player selected by cfg.Mode. The bell writes to out.
func New(cfg config.CueConfig, out io.Writer, runner exec.CommandRunner, logger *slog.Logger) (Player, error) {
	switch cfg.Mode {
	case config.CueBell:
		return NewBell(out), nil
	case config.CueCommand:
		if cfg.Command == "" {
			return nil, config.ErrMissingCommand
		}
		if runner == nil {
			runner = exec.NewExecRunner()
		}
		return NewCommand(runner, cfg.Command, cfg.Args, cfg.Timeout, logger), nil
	case config.CueNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
	}
}
