// Package controller runs the countdown loop. A single goroutine owns the
// interval.Session; every operation arrives as a message and wake-ups are
// scheduled one second at a time on a clock.Clock.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/npratt/gong/internal/clock"
	"github.com/npratt/gong/internal/events"
	"github.com/npratt/gong/internal/interval"
)

// State represents the controller's current state.
type State string

// Controller states.
const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateStopped State = "stopped"
)

// ErrStopped is returned by operations sent after the loop has exited.
var ErrStopped = errors.New("controller stopped")

// tickInterval is the length of one countdown step.
const tickInterval = time.Second

type request struct {
	apply func() bool
	reply chan bool
}

// Controller serialises timer operations and drives the one-second ticks.
type Controller struct {
	session *interval.Session
	router  *events.Router
	clock   clock.Clock
	logger  *slog.Logger

	state   State
	stateMu sync.RWMutex

	snapshot   interval.State
	sessionID  string
	snapshotMu sync.RWMutex

	requests   chan request
	wakeups    chan uint64
	stopSignal chan struct{}
	done       chan struct{}
	runOnce    sync.Once

	// Loop-owned scheduling state.
	gen       uint64
	timer     clock.Timer
	nextAt    time.Time
	startedAt time.Time
	completed int
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the system clock.
func WithClock(c clock.Clock) Option {
	return func(ctrl *Controller) {
		ctrl.clock = c
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ctrl *Controller) {
		if logger != nil {
			ctrl.logger = logger
		}
	}
}

// New creates a Controller for an idle session with the given configuration.
// Events are emitted to router when it is non-nil.
func New(cfg interval.Configuration, router *events.Router, opts ...Option) *Controller {
	c := &Controller{
		session:    interval.New(cfg),
		router:     router,
		clock:      clock.System,
		logger:     slog.Default(),
		state:      StateIdle,
		requests:   make(chan request),
		wakeups:    make(chan uint64),
		stopSignal: make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.snapshot = c.session.State()
	return c
}

// Run processes operations and wake-ups until the context is cancelled or
// Stop is called. A running session is ended with reason "stopped".
// Run returns ErrStopped if called again after it has exited.
func (c *Controller) Run(ctx context.Context) error {
	started := false
	c.runOnce.Do(func() { started = true })
	if !started {
		return ErrStopped
	}

	c.emit(&events.LoopStartEvent{BaseEvent: events.NewControllerEvent(events.EventLoopStart)})
	c.logger.Info("controller started", "state", c.getState())

	for {
		select {
		case <-ctx.Done():
			return c.shutdown("context cancelled")
		case <-c.stopSignal:
			return c.shutdown("stop requested")
		case req := <-c.requests:
			req.reply <- req.apply()
		case gen := <-c.wakeups:
			c.handleWake(gen)
		}
	}
}

// Stop requests shutdown. It returns immediately; use Run's return or Done
// to wait for the loop to exit.
func (c *Controller) Stop() {
	select {
	case c.stopSignal <- struct{}{}:
	default:
	}
}

// Done is closed when the loop has exited.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// State returns the current controller state.
func (c *Controller) State() State {
	return c.getState()
}

// Snapshot returns the session state as of the last processed operation or tick.
func (c *Controller) Snapshot() interval.State {
	c.snapshotMu.RLock()
	defer c.snapshotMu.RUnlock()
	return c.snapshot
}

// SessionID returns the ID of the current or most recent session, or "" if
// none has started.
func (c *Controller) SessionID() string {
	c.snapshotMu.RLock()
	defer c.snapshotMu.RUnlock()
	return c.sessionID
}

// Configure sets one minutes or seconds field. It reports false when the
// edit was ignored because a session is running.
func (c *Controller) Configure(f interval.Field, value int) (bool, error) {
	return c.do(func() bool {
		if !c.session.Configure(f, value) {
			return false
		}
		c.configUpdated(f.String())
		return true
	})
}

// ConfigureText sets one field from raw input text.
func (c *Controller) ConfigureText(f interval.Field, text string) (bool, error) {
	return c.do(func() bool {
		if !c.session.ConfigureText(f, text) {
			return false
		}
		c.configUpdated(f.String())
		return true
	})
}

// SetRoundCount stores the round count text as entered.
func (c *Controller) SetRoundCount(text string) (bool, error) {
	return c.do(func() bool {
		if !c.session.SetRoundCount(text) {
			return false
		}
		c.configUpdated("rounds")
		return true
	})
}

// Reset restores the configuration from the last preset.
func (c *Controller) Reset() (bool, error) {
	return c.do(func() bool {
		if !c.session.Reset() {
			return false
		}
		c.configUpdated("reset")
		return true
	})
}

// Start begins a session. It reports false if one is already running.
func (c *Controller) Start() (bool, error) {
	return c.do(c.start)
}

// Cancel stops the running session without touching the clock values.
// Cancelling an idle timer is a no-op that reports false.
func (c *Controller) Cancel() (bool, error) {
	return c.do(c.cancel)
}

// do runs fn on the loop goroutine and waits for its result.
func (c *Controller) do(fn func() bool) (bool, error) {
	req := request{apply: fn, reply: make(chan bool, 1)}
	select {
	case c.requests <- req:
	case <-c.done:
		return false, ErrStopped
	}
	select {
	case ok := <-req.reply:
		return ok, nil
	case <-c.done:
		return false, ErrStopped
	}
}

func (c *Controller) cancel() bool {
	from := c.session.State().Phase
	if !c.session.Cancel() {
		return false
	}
	c.logger.Info("session cancelled", "phase", from)
	c.finish(events.ReasonCancelled)
	return true
}

func (c *Controller) start() bool {
	if c.session.Running() {
		return false
	}
	before := c.session.State()
	out := c.session.Start()
	st := c.session.State()

	id := uuid.NewString()
	c.snapshotMu.Lock()
	c.sessionID = id
	c.snapshotMu.Unlock()

	c.startedAt = c.clock.Now()
	c.nextAt = c.startedAt
	c.completed = 0

	c.emit(&events.SessionStartEvent{
		BaseEvent: events.NewControllerEvent(events.EventSessionStart),
		SessionID: id,
		Preset:    st.Preset,
		Rounds:    st.Preset.Rounds(),
	})
	c.logger.Info("session started",
		"session_id", id,
		"rest", st.Preset.Rest.String(),
		"round", st.Preset.Round.String(),
		"rounds", st.Preset.RoundCount)

	c.report(out, before.Phase)
	if c.session.Running() {
		c.setState(StateRunning)
		c.arm()
	}
	return true
}

// handleWake applies one tick if the wake-up belongs to the current schedule.
func (c *Controller) handleWake(gen uint64) {
	if gen != c.gen {
		c.logger.Debug("stale wake-up discarded", "gen", gen, "current", c.gen)
		return
	}
	c.timer = nil

	before := c.session.State().Phase
	out := c.session.Tick()
	c.report(out, before)
	if c.session.Running() {
		c.arm()
	}
}

// report publishes the new state and emits the events an Outcome implies.
func (c *Controller) report(out interval.Outcome, from interval.Phase) {
	st := c.publish()
	// An ended session has its round count restored already.
	left := st.RoundsLeft
	if out.Ended {
		left = 0
	}

	if out.Counted != interval.PhaseNone {
		c.emit(&events.TickEvent{
			BaseEvent:  events.NewControllerEvent(events.EventTick),
			Phase:      st.Phase,
			Remaining:  st.Remaining,
			RoundsLeft: left,
		})
	}

	for i := out.RoundsCompleted; i > 0; i-- {
		c.completed++
		c.emit(&events.RoundCompleteEvent{
			BaseEvent:  events.NewControllerEvent(events.EventRoundComplete),
			RoundsLeft: left + i - 1,
		})
	}

	if out.Entered != interval.PhaseNone {
		c.logger.Debug("phase entered", "from", from, "phase", out.Entered, "remaining", st.Remaining.String())
		c.emit(&events.PhaseChangedEvent{
			BaseEvent:  events.NewControllerEvent(events.EventPhaseChanged),
			From:       from,
			Phase:      out.Entered,
			Remaining:  st.Remaining,
			RoundsLeft: st.RoundsLeft,
		})
	}

	if out.Ended {
		c.logger.Info("session completed", "rounds", c.completed)
		c.finish(events.ReasonCompleted)
	}
}

// arm schedules the next wake-up one interval after the previous deadline.
func (c *Controller) arm() {
	c.nextAt = c.nextAt.Add(tickInterval)
	d := c.nextAt.Sub(c.clock.Now())
	if d < 0 {
		d = 0
	}

	gen := c.gen
	c.timer = c.clock.AfterFunc(d, func() {
		select {
		case c.wakeups <- gen:
		case <-c.done:
		}
	})
}

// disarm invalidates any scheduled wake-up.
func (c *Controller) disarm() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// finish ends the session bookkeeping after it stopped running.
func (c *Controller) finish(reason string) {
	c.disarm()
	st := c.publish()
	c.setState(StateIdle)

	c.emit(&events.SessionEndEvent{
		BaseEvent:       events.NewControllerEvent(events.EventSessionEnd),
		SessionID:       c.SessionID(),
		Reason:          reason,
		RoundsCompleted: c.completed,
		DurationMs:      c.clock.Now().Sub(c.startedAt).Milliseconds(),
		RoundCount:      st.Config.RoundCount,
	})
}

func (c *Controller) configUpdated(field string) {
	st := c.publish()
	c.emit(&events.ConfigUpdatedEvent{
		BaseEvent: events.NewControllerEvent(events.EventConfigUpdated),
		Field:     field,
		Config:    st.Config,
	})
}

func (c *Controller) shutdown(reason string) error {
	c.logger.Info("controller stopping", "reason", reason)

	if c.session.Cancel() {
		c.finish(events.ReasonStopped)
	}
	c.disarm()
	c.setState(StateStopped)
	close(c.done)

	c.emit(&events.LoopStopEvent{
		BaseEvent: events.NewControllerEvent(events.EventLoopStop),
		Reason:    reason,
	})
	c.logger.Info("shutdown complete")
	return nil
}

// publish refreshes the snapshot from the session.
func (c *Controller) publish() interval.State {
	st := c.session.State()
	c.snapshotMu.Lock()
	c.snapshot = st
	c.snapshotMu.Unlock()
	return st
}

func (c *Controller) getState() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.stateMu.Lock()
	prev := c.state
	c.state = s
	c.stateMu.Unlock()

	if prev != s {
		c.logger.Debug("controller state changed", "from", prev, "to", s)
	}
}

// emit sends an event to the router if available.
func (c *Controller) emit(event events.Event) {
	if c.router != nil {
		c.router.Emit(event)
	}
}
