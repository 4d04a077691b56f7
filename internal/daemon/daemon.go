// Package daemon exposes a running timer over a Unix socket so other gong
// commands can query and control it.
package daemon

import (
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/npratt/gong/internal/controller"
	"github.com/npratt/gong/internal/interval"
)

// Timer is the controller surface served over the socket.
type Timer interface {
	State() controller.State
	Snapshot() interval.State
	SessionID() string
	Start() (bool, error)
	Cancel() (bool, error)
	Stop()
}

// Daemon serves control requests for one timer.
type Daemon struct {
	timer     Timer
	sockPath  string
	startTime time.Time
	logger    *slog.Logger

	// stopDelay lets the stop response reach the client before the listener closes.
	stopDelay time.Duration

	listener net.Listener
	running  bool
	mu       sync.RWMutex
}

// New creates a Daemon serving timer on sockPath.
func New(sockPath string, timer Timer, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	return &Daemon{
		timer:     timer,
		sockPath:  sockPath,
		logger:    logger,
		stopDelay: 100 * time.Millisecond,
	}
}

// Running returns whether the daemon is currently serving.
func (d *Daemon) Running() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.running
}

// StartTime returns when the daemon started serving.
func (d *Daemon) StartTime() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.startTime
}

// SocketPath returns the Unix socket path.
func (d *Daemon) SocketPath() string {
	return d.sockPath
}
