package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"
)

const (
	// maxMessageSize is the maximum size of a JSON-RPC message (64KB).
	maxMessageSize = 64 * 1024
	// readTimeout is the timeout for reading a request from a client.
	readTimeout = 10 * time.Second
	// socketPermissions are the file permissions for the Unix socket.
	socketPermissions = 0600
)

// ErrAlreadyRunning is returned by Start when the daemon is already serving.
var ErrAlreadyRunning = errors.New("daemon already running")

// Start begins listening on the Unix socket and serving requests.
// It blocks until the context is cancelled or an error occurs.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return ErrAlreadyRunning
	}
	d.mu.Unlock()

	// Clean up stale socket if it exists
	_ = os.Remove(d.sockPath)

	listener, err := net.Listen("unix", d.sockPath)
	if err != nil {
		return fmt.Errorf("listen on socket: %w", err)
	}

	if err := os.Chmod(d.sockPath, socketPermissions); err != nil {
		_ = listener.Close()
		return fmt.Errorf("set socket permissions: %w", err)
	}

	d.mu.Lock()
	d.listener = listener
	d.running = true
	d.startTime = time.Now()
	d.mu.Unlock()

	d.logger.Info("control socket listening", "socket", d.sockPath)

	go d.serve(ctx, listener)

	<-ctx.Done()

	return d.Stop()
}

// Stop closes the listener and removes the socket file. It is safe to call
// more than once.
func (d *Daemon) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return nil
	}

	d.running = false

	if d.listener != nil {
		if err := d.listener.Close(); err != nil {
			d.logger.Error("error closing listener", "error", err)
		}
		d.listener = nil
	}

	_ = os.Remove(d.sockPath)

	d.logger.Info("control socket closed")
	return nil
}

// serve accepts connections and dispatches them to handlers.
func (d *Daemon) serve(ctx context.Context, listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || !d.Running() {
				return
			}
			d.logger.Error("accept error", "error", err)
			continue
		}

		go d.handleConnection(conn)
	}
}

// handleConnection reads a request, dispatches it, and writes the response.
func (d *Daemon) handleConnection(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		d.logger.Error("set read deadline error", "error", err)
		return
	}

	decoder := json.NewDecoder(io.LimitReader(conn, maxMessageSize))
	encoder := json.NewEncoder(conn)

	var req Request
	if err := decoder.Decode(&req); err != nil {
		_ = encoder.Encode(Response{Error: fmt.Sprintf("decode error: %v", err)})
		return
	}

	resp := d.handleRequest(&req)
	resp.ID = req.ID
	_ = encoder.Encode(resp)
}
