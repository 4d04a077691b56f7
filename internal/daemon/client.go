package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"time"
)

const (
	// DefaultClientTimeout is the default timeout for client operations.
	DefaultClientTimeout = 5 * time.Second
)

// ErrNotRunning is returned when no timer is listening on the socket.
var ErrNotRunning = errors.New("gong not running")

// Client connects to the daemon via Unix socket.
type Client struct {
	sockPath string
	timeout  time.Duration
}

// NewClient creates a new daemon client.
func NewClient(sockPath string) *Client {
	return &Client{
		sockPath: sockPath,
		timeout:  DefaultClientTimeout,
	}
}

// SetTimeout sets the timeout for client operations.
func (c *Client) SetTimeout(d time.Duration) {
	c.timeout = d
}

// call sends a JSON-RPC request to the daemon and returns the response.
func (c *Client) call(method string, params any) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.sockPath, c.timeout)
	if err != nil {
		return nil, c.wrapConnError(err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	req := Request{Method: method, Params: params}
	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.Error != "" {
		return nil, fmt.Errorf("%s: %s", method, resp.Error)
	}

	return &resp, nil
}

// wrapConnError converts connection errors to user-friendly messages.
func (c *Client) wrapConnError(err error) error {
	var sysErr syscall.Errno
	if errors.As(err, &sysErr) {
		switch sysErr {
		case syscall.ENOENT:
			return fmt.Errorf("%w (socket not found)", ErrNotRunning)
		case syscall.ECONNREFUSED:
			return fmt.Errorf("%w (connection refused)", ErrNotRunning)
		}
	}

	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w (socket not found)", ErrNotRunning)
	}

	if errors.Is(err, os.ErrDeadlineExceeded) {
		return errors.New("request timed out")
	}

	return fmt.Errorf("connect to %s: %w", c.sockPath, err)
}

// decodeResult converts a generic result into out.
func decodeResult(resp *Response, out any) error {
	data, err := json.Marshal(resp.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	return nil
}

// Status returns the current timer status.
func (c *Client) Status() (*StatusResponse, error) {
	resp, err := c.call(MethodStatus, nil)
	if err != nil {
		return nil, err
	}

	var status StatusResponse
	if err := decodeResult(resp, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Start asks the timer to start a session.
func (c *Client) Start() (*ActionResponse, error) {
	return c.action(MethodStart)
}

// Cancel asks the timer to cancel the running session.
func (c *Client) Cancel() (*ActionResponse, error) {
	return c.action(MethodCancel)
}

func (c *Client) action(method string) (*ActionResponse, error) {
	resp, err := c.call(method, nil)
	if err != nil {
		return nil, err
	}

	var result ActionResponse
	if err := decodeResult(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stop asks the timer process to exit.
func (c *Client) Stop() error {
	_, err := c.call(MethodStop, nil)
	return err
}

// IsRunning checks if the daemon is running by attempting to connect.
func (c *Client) IsRunning() bool {
	conn, err := net.DialTimeout("unix", c.sockPath, time.Second)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
