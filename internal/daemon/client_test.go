package daemon

import (
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// mockServer starts a server that answers every request with handler.
func mockServer(t *testing.T, sockPath string, handler func(req Request) Response) {
	t.Helper()

	listener, err := net.Listen("unix", sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	done := make(chan struct{})
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-done:
					return
				default:
					continue
				}
			}

			go func(c net.Conn) {
				defer func() { _ = c.Close() }()

				var req Request
				if err := json.NewDecoder(c).Decode(&req); err != nil {
					return
				}

				resp := handler(req)
				resp.ID = req.ID
				_ = json.NewEncoder(c).Encode(resp)
			}(conn)
		}
	}()

	t.Cleanup(func() {
		close(done)
		_ = listener.Close()
		_ = os.Remove(sockPath)
	})
}

func TestClient_Status(t *testing.T) {
	sockPath := shortSocketPath(t)
	mockServer(t, sockPath, func(req Request) Response {
		if req.Method != MethodStatus {
			return Response{Error: "unexpected method"}
		}
		return Response{Result: StatusResponse{
			Status:     "running",
			Running:    true,
			Phase:      "round",
			Remaining:  "01:10",
			RoundsLeft: 2,
			RoundCount: "3",
		}}
	})

	status, err := NewClient(sockPath).Status()
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if status.Status != "running" || !status.Running {
		t.Errorf("status = %+v", status)
	}
	if status.Phase != "round" || status.Remaining != "01:10" || status.RoundsLeft != 2 {
		t.Errorf("status = %+v", status)
	}
}

func TestClient_Actions(t *testing.T) {
	tests := []struct {
		method string
		call   func(*Client) (*ActionResponse, error)
	}{
		{MethodStart, (*Client).Start},
		{MethodCancel, (*Client).Cancel},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			sockPath := shortSocketPath(t)
			seen := make(chan string, 1)
			mockServer(t, sockPath, func(req Request) Response {
				seen <- req.Method
				return Response{Result: ActionResponse{Applied: true, Message: "ok"}}
			})

			resp, err := tt.call(NewClient(sockPath))
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if !resp.Applied || resp.Message != "ok" {
				t.Errorf("response = %+v", resp)
			}
			if got := <-seen; got != tt.method {
				t.Errorf("server saw method %q, want %q", got, tt.method)
			}
		})
	}
}

func TestClient_Stop(t *testing.T) {
	sockPath := shortSocketPath(t)
	mockServer(t, sockPath, func(req Request) Response {
		return Response{Result: "stopping"}
	})

	if err := NewClient(sockPath).Stop(); err != nil {
		t.Errorf("Stop() error: %v", err)
	}
}

func TestClient_IsRunning(t *testing.T) {
	sockPath := shortSocketPath(t)
	client := NewClient(sockPath)
	if client.IsRunning() {
		t.Error("IsRunning() should be false before the server starts")
	}

	mockServer(t, sockPath, func(Request) Response { return Response{} })
	if !client.IsRunning() {
		t.Error("IsRunning() should be true while the server listens")
	}
}

func TestClient_SocketNotFound(t *testing.T) {
	client := NewClient(filepath.Join(t.TempDir(), "missing.sock"))

	_, err := client.Status()
	if !errors.Is(err, ErrNotRunning) {
		t.Fatalf("err = %v, want ErrNotRunning", err)
	}
	if !strings.Contains(err.Error(), "socket not found") {
		t.Errorf("err = %v", err)
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	sockPath := shortSocketPath(t)
	listener, err := net.Listen("unix", sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	// Closing a unix listener normally unlinks the socket; keep the file so
	// the dial is refused instead.
	listener.(*net.UnixListener).SetUnlinkOnClose(false)
	_ = listener.Close()

	_, err = NewClient(sockPath).Status()
	if !errors.Is(err, ErrNotRunning) {
		t.Errorf("err = %v, want ErrNotRunning", err)
	}
}

func TestClient_ServerError(t *testing.T) {
	sockPath := shortSocketPath(t)
	mockServer(t, sockPath, func(Request) Response {
		return Response{Error: "controller stopped"}
	})

	_, err := NewClient(sockPath).Cancel()
	if err == nil || !strings.Contains(err.Error(), "cancel: controller stopped") {
		t.Errorf("err = %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	sockPath := shortSocketPath(t)
	listener, err := net.Listen("unix", sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = listener.Close() })
	// Accept but never answer.
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			time.Sleep(time.Second)
			_ = conn.Close()
		}
	}()

	client := NewClient(sockPath)
	client.SetTimeout(50 * time.Millisecond)
	if client.timeout != 50*time.Millisecond {
		t.Fatalf("timeout = %v", client.timeout)
	}

	if _, err := client.Status(); err == nil {
		t.Error("expected a timeout error")
	}
}
