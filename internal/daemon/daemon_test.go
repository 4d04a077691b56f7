package daemon

import (
	"io"
	"log/slog"
	"os"
	"testing"
)

// shortSocketPath creates a short socket path to avoid Unix socket length limits.
// macOS has a 104 byte limit, Linux has 108 bytes.
func shortSocketPath(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp("", "sock")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	path := f.Name()
	_ = f.Close()
	_ = os.Remove(path)
	t.Cleanup(func() { _ = os.Remove(path) })
	return path
}

func TestNew(t *testing.T) {
	d := New("/tmp/gong-test.sock", nil, nil)

	if d.SocketPath() != "/tmp/gong-test.sock" {
		t.Errorf("SocketPath() = %q", d.SocketPath())
	}
	if d.logger == nil {
		t.Error("logger should default to slog.Default()")
	}
	if d.Running() {
		t.Error("daemon should not be running initially")
	}
	if !d.StartTime().IsZero() {
		t.Error("StartTime should be zero before Start")
	}
}

func TestNew_WithLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := New("/tmp/gong-test.sock", nil, logger)

	if d.logger != logger {
		t.Error("logger not set correctly")
	}
}

func TestHandleRequest_NoTimer(t *testing.T) {
	d := New("/tmp/gong-test.sock", nil, nil)
	resp := d.handleRequest(&Request{Method: MethodStatus})
	if resp.Error != "no timer available" {
		t.Errorf("Error = %q", resp.Error)
	}
}
