package testutil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewMockRunner(t *testing.T) {
	mock := NewMockRunner()

	if mock.Responses == nil {
		t.Error("Responses map should be initialized")
	}
	if mock.Errors == nil {
		t.Error("Errors map should be initialized")
	}
	if mock.Calls != nil {
		t.Error("Calls should be nil initially")
	}
}

func TestMockRunner_Run_RecordsCalls(t *testing.T) {
	mock := NewMockRunner()
	mock.Responses["paplay gong.wav"] = nil

	_, _ = mock.Run(context.Background(), "paplay", "gong.wav")

	calls := mock.GetCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].Name != "paplay" {
		t.Errorf("expected name 'paplay', got %s", calls[0].Name)
	}
	if len(calls[0].Args) != 1 || calls[0].Args[0] != "gong.wav" {
		t.Errorf("unexpected args: %v", calls[0].Args)
	}
}

func TestMockRunner_Run_ReturnsResponse(t *testing.T) {
	mock := NewMockRunner()
	mock.SetResponse("echo", []string{"hi"}, []byte("hi\n"))

	result, err := mock.Run(context.Background(), "echo", "hi")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if string(result) != "hi\n" {
		t.Errorf("expected %q, got %q", "hi\n", result)
	}
}

func TestMockRunner_Run_ErrorTakesPrecedence(t *testing.T) {
	mock := NewMockRunner()
	expectedErr := errors.New("device busy")
	mock.SetResponse("paplay", []string{"gong.wav"}, []byte("ok"))
	mock.SetError("paplay", []string{"gong.wav"}, expectedErr)

	result, err := mock.Run(context.Background(), "paplay", "gong.wav")
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected %v, got %v", expectedErr, err)
	}
	if result != nil {
		t.Errorf("expected nil result, got %v", result)
	}
}

func TestMockRunner_Run_UnexpectedCommand(t *testing.T) {
	mock := NewMockRunner()

	if _, err := mock.Run(context.Background(), "unknown", "command"); err == nil {
		t.Error("expected error for unexpected command")
	}
}

func TestMockRunner_Run_PrefixMatch(t *testing.T) {
	mock := NewMockRunner()
	mock.Responses["afplay"] = []byte("ok")

	result, err := mock.Run(context.Background(), "afplay", "-v", "2", "gong.aiff")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if string(result) != "ok" {
		t.Errorf("expected 'ok', got %s", result)
	}
}

func TestMockRunner_DynamicResponse(t *testing.T) {
	mock := NewMockRunner()
	mock.DynamicResponse = func(ctx context.Context, name string, args []string) ([]byte, error, bool) {
		if name == "beep" {
			return []byte("dynamic"), nil, true
		}
		return nil, nil, false
	}
	mock.Responses["other"] = []byte("canned")

	if out, _ := mock.Run(context.Background(), "beep"); string(out) != "dynamic" {
		t.Errorf("beep = %q, want dynamic", out)
	}
	if out, _ := mock.Run(context.Background(), "other"); string(out) != "canned" {
		t.Errorf("other = %q, want canned", out)
	}
}

func TestMockRunner_GetCalls_ReturnsACopy(t *testing.T) {
	mock := NewMockRunner()
	mock.Responses["test"] = []byte("ok")
	_, _ = mock.Run(context.Background(), "test")

	calls1 := mock.GetCalls()
	calls2 := mock.GetCalls()
	calls1[0].Name = "modified"

	if calls2[0].Name == "modified" {
		t.Error("GetCalls should return a copy, not the original")
	}
}

func TestMockRunner_Reset(t *testing.T) {
	mock := NewMockRunner()
	mock.Responses["test"] = []byte("ok")
	_, _ = mock.Run(context.Background(), "test")
	_, _ = mock.Run(context.Background(), "test")

	if len(mock.GetCalls()) != 2 {
		t.Fatalf("expected 2 calls before reset")
	}
	mock.Reset()
	if len(mock.GetCalls()) != 0 {
		t.Error("expected 0 calls after reset")
	}
}

func TestMockRunner_WaitForCalls(t *testing.T) {
	mock := NewMockRunner()
	mock.Responses["test"] = []byte("ok")

	go func() {
		time.Sleep(10 * time.Millisecond)
		_, _ = mock.Run(context.Background(), "test")
		_, _ = mock.Run(context.Background(), "test")
	}()

	if !mock.WaitForCalls(2, time.Second) {
		t.Fatalf("expected 2 calls, got %d", len(mock.GetCalls()))
	}
	if mock.WaitForCalls(3, 20*time.Millisecond) {
		t.Error("WaitForCalls(3) should time out")
	}
}

func TestMockRunner_ThreadSafety(t *testing.T) {
	mock := NewMockRunner()
	mock.Responses["test"] = []byte("ok")

	ctx := context.Background()
	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func() {
			_, _ = mock.Run(ctx, "test")
			_ = mock.GetCalls()
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	if calls := mock.GetCalls(); len(calls) != 10 {
		t.Errorf("expected 10 calls, got %d", len(calls))
	}
}
