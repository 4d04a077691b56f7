// Package testutil provides test infrastructure shared by gong's packages:
// a scripted command runner, a manually advanced clock and file helpers.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// CommandCall records a command invocation for assertion purposes.
type CommandCall struct {
	Name string
	Args []string
}

// DynamicResponseFunc is called to generate dynamic responses for commands.
// When handled is false the canned responses are used.
type DynamicResponseFunc func(ctx context.Context, name string, args []string) (out []byte, err error, handled bool)

// MockRunner returns canned responses based on command patterns.
// It records all calls for later assertion.
type MockRunner struct {
	mu              sync.Mutex
	Responses       map[string][]byte
	Errors          map[string]error
	Calls           []CommandCall
	DynamicResponse DynamicResponseFunc

	called chan struct{}
}

// NewMockRunner creates a MockRunner with initialized maps.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Responses: make(map[string][]byte),
		Errors:    make(map[string]error),
		called:    make(chan struct{}, 100),
	}
}

// Run records the call and returns the configured response.
// The lookup key format is "name arg1 arg2 ...".
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	dynamic := m.DynamicResponse
	m.mu.Unlock()

	select {
	case m.called <- struct{}{}:
	default:
	}

	// Dynamic responses may block, so they run without the lock.
	if dynamic != nil {
		if resp, err, handled := dynamic(ctx, name, args); handled {
			return resp, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	key := makeKey(name, args)

	if err, ok := m.Errors[key]; ok {
		return nil, err
	}
	if resp, ok := m.Responses[key]; ok {
		return resp, nil
	}

	// Prefix matches, for commands with variable args
	for k, err := range m.Errors {
		if strings.HasPrefix(key, k) {
			return nil, err
		}
	}
	for k, resp := range m.Responses {
		if strings.HasPrefix(key, k) {
			return resp, nil
		}
	}

	return nil, fmt.Errorf("unexpected command: %s", key)
}

// SetResponse configures a canned response for a command.
func (m *MockRunner) SetResponse(name string, args []string, response []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[makeKey(name, args)] = response
}

// SetError configures an error response for a command.
func (m *MockRunner) SetError(name string, args []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[makeKey(name, args)] = err
}

// GetCalls returns a copy of all recorded calls.
func (m *MockRunner) GetCalls() []CommandCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]CommandCall, len(m.Calls))
	copy(result, m.Calls)
	return result
}

// WaitForCalls blocks until at least n calls were recorded or the timeout
// expires. It reports whether n calls were seen. Use it for runners invoked
// from background goroutines.
func (m *MockRunner) WaitForCalls(n int, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		if len(m.GetCalls()) >= n {
			return true
		}
		select {
		case <-m.called:
		case <-deadline:
			return len(m.GetCalls()) >= n
		}
	}
}

// Reset clears all recorded calls.
func (m *MockRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = nil
}

func makeKey(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
