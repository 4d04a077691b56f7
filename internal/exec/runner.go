// Package exec runs external commands for the command cue.
package exec

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner abstracts command execution for dependency injection.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner executes real commands using os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner for production use.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command and returns its standard output. A non-zero exit
// is reported with the first line of the command's stderr.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := execCommand(ctx, name, args...).Output()
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return out, fmt.Errorf("%s: %w", name, ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg := firstLine(exitErr.Stderr); msg != "" {
			return out, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
	}
	return out, fmt.Errorf("%s: %w", name, err)
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// execCommand is a variable to allow testing.
var execCommand = execCommandImpl

func execCommandImpl(ctx context.Context, name string, args ...string) execCmd {
	return realExecCmd{cmd: exec.CommandContext(ctx, name, args...)}
}

// execCmd abstracts exec.Cmd for testing.
type execCmd interface {
	Output() ([]byte, error)
}

type realExecCmd struct {
	cmd *exec.Cmd
}

func (c realExecCmd) Output() ([]byte, error) {
	return c.cmd.Output()
}
