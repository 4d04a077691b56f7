package daemon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// ErrLocked is returned by PIDFile.Lock when another gong holds the lock.
var ErrLocked = errors.New("gong already running (pid file locked)")

// PIDFile is an flock-held PID file so only one timer runs per project.
type PIDFile struct {
	path string
	file *os.File
}

// NewPIDFile creates a PIDFile instance for the given path.
func NewPIDFile(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the PID file path.
func (p *PIDFile) Path() string {
	return p.path
}

// Lock takes the lock and writes the current process ID. Leftovers from a
// killed process (PID file and socketPath) are removed first.
func (p *PIDFile) Lock(socketPath string) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("create pid directory: %w", err)
	}

	file, err := os.OpenFile(p.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open pid file: %w", err)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = file.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return ErrLocked
		}
		return fmt.Errorf("lock pid file: %w", err)
	}

	// Holding the lock means any socket on disk is stale.
	if socketPath != "" {
		_ = os.Remove(socketPath)
	}

	if err := writePID(file); err != nil {
		release(file)
		return err
	}

	p.file = file
	return nil
}

func writePID(file *os.File) error {
	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("truncate pid file: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("seek pid file: %w", err)
	}
	if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		return fmt.Errorf("write pid: %w", err)
	}
	return file.Sync()
}

// Read returns the PID from the file, or 0 if the file doesn't exist or is invalid.
func (p *PIDFile) Read() int {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}

// Unlock releases the lock and removes the PID file.
func (p *PIDFile) Unlock() {
	if p.file != nil {
		release(p.file)
		p.file = nil
	}
	_ = os.Remove(p.path)
}

func release(file *os.File) {
	_ = syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
	_ = file.Close()
}

// IsProcessRunning checks if the given PID represents a running process.
func IsProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// FindProcess always succeeds on Unix; signal 0 checks existence.
	return process.Signal(syscall.Signal(0)) == nil
}

// IsRunning reports whether the PID file names a live process.
func (p *PIDFile) IsRunning() bool {
	return IsProcessRunning(p.Read())
}
