package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/npratt/gong/internal/events"
)

// followPollInterval is how often tailFollow re-reads the log when no file
// notification arrives.
var followPollInterval = time.Second

// logWatch reports changes to one file by watching its directory, which
// works before the file exists and across rotation.
type logWatch struct {
	path    string
	watcher *fsnotify.Watcher
}

// watchLog starts watching path. Without a usable watcher it returns a
// logWatch whose channels never fire and callers fall back to polling.
func watchLog(path string) *logWatch {
	lw := &logWatch{path: filepath.Clean(path)}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return lw
	}
	if err := watcher.Add(filepath.Dir(lw.path)); err != nil {
		_ = watcher.Close()
		return lw
	}
	lw.watcher = watcher
	return lw
}

func (lw *logWatch) events() <-chan fsnotify.Event {
	if lw.watcher == nil {
		return nil
	}
	return lw.watcher.Events
}

func (lw *logWatch) errors() <-chan error {
	if lw.watcher == nil {
		return nil
	}
	return lw.watcher.Errors
}

// created reports whether ev replaced the watched file.
func (lw *logWatch) created(ev fsnotify.Event) bool {
	return filepath.Clean(ev.Name) == lw.path && ev.Has(fsnotify.Create)
}

func (lw *logWatch) Close() {
	if lw.watcher != nil {
		_ = lw.watcher.Close()
	}
}

// tailLast writes the last n events from the log file.
func tailLast(w io.Writer, path string, n int) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_, _ = fmt.Fprintln(w, "No events yet (log file does not exist)")
			return nil
		}
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Keep a ring of the last n lines.
	if n <= 0 {
		n = 1
	}
	lines := make([]string, 0, n)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if len(lines) == n {
			lines = lines[1:]
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	if len(lines) == 0 {
		_, _ = fmt.Fprintln(w, "No events yet")
		return nil
	}

	for _, line := range lines {
		printEventLine(w, line)
	}
	return nil
}

// waitForFile waits for a file to be created and returns the opened file.
func waitForFile(ctx context.Context, lw *logWatch) (*os.File, error) {
	ticker := time.NewTicker(followPollInterval)
	defer ticker.Stop()
	for {
		file, err := os.Open(lw.path)
		if err == nil {
			return file, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open file: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-lw.events():
		case <-lw.errors():
		case <-ticker.C:
		}
	}
}

// tailFollow follows the log file and writes new events as they appear.
// A log that is rotated away is reopened and read from its start.
// It returns nil when ctx is done.
func tailFollow(ctx context.Context, w io.Writer, path string) error {
	lw := watchLog(path)
	defer lw.Close()

	file, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("open log file: %w", err)
		}
		_, _ = fmt.Fprintln(w, "Waiting for log file to be created...")
		file, err = waitForFile(ctx, lw)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	} else if _, err := file.Seek(0, io.SeekEnd); err != nil {
		_ = file.Close()
		return fmt.Errorf("seek to end: %w", err)
	}
	defer func() { _ = file.Close() }()

	_, _ = fmt.Fprintln(w, "Following events (Ctrl+C to stop)...")
	ticker := time.NewTicker(followPollInterval)
	defer ticker.Stop()

	reader := bufio.NewReader(file)
	var partial string
	for {
		line, err := reader.ReadString('\n')
		partial += line
		if err == nil {
			printEventLine(w, strings.TrimSuffix(partial, "\n"))
			partial = ""
			continue
		}
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("read log: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case ev := <-lw.events():
			if !lw.created(ev) {
				continue
			}
			next, err := os.Open(path)
			if err != nil {
				continue
			}
			_ = file.Close()
			file = next
			reader.Reset(file)
			partial = ""
		case <-lw.errors():
		case <-ticker.C:
		}
	}
}

// printEventLine writes one log line in human-readable form. Lines that do
// not decode to a known event are written as-is.
func printEventLine(w io.Writer, line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	event, err := events.ParseEvent([]byte(line))
	if err != nil || event == nil {
		_, _ = fmt.Fprintln(w, line)
		return
	}
	_, _ = fmt.Fprintln(w, events.FormatWithTimestamp(event))
}
