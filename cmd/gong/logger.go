package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/npratt/gong/internal/config"
)

// DebugLogName is the file name of the debug log inside the debug log directory.
const DebugLogName = "gong-debug.log"

// FileLoggerResult contains the results of setting up file logging.
type FileLoggerResult struct {
	Logger   *slog.Logger
	LogFile  io.WriteCloser
	FilePath string
}

// Close closes the log file if it was opened.
func (r *FileLoggerResult) Close() error {
	if r.LogFile != nil {
		return r.LogFile.Close()
	}
	return nil
}

// SetupFileLogger creates a logger that writes JSON lines to a rotating file
// instead of stderr, so log output never corrupts the TUI display.
// The parent directory must already exist.
func SetupFileLogger(path string, level slog.Leveler, rotationCfg config.LogRotationConfig) (*FileLoggerResult, error) {
	if info, err := os.Stat(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("debug log directory: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("debug log directory: %s is not a directory", filepath.Dir(path))
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rotationCfg.MaxSizeMB,
		MaxBackups: rotationCfg.MaxBackups,
		MaxAge:     rotationCfg.MaxAgeDays,
		Compress:   rotationCfg.Compress,
	}

	return &FileLoggerResult{
		Logger:   newJSONLogger(w, level),
		LogFile:  w,
		FilePath: path,
	}, nil
}

// newJSONLogger creates the JSON slog logger used everywhere in gong.
func newJSONLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
