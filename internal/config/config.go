// Package config provides configuration types and defaults for gong.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/npratt/gong/internal/interval"
)

// Config holds all configuration for gong.
type Config struct {
	Timer       TimerConfig       `yaml:"timer" mapstructure:"timer"`
	Cue         CueConfig         `yaml:"cue" mapstructure:"cue"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
	TUI         TUIConfig         `yaml:"tui" mapstructure:"tui"`
}

// TimerConfig holds the initial timer setup shown in the editor.
type TimerConfig struct {
	Rest   time.Duration `yaml:"rest" mapstructure:"rest"`
	Round  time.Duration `yaml:"round" mapstructure:"round"`
	Rounds string        `yaml:"rounds" mapstructure:"rounds"` // Kept as text; non-numeric means zero rounds
}

// Cue modes.
const (
	CueBell    = "bell"
	CueCommand = "command"
	CueNone    = "none"
)

// CueConfig selects how a phase change is announced.
type CueConfig struct {
	Mode    string        `yaml:"mode" mapstructure:"mode"`       // bell, command or none
	Command string        `yaml:"command" mapstructure:"command"` // Executable for command mode
	Args    []string      `yaml:"args" mapstructure:"args"`       // Arguments; {{.Phase}}, {{.Remaining}} and {{.RoundsLeft}} are expanded
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"` // Kill the command after this long
}

// PathsConfig holds file paths. Relative paths are resolved against the
// project root.
type PathsConfig struct {
	EventLog    string `yaml:"event_log" mapstructure:"event_log"`
	DebugLogDir string `yaml:"debug_log_dir" mapstructure:"debug_log_dir"`
	Socket      string `yaml:"socket" mapstructure:"socket"` // Control socket for status/cancel/stop
	PID         string `yaml:"pid" mapstructure:"pid"`
}

// LogRotationConfig holds settings for log file rotation.
// MaxSizeMB, MaxAgeDays and Compress apply to the TUI debug log; MaxBackups
// also limits rotated event logs.
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// TUIConfig holds terminal display settings.
type TUIConfig struct {
	AltScreen bool `yaml:"alt_screen" mapstructure:"alt_screen"`
}

// Default returns a Config with the stock 30s rest, 1m30s round, 3 rounds.
func Default() *Config {
	def := interval.DefaultConfiguration
	return &Config{
		Timer: TimerConfig{
			Rest:   def.Rest.Time(),
			Round:  def.Round.Time(),
			Rounds: def.RoundCount,
		},
		Cue: CueConfig{
			Mode:    CueBell,
			Args:    []string{},
			Timeout: 5 * time.Second,
		},
		Paths: PathsConfig{
			EventLog:    ".gong/events.jsonl",
			DebugLogDir: ".gong",
			Socket:      ".gong/gong.sock",
			PID:         ".gong/gong.pid",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		TUI: TUIConfig{
			AltScreen: true,
		},
	}
}

// maxFieldDuration is the longest duration the two-digit editor can show.
const maxFieldDuration = interval.MaxFieldValue*time.Minute + 59*time.Second

// Validation errors.
var (
	ErrUnknownCueMode  = errors.New("unknown cue mode")
	ErrMissingCommand  = errors.New("cue mode command requires cue.command")
	ErrInvalidDuration = errors.New("invalid duration")
)

// Validate checks the values that cannot be repaired at runtime.
func (c *Config) Validate() error {
	for name, d := range map[string]time.Duration{"timer.rest": c.Timer.Rest, "timer.round": c.Timer.Round} {
		if d < 0 || d > maxFieldDuration {
			return fmt.Errorf("%w: %s=%s (want 0s to %s)", ErrInvalidDuration, name, d, maxFieldDuration)
		}
	}

	switch c.Cue.Mode {
	case CueBell, CueNone:
	case CueCommand:
		if c.Cue.Command == "" {
			return ErrMissingCommand
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCueMode, c.Cue.Mode)
	}
	if c.Cue.Timeout <= 0 {
		return fmt.Errorf("%w: cue.timeout=%s", ErrInvalidDuration, c.Cue.Timeout)
	}
	return nil
}

// Interval converts the timer section into the session configuration.
func (c *Config) Interval() interval.Configuration {
	return interval.Configuration{
		Rest:       interval.FromTime(c.Timer.Rest),
		Round:      interval.FromTime(c.Timer.Round),
		RoundCount: c.Timer.Rounds,
	}
}
