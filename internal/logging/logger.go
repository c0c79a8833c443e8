// Package logging sets up the zerolog logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Format selects how log events are rendered.
type Format string

const (
	// FormatConsole is human-readable output for terminals.
	FormatConsole Format = "console"

	// FormatJSON emits one JSON object per event.
	FormatJSON Format = "json"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level to output: debug, info, warn or error.
	Level string

	Format Format

	// Output defaults to os.Stderr.
	Output io.Writer

	// NoColor turns off colours in console output.
	NoColor bool

	// RunID tags every event.  A fresh uuid is used when empty.
	RunID string
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatConsole,
		Output: os.Stderr,
	}
}

// New builds a logger from cfg.  Unknown levels and formats are rejected rather than silently
// falling back, so a typo in a config file shows up straight away.
func New(cfg Config) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	switch cfg.Format {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, NoColor: cfg.NoColor, TimeFormat: "15:04:05"}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("logging: unknown log format %q (want console or json)", cfg.Format)
	}

	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("run", runID).
		Logger(), nil
}

// ParseLevel converts a level name to a zerolog.Level.  The empty string means info.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("logging: unknown log level %q", level)
	}
}
