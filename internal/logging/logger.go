// Package logging sets up the append-only application log shared by the GUI
// and the headless runner.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls where and how verbosely the log is written
type Options struct {
	// File is appended to; empty disables file logging
	File  string
	Level string
	// Console mirrors log lines to stderr
	Console bool
}

// Init configures the global logger and returns a closer for the log file
func Init(opts Options) (io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		f, openErr := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if openErr != nil {
			return closer, fmt.Errorf("open log file: %w", openErr)
		}
		closer = f
		writers = append(writers, newLineWriter(f))
	}
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime})
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()

	return closer, err
}

// SetOutput routes the global logger to w, used by tests
func SetOutput(w io.Writer) {
	log.Logger = zerolog.New(newLineWriter(w)).With().Timestamp().Logger()
}

// GetLogger returns a child logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// ParseLevel converts a string level to zerolog.Level, defaulting to info
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
		return zerolog.InfoLevel, fmt.Errorf("unknown log level: %q", level)
	}
}

// newLineWriter renders "timestamp LEVEL message key=value" lines without color
func newLineWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
