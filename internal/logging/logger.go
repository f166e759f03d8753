// ABOUTME: Leveled structured logger shared by every component
// ABOUTME: Wraps charmbracelet/log with a level parser and a discard logger for tests
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when no level or an unknown level is configured
const DefaultLevel = "info"

// New creates a logger writing to w at the given level ("debug", "info", "warn", "error").
// A nil writer logs to stderr.
func New(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// ParseLevel maps a level name to a log.Level, falling back to info
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Component returns a child logger prefixed with the component name,
// e.g. "[Pipeline]"
func Component(logger *log.Logger, name string) *log.Logger {
	if logger == nil {
		logger = Discard()
	}
	return logger.WithPrefix("[" + name + "]")
}
