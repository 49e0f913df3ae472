// Package logging builds the session logger. The TUI owns the terminal, so
// log output goes to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const prefix = "tasks"

type Options struct {
	File  string
	Level string
}

// Session is a logger bound to one run of the program.
type Session struct {
	*log.Logger
	ID    string
	close func() error
}

// Open creates the session logger. With no file configured the logger
// discards everything.
func Open(opts Options) (*Session, error) {
	var (
		w       io.Writer = io.Discard
		closeFn           = func() error { return nil }
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}
	return newSession(w, opts.Level, closeFn), nil
}

// New returns a session writing to w. Useful for tests.
func New(w io.Writer, level string) *Session {
	return newSession(w, level, func() error { return nil })
}

func newSession(w io.Writer, level string, closeFn func() error) *Session {
	id := uuid.New().String()[:8]
	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
		Prefix:          prefix,
	}).With("session", id)
	return &Session{Logger: logger, ID: id, close: closeFn}
}

func (s *Session) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// ParseLevel maps a config string to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
