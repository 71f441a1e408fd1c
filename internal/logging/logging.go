// Package logging builds the application logger. The terminal belongs to the
// UI, so log lines go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

type Options struct {
	// Path is the log file. Empty discards all output.
	Path            string
	Level           string
	ReportTimestamp bool
}

// Open returns a logger writing to opts.Path and the closer for that file.
func Open(opts Options) (*log.Logger, io.Closer, error) {
	if opts.Path == "" {
		return New(io.Discard, opts), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, opts), f, nil
}

func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          "tagdo",
	})
}

// ParseLevel maps a level name to a log.Level, defaulting to info.
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
