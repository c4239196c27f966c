// Package logging configures structured logging with tint.
//
// Usage:
//
//	closeFn, err := logging.Setup(logging.Options{Level: "info", File: "roster.log"})
//	defer closeFn()
//
// The terminal is roster's user interface, so by default only warnings and
// errors reach stderr. Point File at a path to keep a full log instead.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Options selects where and how much to log.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means warn.
	Level string
	// File appends logs to this path instead of stderr.
	File string
	// Format is "text" (tint) or "json".
	Format string
}

// Setup installs the default slog logger described by opts and returns a
// function that releases the log file, if one was opened.
func Setup(opts Options) (func() error, error) {
	var (
		w       io.Writer = os.Stderr
		closeFn           = func() error { return nil }
	)
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return closeFn, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	slog.SetDefault(slog.New(NewHandler(w, ParseLevel(opts.Level), opts.Format)))
	return closeFn, nil
}

// NewHandler builds the slog handler used by Setup.
func NewHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level == slog.LevelDebug,
		NoColor:    !isTerminal(w),
	})
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
