// Package logging builds the zerolog logger used for diagnostics.
//
// Reports are written by the output formatters, never by the logger; the
// logger only carries warnings (unresolved variables, config fallbacks) and
// debug detail such as watcher events.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger construction.
type Options struct {
	Verbosity int  // 0 warn, 1 info, 2+ debug
	Quiet     bool // discard everything
	NoColor   bool
}

// New returns a console logger writing to w.
func New(w io.Writer, opts Options) zerolog.Logger {
	if opts.Quiet {
		return zerolog.Nop()
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    opts.NoColor,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(out).Level(Level(opts.Verbosity)).With().Timestamp().Logger()
}

// Level maps a -v count to a zerolog level.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// Warnf adapts a logger to printf-style warning callbacks.
func Warnf(logger zerolog.Logger) func(format string, args ...any) {
	return func(format string, args ...any) {
		logger.Warn().Msgf(format, args...)
	}
}
