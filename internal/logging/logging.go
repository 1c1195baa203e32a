// Package logging provides zerolog construction and context plumbing for
// ecotrack components. Components obtain a logger via FromContext and tag
// their events with a "component" field through ComponentLogger.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level string (trace, debug, info, warn, error).
	Level string `yaml:"level"`

	// Format is "console" or "json".
	Format string `yaml:"format"`

	// Output is "stderr", "stdout", or "file".
	Output string `yaml:"output"`

	// File is the log file path when Output is "file".
	File string `yaml:"file"`

	// Caller adds file:line caller information to each event.
	Caller bool `yaml:"caller"`
}

// NewLogger builds a zerolog.Logger from cfg.
//
// Unknown levels fall back to info. When Output is "file" and the file
// cannot be opened, the logger falls back to stderr rather than failing:
// a broken log path must not take down a calculation.
func NewLogger(cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer
	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "file":
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if openErr != nil {
			out = os.Stderr
		} else {
			out = f
		}
	default:
		out = os.Stderr
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logCtx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}
	return logCtx.Logger()
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// ContextWithLogger attaches logger to ctx.
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger attached to ctx, or a disabled logger
// when none is present so library code can log unconditionally.
func FromContext(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}
