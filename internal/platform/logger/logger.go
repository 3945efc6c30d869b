// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a zerolog.Logger tagged with the service name.
// format "console" gives human-readable output; anything else is JSON.
func New(serviceName, level, format string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(lvl).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

// Setup installs the logger as the global one used through zerolog/log.
func Setup(serviceName, level, format string) zerolog.Logger {
	l := New(serviceName, level, format, os.Stdout)
	log.Logger = l
	return l
}
