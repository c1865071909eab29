// Package sysutil holds process-level setup for cmd/server: the global
// zerolog logger and its level.
package sysutil

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogOptions describes the process logger.
type LogOptions struct {
	Level   string
	Pretty  bool
	Service string
	Version string
}

// ParseLevel maps a LOG_LEVEL value to a zerolog level. "warning" is
// accepted as an alias; blank and unknown values give info.
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// SetupLogger installs the global logger writing to w (stderr when nil) and
// makes it the default for zerolog.Ctx lookups. Pretty output goes through a
// ConsoleWriter; otherwise lines are JSON tagged with service and version.
func SetupLogger(w io.Writer, opt LogOptions) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(ParseLevel(opt.Level))
	if opt.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	lc := zerolog.New(w).With().Timestamp()
	if opt.Service != "" {
		lc = lc.Str("service", opt.Service)
	}
	if opt.Version != "" {
		lc = lc.Str("version", opt.Version)
	}
	log.Logger = lc.Logger()
	zerolog.DefaultContextLogger = &log.Logger
	return log.Logger
}
