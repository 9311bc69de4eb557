// Package logging configures the zerolog debug logger.
//
// Human-facing progress goes through internal/cli/output; this logger carries
// step-level diagnostics and is silent below warn by default.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mpyw/neubundle/internal/cli/terminal"
)

// EnvLogLevel is read by the --log-level flag when it is not given explicitly.
const EnvLogLevel = "NEUBUNDLE_LOG_LEVEL"

// DefaultLevel is used when neither flag nor environment specify a level.
const DefaultLevel = zerolog.WarnLevel

// ParseLevel maps a level name to a zerolog level. The second result is false
// for empty or unknown input.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return DefaultLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return DefaultLevel, false
	}
}

// New returns a console logger writing to w at the given level name.
// Unknown names fall back to DefaultLevel.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, _ := ParseLevel(level)

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !terminal.IsTerminalWriter(w),
	}

	return zerolog.New(output).Level(lvl).With().Timestamp().Str("app", "neubundle").Logger()
}
