// Package logging builds the zerolog logger shared by the CLI, the MCP
// server and the adapters.
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

// New returns a logger writing to w at the named level. Console output is
// human-readable; otherwise one JSON object per line. The global logger is
// replaced as well.
func New(w io.Writer, level string, console bool) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	out := w
	if console {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	logger := zerolog.New(out).Level(lvl).With().Timestamp().Str("app", "a11ybridge").Logger()
	log.Logger = logger
	return logger, nil
}

// Stderr is New on os.Stderr. Stdout carries command output and the stdio
// MCP transport, so logs never go there.
func Stderr(level string, console bool) (zerolog.Logger, error) {
	return New(os.Stderr, level, console)
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.TrimSpace(strings.ToLower(level))
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return lvl, nil
}
