// internal/logging/logging.go

// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options selects level and destination.
type Options struct {
	Level  string
	File   string // when set, logs go to this file instead of stderr
	Pretty bool   // human-readable console output
}

// Setup installs the global logger and returns a cleanup func that closes
// any opened log file. An unknown level leaves the current level unchanged.
func Setup(opts Options) (func() error, error) {
	if lvl, err := zerolog.ParseLevel(opts.Level); err == nil && opts.Level != "" {
		zerolog.SetGlobalLevel(lvl)
	}

	var out io.Writer = os.Stderr
	cleanup := func() error { return nil }

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			log.Logger = zerolog.New(io.Discard)
			return cleanup, fmt.Errorf("mkdir log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			log.Logger = zerolog.New(io.Discard)
			return cleanup, fmt.Errorf("open log file: %w", err)
		}
		out = f
		cleanup = f.Close
	}

	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: opts.File != ""}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return cleanup, nil
}
