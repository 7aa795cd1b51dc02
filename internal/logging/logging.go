// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger at level writing JSON lines to file. An empty file
// yields a disabled logger, since the terminal frontend owns stdout and
// stderr. Close the returned io.Closer when done.
func New(level, file string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("parse log level: %w", err)
	}
	if file == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(f, lvl), f, nil
}

// NewWriter returns a timestamped logger writing to w.
func NewWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Printf adapts a zerolog.Logger to printf-style logger interfaces such as
// ultraviolet's. Messages are logged at debug level.
type Printf struct {
	Logger zerolog.Logger
}

// Printf logs a formatted message.
func (p Printf) Printf(format string, v ...any) {
	p.Logger.Debug().Msgf(strings.TrimRight(format, "\n"), v...)
}
