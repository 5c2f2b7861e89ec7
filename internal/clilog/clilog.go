// Package clilog builds the structured logger used by cmd/webhookdiff.
package clilog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Format is the log output encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
)

var (
	// ErrInvalidArgument wraps a malformed --log-level or --log-format flag.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLevel is returned for a log level string outside the
	// recognized set.
	ErrUnknownLevel = errors.New("unknown log level")
	// ErrUnknownFormat is returned for a log format string outside the
	// recognized set.
	ErrUnknownFormat = errors.New("unknown log format")
)

// New builds a [*slog.Logger] writing to w from level and format strings,
// as parsed from CLI flags.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	handler, err := NewHandler(w, level, format)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

// NewHandler builds a [slog.Handler] writing to w from level and format
// strings.
func NewHandler(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	fmtd, err := ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if fmtd == FormatJSON {
		return slog.NewJSONHandler(w, opts), nil
	}
	return slog.NewTextHandler(w, opts), nil
}

// ParseLevel parses a log level string into a [slog.Level].
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// ParseFormat parses a log format string into a [Format].
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if f == "" {
		f = FormatLogfmt
	}
	if slices.Contains([]Format{FormatJSON, FormatLogfmt}, f) {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
