// Package logging provides the LogSink the core calls into. The core never
// inspects the sink beyond calling its four conventional levels.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

const logFileName = "randolf/randolf.log"

// DefaultLogPath returns the XDG state-home path Randolf appends its log
// file to ("$XDG_STATE_HOME/randolf/randolf.log"), mirroring
// config.DefaultConfigPath's resolution.
func DefaultLogPath() (string, error) {
	path, err := xdg.StateFile(logFileName)
	if err != nil {
		return "", fmt.Errorf("failed to resolve log file path: %w", err)
	}
	return path, nil
}

// Sink is the conventional debug/info/warn/error logging surface the core
// state engine depends on. Arguments after msg are structured key/value
// pairs, matching charmbracelet/log's calling convention.
type Sink interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// charmSink adapts a *log.Logger to Sink.
type charmSink struct {
	logger *log.Logger
}

// New returns a Sink writing to w at the given level, with the given name
// prefixed to every line (e.g. "workspace", "hotkeys").
func New(w io.Writer, level log.Level, name string) Sink {
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          name,
	})
	return &charmSink{logger: logger}
}

// NewTee returns a Sink that writes to both stderr and, if fileLoggingEnabled
// is set, the file at path (created if necessary).
func NewTee(path string, fileLoggingEnabled bool, level log.Level, name string) (Sink, error) {
	if !fileLoggingEnabled {
		return New(os.Stderr, level, name), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return New(io.MultiWriter(os.Stderr, f), level, name), nil
}

func (c *charmSink) Debug(msg string, keyvals ...any) { c.logger.Debug(msg, keyvals...) }
func (c *charmSink) Info(msg string, keyvals ...any)  { c.logger.Info(msg, keyvals...) }
func (c *charmSink) Warn(msg string, keyvals ...any)  { c.logger.Warn(msg, keyvals...) }
func (c *charmSink) Error(msg string, keyvals ...any) { c.logger.Error(msg, keyvals...) }

var _ Sink = (*charmSink)(nil)

// NopSink discards everything. Useful for tests that don't care about logs.
type NopSink struct{}

func (NopSink) Debug(string, ...any) {}
func (NopSink) Info(string, ...any)  {}
func (NopSink) Warn(string, ...any)  {}
func (NopSink) Error(string, ...any) {}

var _ Sink = NopSink{}
