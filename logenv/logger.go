// Package logenv provides the logging collaborator (spec.md §6): a small
// interface with a *slog.Logger adapter, kept separate from the PK model
// registry (pkmodel.Registry) so the two pieces of process-wide shared
// state spec.md §5 calls out don't force an import cycle between the
// registry and the thing that logs into it.
package logenv

import (
	"fmt"
	"log/slog"
)

// Logger is the logging collaborator consumed by the core (spec.md §6). A
// *slog.Logger satisfies it through the SlogLogger adapter below (slog has
// no Critical level), as does any test double that only needs to observe
// call counts.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Critical(format string, args ...any)
}

// SlogLogger adapts a *slog.Logger to the Logger interface, expanding the
// printf-style format string the core's call sites use (matching
// LoggerHelper's "{}"-by-position style from the original source, reduced to
// plain fmt verbs since that is the stdlib-idiomatic equivalent).
type SlogLogger struct {
	L *slog.Logger
}

// NewSlogLogger wraps slog's default logger.
func NewSlogLogger() *SlogLogger {
	return &SlogLogger{L: slog.Default()}
}

func (s *SlogLogger) Debug(format string, args ...any) { s.L.Debug(fmt.Sprintf(format, args...)) }
func (s *SlogLogger) Info(format string, args ...any)  { s.L.Info(fmt.Sprintf(format, args...)) }
func (s *SlogLogger) Warn(format string, args ...any)  { s.L.Warn(fmt.Sprintf(format, args...)) }
func (s *SlogLogger) Error(format string, args ...any) { s.L.Error(fmt.Sprintf(format, args...)) }
func (s *SlogLogger) Critical(format string, args ...any) {
	s.L.Error("CRITICAL: " + fmt.Sprintf(format, args...))
}

// NopLogger discards everything; useful as a test default.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any)    {}
func (NopLogger) Info(string, ...any)     {}
func (NopLogger) Warn(string, ...any)     {}
func (NopLogger) Error(string, ...any)    {}
func (NopLogger) Critical(string, ...any) {}
