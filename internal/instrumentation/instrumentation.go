// Package instrumentation defines the capability interface the decision
// engine reports through: request boundaries, determinization outcomes,
// errors, and structured log lines. A nil or no-op Sink is always valid
// — the engine's decisions never depend on whether anything is
// listening.
package instrumentation

import (
	"time"

	"github.com/decred/slog"
)

// Level mirrors slog's level vocabulary at the sink boundary, so callers
// outside this module don't need to import slog just to pick a level.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// Sink is the full capability interface a decision request reports
// through. Implementations may be no-ops; failure to emit must never
// affect decision output.
type Sink interface {
	RequestStart(endpoint string)
	RequestEnd(endpoint string, duration time.Duration, iterations int)
	Determinization(attempts, retries int, succeeded bool)
	Error(endpoint string, kind string)
	Log(level Level, message string, context map[string]any)
}

// Iteration satisfies mcts.Sink by recording the search's iteration
// count for LastIterations. RequestEnd does not read it; it logs only the
// count its caller passes in.
func (l *SlogSink) Iteration(n int) {
	l.lastIterations = n
}

// LastIterations returns the iteration count from the most recent
// search, for callers (e.g. the CLI) that want to report it alongside
// RequestEnd without threading the value through separately.
func (l *SlogSink) LastIterations() int {
	return l.lastIterations
}

// SlogSink adapts Sink onto a decred/slog logger, the logging library
// this codebase's sibling services use. Counters are kept in-process for
// a caller that wants to expose them (e.g. the CLI's summary line);
// nothing here blocks or retries.
type SlogSink struct {
	log            slog.Logger
	lastIterations int

	RequestCount        int
	DeterminizationCount int
	DegradedCount        int
	ErrorCount           int
}

// NewSlogSink builds a Sink backed by the given logger, typically
// produced via slog.NewBackend(w).Logger("ismcts").
func NewSlogSink(logger slog.Logger) *SlogSink {
	return &SlogSink{log: logger}
}

func (l *SlogSink) RequestStart(endpoint string) {
	l.RequestCount++
	l.log.Debugf("request start endpoint=%s", endpoint)
}

func (l *SlogSink) RequestEnd(endpoint string, duration time.Duration, iterations int) {
	l.log.Infof("request end endpoint=%s duration=%s iterations=%d", endpoint, duration, iterations)
}

func (l *SlogSink) Determinization(attempts, retries int, succeeded bool) {
	l.DeterminizationCount++
	if !succeeded {
		l.DegradedCount++
		l.log.Warnf("determinization degraded attempts=%d retries=%d", attempts, retries)
		return
	}
	l.log.Tracef("determinization ok attempts=%d retries=%d", attempts, retries)
}

func (l *SlogSink) Error(endpoint string, kind string) {
	l.ErrorCount++
	l.log.Errorf("endpoint=%s kind=%s", endpoint, kind)
}

func (l *SlogSink) Log(level Level, message string, context map[string]any) {
	switch level {
	case LevelTrace:
		l.log.Trace(message, context)
	case LevelDebug:
		l.log.Debug(message, context)
	case LevelWarn:
		l.log.Warn(message, context)
	case LevelError:
		l.log.Error(message, context)
	default:
		l.log.Info(message, context)
	}
}

// NoopSink discards everything; useful where a Sink parameter is
// required but nobody is listening.
type NoopSink struct{}

func (NoopSink) RequestStart(string)                                  {}
func (NoopSink) RequestEnd(string, time.Duration, int)                {}
func (NoopSink) Determinization(int, int, bool)                       {}
func (NoopSink) Error(string, string)                                 {}
func (NoopSink) Log(Level, string, map[string]any)                    {}
func (NoopSink) Iteration(int)                                        {}
