// Package mlog defines the logging interface shared by every layer of
// the core and a context-propagation helper so handlers deep in the call
// chain can log through the logger installed at the top of the request
// without passing a logger parameter everywhere. The installed logger
// carries no per-request fields.
package mlog

import "context"

// Logger is the common logging interface implemented by the zap-backed
// production logger and by the no-op logger used in tests.
type Logger interface {
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Debug(args ...any)
	Debugf(format string, args ...any)

	// WithFields returns a derived Logger that attaches the given
	// key/value pairs to every subsequent entry.
	WithFields(fields ...any) Logger

	Sync() error
}

type contextKey struct{}

// NewContext returns a context carrying logger for retrieval via
// NewLoggerFromContext.
func NewContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// NewLoggerFromContext retrieves the Logger installed by NewContext,
// falling back to a no-op logger so call sites never need a nil check.
func NewLoggerFromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(contextKey{}).(Logger); ok {
		return l
	}

	return NoOp{}
}

// NoOp discards every log entry. Used in tests and as the safe default
// when no logger has been installed on the context.
type NoOp struct{}

func (NoOp) Info(args ...any)           {}
func (NoOp) Infof(f string, a ...any)   {}
func (NoOp) Warn(args ...any)           {}
func (NoOp) Warnf(f string, a ...any)   {}
func (NoOp) Error(args ...any)          {}
func (NoOp) Errorf(f string, a ...any)  {}
func (NoOp) Debug(args ...any)          {}
func (NoOp) Debugf(f string, a ...any)  {}
func (NoOp) WithFields(f ...any) Logger { return NoOp{} }
func (NoOp) Sync() error                { return nil }
