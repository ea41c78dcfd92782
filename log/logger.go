// Package log provides the logging interface used by conninfo
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
)

var (
	// Null is a logger that outputs nothing.
	Null = slog.New(Discard)

	trace atomic.Pointer[TraceLogger]
)

const (
	KeyHost   = "host"
	KeyAlias  = "alias"
	KeyUser   = "user"
	KeyError  = "error"
	KeyFile   = "file"
	KeyProxy  = "proxy"
	KeyMethod = "method"
)

// HostAttr returns the host attribute for a stringer such as an endpoint.
func HostAttr(host fmt.Stringer) slog.Attr {
	return slog.String(KeyHost, host.String())
}

// ErrorAttr returns the error attribute, empty for a nil error.
func ErrorAttr(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: KeyError, Value: slog.StringValue("")}
	}
	return slog.Attr{Key: KeyError, Value: slog.StringValue(err.Error())}
}

// FileAttr returns the file attribute.
func FileAttr(file string) slog.Attr {
	return slog.String(KeyFile, file)
}

// SetTraceLogger enables trace logging to the given logger, nil disables
// it. It is safe to call while other goroutines are logging.
func SetTraceLogger(l TraceLogger) {
	if l == nil {
		trace.Store(nil)
		return
	}
	trace.Store(&l)
}

// Trace is for internal trace logging that must be separately enabled by
// providing a [TraceLogger] logger, which is implemented by slog.Logger.
func Trace(ctx context.Context, msg string, keysAndValues ...any) {
	if l := trace.Load(); l != nil {
		(*l).Log(ctx, slog.LevelDebug, msg, keysAndValues...)
	}
}

// TraceLogger is implemented by slog.Logger.
type TraceLogger interface {
	Log(ctx context.Context, level slog.Level, msg string, keysAndValues ...any)
}

// Logger interface is implemented by slog.Logger and some other logging packages
// and can be easily used via a wrapper with any other logging system.
// The functions are not sprintf-style. Keys and values are key-value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// NewText returns a slog text logger writing to out at the given level.
// Timestamps are left out, the consuming application adds its own.
func NewText(out io.Writer, lvl slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return attr
		},
	}))
}

type withAttrs struct {
	logger Logger
	attrs  []any
}

func (w *withAttrs) kv(kv []any) []any {
	return append(append([]any{}, w.attrs...), kv...)
}

func (w *withAttrs) Debug(msg string, keysAndValues ...any) {
	w.logger.Debug(msg, w.kv(keysAndValues)...)
}

func (w *withAttrs) Info(msg string, keysAndValues ...any) {
	w.logger.Info(msg, w.kv(keysAndValues)...)
}

func (w *withAttrs) Warn(msg string, keysAndValues ...any) {
	w.logger.Warn(msg, w.kv(keysAndValues)...)
}

func (w *withAttrs) Error(msg string, keysAndValues ...any) {
	w.logger.Error(msg, w.kv(keysAndValues)...)
}

// WithAttrs returns a logger that prepends attrs to every log call.
func WithAttrs(logger Logger, attrs ...any) Logger {
	return &withAttrs{logger, attrs}
}

// LoggerInjectable is a struct that can be embedded in other structs to provide a logger and a log setter.
type LoggerInjectable struct {
	logger Logger
}

type injectable interface {
	SetLogger(logger Logger)
}

// InjectLogger sets the logger for the given object if it embeds
// LoggerInjectable. The attrs are prepended to every log call.
func InjectLogger(l Logger, obj any, attrs ...any) {
	if o, ok := obj.(injectable); ok {
		if len(attrs) > 0 {
			o.SetLogger(WithAttrs(l, attrs...))
		} else {
			o.SetLogger(l)
		}
	}
}

// SetLogger sets the logger for the embedding object.
func (li *LoggerInjectable) SetLogger(logger Logger) {
	li.logger = logger
}

// HasLogger returns true if a logger has been set.
func (li *LoggerInjectable) HasLogger() bool {
	return li.logger != nil && li.logger != Null
}

// Log returns the logger for the embedding object.
func (li *LoggerInjectable) Log() Logger {
	if li.logger == nil {
		return Null
	}
	return li.logger
}

// LogWithAttrs returns the logger of the embedding object with attrs prepended.
func (li *LoggerInjectable) LogWithAttrs(attrs ...any) Logger {
	return WithAttrs(li.Log(), attrs...)
}
