package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Standard attribute keys shared by every component.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldImpact    = "impact"
	FieldBook      = "book"
	FieldSide      = "side"
	FieldChapter   = "chapter"
)

// String returns a string attribute.
func String(key, value string) slog.Attr { return slog.String(key, value) }

// Int returns an int attribute.
func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

// Float64 returns a float attribute.
func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

// Bool returns a bool attribute.
func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

// Error wraps an error as an attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Args converts attrs into the variadic form slog's helpers accept.
func Args(attrs ...slog.Attr) []any {
	out := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Equal(slog.Attr{}) {
			continue
		}
		out = append(out, attr)
	}
	return out
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger tags a logger with a component name. A nil base yields
// a no-op logger so callers never have to guard.
func NewComponentLogger(base *slog.Logger, component string) *slog.Logger {
	if base == nil {
		return NewNop()
	}
	component = strings.TrimSpace(component)
	if component == "" {
		return base
	}
	return base.With(String(FieldComponent, component))
}

// WarnWithContext logs a degraded-but-continuing condition with the
// standard event_type, error_hint and impact fields.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...slog.Attr) {
	logWithContext(logger, slog.LevelWarn, msg, eventType, attrs...)
}

// ErrorWithContext logs a failure with the standard event_type field.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...slog.Attr) {
	logWithContext(logger, slog.LevelError, msg, eventType, attrs...)
}

func logWithContext(logger *slog.Logger, level slog.Level, msg, eventType string, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	all := make([]slog.Attr, 0, len(attrs)+1)
	if eventType != "" {
		all = append(all, String(FieldEventType, eventType))
	}
	all = append(all, attrs...)
	logger.LogAttrs(context.Background(), level, msg, all...)
}

// NoopHandler drops every record.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h NoopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h NoopHandler) WithGroup(string) slog.Handler           { return h }
