package logger

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
)

// sourceHandler attaches the caller location to records whose level is in
// levels and passes everything else through untouched. The wrapped handler
// must be created with AddSource disabled.
type sourceHandler struct {
	next   slog.Handler
	levels []slog.Level
}

// NewConditionalSourceHandler wraps handler so that only the given levels
// carry a "source" attribute.
func NewConditionalSourceHandler(handler slog.Handler, levels ...slog.Level) slog.Handler {
	return &sourceHandler{next: handler, levels: slices.Clone(levels)}
}

func (h *sourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *sourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.PC != 0 && slices.Contains(h.levels, r.Level) {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		r.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		}))
	}
	return h.next.Handle(ctx, r)
}

func (h *sourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceHandler{next: h.next.WithAttrs(attrs), levels: h.levels}
}

func (h *sourceHandler) WithGroup(name string) slog.Handler {
	return &sourceHandler{next: h.next.WithGroup(name), levels: h.levels}
}
