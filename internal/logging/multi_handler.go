package logging

import (
	"context"
	"log/slog"
)

// MultiHandler fans a record out to several sinks. Each sink filters on its
// own level, so a log file can keep trace output while the console stays
// at warnings.
type MultiHandler struct {
	sinks []slog.Handler
}

// NewMultiHandler tees records to every sink.
func NewMultiHandler(sinks ...slog.Handler) *MultiHandler {
	return &MultiHandler{sinks: sinks}
}

// Enabled is true when any sink would accept level.
func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes r to the sinks whose level admits it. Every such sink sees
// the record even when an earlier one fails; the first error is returned.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, s := range h.sinks {
		if !s.Enabled(ctx, r.Level) {
			continue
		}
		if err := s.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WithAttrs applies attrs to every sink.
func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

// WithGroup applies name to every sink.
func (h *MultiHandler) WithGroup(name string) slog.Handler {
	return h.each(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (h *MultiHandler) each(fn func(slog.Handler) slog.Handler) *MultiHandler {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = fn(s)
	}
	return &MultiHandler{sinks: sinks}
}
