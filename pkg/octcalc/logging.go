package octcalc

import (
	"context"
	"log/slog"
)

// levelHandler drops records below level before they reach the wrapped
// handler, so a configured log level applies whatever handler the caller
// supplied.
type levelHandler struct {
	level   slog.Leveler
	handler slog.Handler
}

func newLevelHandler(level slog.Leveler, h slog.Handler) *levelHandler {
	// Avoid stacking wrappers.
	if lh, ok := h.(*levelHandler); ok {
		h = lh.handler
	}
	return &levelHandler{level: level, handler: h}
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.handler.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handler.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newLevelHandler(h.level, h.handler.WithAttrs(attrs))
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return newLevelHandler(h.level, h.handler.WithGroup(name))
}
