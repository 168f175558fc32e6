package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler writes each record to every branch that accepts its level.
type teeHandler struct {
	branches []slog.Handler
}

// TeeHandler duplicates records into every non-nil handler. With no handler
// left it discards everything; with one it returns that handler unchanged.
func TeeHandler(handlers ...slog.Handler) slog.Handler {
	var branches []slog.Handler
	for _, h := range handlers {
		if h != nil {
			branches = append(branches, h)
		}
	}
	switch len(branches) {
	case 0:
		return NoopHandler{}
	case 1:
		return branches[0]
	}
	return &teeHandler{branches: branches}
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, b := range t.branches {
		if b.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, b := range t.branches {
		if b.Enabled(ctx, record.Level) {
			errs = append(errs, b.Handle(ctx, record.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	return t.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t *teeHandler) derive(fn func(slog.Handler) slog.Handler) slog.Handler {
	next := make([]slog.Handler, len(t.branches))
	for i, b := range t.branches {
		next[i] = fn(b)
	}
	return &teeHandler{branches: next}
}
