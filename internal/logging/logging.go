// Package logging wires log/slog for the command line tools: a text or JSON
// handler that also emits attributes carried on the context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Logger returns a logger writing to w at the given level
func Logger(w io.Writer, asJSON bool, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if asJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(&ContextHandler{Handler: h})
}

// Output returns stderr for an empty path, otherwise a size-rotated log file.
// Closing the stderr output leaves stderr open.
func Output(path string) io.WriteCloser {
	if path == "" {
		return nopCloser{os.Stderr}
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}

// AppendCtx returns a copy of parent whose log records carry attrs
func AppendCtx(parent context.Context, attrs ...slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	if existing, ok := parent.Value(ctxKey{}).([]slog.Attr); ok {
		return context.WithValue(parent, ctxKey{}, append(slices.Clip(existing), attrs...))
	}
	return context.WithValue(parent, ctxKey{}, attrs)
}

// ContextHandler adds the attributes stored by AppendCtx to every record
type ContextHandler struct {
	slog.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}
