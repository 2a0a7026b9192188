package logger

import (
	"context"
	"log/slog"
)

type (
	handleFunc func(context.Context, slog.Record) error
	middleware func(handleFunc) handleFunc
)

// middlewareHandler runs every record through middlewares before the wrapped handler.
type middlewareHandler struct {
	slog.Handler
	middlewares []middleware
	handle      handleFunc
}

func newMiddlewareHandler(h slog.Handler, middlewares ...middleware) *middlewareHandler {
	handle := h.Handle
	for i := len(middlewares) - 1; i >= 0; i-- {
		handle = middlewares[i](handle)
	}
	return &middlewareHandler{Handler: h, middlewares: middlewares, handle: handle}
}

func (m *middlewareHandler) Handle(ctx context.Context, rec slog.Record) error {
	return m.handle(ctx, rec)
}

func (m *middlewareHandler) WithGroup(group string) slog.Handler {
	return newMiddlewareHandler(m.Handler.WithGroup(group), m.middlewares...)
}

func (m *middlewareHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newMiddlewareHandler(m.Handler.WithAttrs(attrs), m.middlewares...)
}
