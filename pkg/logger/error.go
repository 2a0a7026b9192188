package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
	"github.com/toan5ks1/code-challenge/pkg/logger/stacktrace"
)

// errorAttrReplacer renders error attributes as plain messages and drops nil errors.
func errorAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) != 0 || attr.Key != ErrorKey {
		return attr
	}
	switch v := attr.Value.Any().(type) {
	case nil:
		return slog.Attr{}
	case error:
		return slog.String(attr.Key, v.Error())
	}
	return attr
}

// middlewareErrorStackTrace attaches the verbose error chain and, when the
// error carries one, its stack trace to every record that has an error attribute.
func middlewareErrorStackTrace() middleware {
	return func(next handleFunc) handleFunc {
		return func(ctx context.Context, rec slog.Record) error {
			var err error
			rec.Attrs(func(attr slog.Attr) bool {
				if attr.Key != slogx.ErrorKey && attr.Key != "err" {
					return true
				}
				err, _ = attr.Value.Any().(error)
				return err == nil
			})
			if err != nil {
				rec.AddAttrs(slog.String(ErrorVerboseKey, fmt.Sprintf("%+v", err)))
				if st, ok := stacktrace.FromError(err); ok {
					rec.AddAttrs(slog.Any(ErrorStackTraceKey, st.Strings()))
				}
			}
			return next(ctx, rec)
		}
	}
}
