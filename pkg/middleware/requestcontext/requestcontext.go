// Package requestcontext copies per-request values (request id, client ip) into the
// request's user context so handlers and loggers can read them.
package requestcontext

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/toan5ks1/code-challenge/common"
	"github.com/toan5ks1/code-challenge/pkg/logger"
	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
)

// Option enriches ctx from the request. A rejectError aborts the request with its status.
type Option func(ctx context.Context, c *fiber.Ctx) (context.Context, error)

type rejectError struct {
	status  int
	message string
}

func (r rejectError) Error() string {
	return r.message
}

func New(opts ...Option) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		for i, opt := range opts {
			var err error
			ctx, err = opt(ctx, c)
			if err == nil {
				continue
			}
			status, message := http.StatusInternalServerError, "internal server error"
			if rErr := (rejectError{}); errors.As(err, &rErr) {
				status, message = rErr.status, rErr.message
			} else {
				logger.ErrorContext(c.UserContext(), "Failed to extract request context",
					slogx.Error(err),
					slogx.String("event", "requestcontext/error"),
					slogx.Int("option_index", i),
				)
			}
			return errors.WithStack(c.Status(status).JSON(common.HttpResponse[struct{}]{Error: &message}))
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

type requestIdKey struct{}

// GetRequestId returns the request id stored by [WithRequestId], or "".
func GetRequestId(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey{}).(string)
	return id
}

// WithRequestId reuses the id set by the requestid middleware, else the
// X-Request-ID header, else a new UUID. The id is echoed in the response and
// attached to the context logger.
func WithRequestId() Option {
	header, key := requestid.ConfigDefault.Header, requestid.ConfigDefault.ContextKey
	return func(ctx context.Context, c *fiber.Ctx) (context.Context, error) {
		id, _ := c.Locals(key).(string)
		if id == "" {
			id = c.Get(header, fiberutils.UUID())
			c.Set(header, id)
			c.Locals(key, id)
		}
		ctx = context.WithValue(ctx, requestIdKey{}, id)
		return logger.WithContext(ctx, "request_id", id), nil
	}
}
