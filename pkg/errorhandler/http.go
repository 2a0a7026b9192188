package errorhandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/toan5ks1/code-challenge/common"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/pkg/logger"
	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
)

type errorResponse = common.HttpResponse[struct{}]

func respond(ctx *fiber.Ctx, status int, message string) error {
	return errors.WithStack(ctx.Status(status).JSON(errorResponse{
		Error: lo.ToPtr(message),
	}))
}

// NewHTTPErrorHandler maps errors returned by handlers to responses.
// Public errors become 400 with their message, errs.NotFound becomes 404 and
// fiber errors keep their own status. Anything else is logged and hidden behind a 500.
func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return func(ctx *fiber.Ctx, err error) error {
		if e := new(errs.PublicError); errors.As(err, &e) {
			return respond(ctx, http.StatusBadRequest, e.Message())
		}
		if errors.Is(err, errs.NotFound) {
			return respond(ctx, http.StatusNotFound, errs.NotFound.Error())
		}
		if e := new(fiber.Error); errors.As(err, &e) {
			return respond(ctx, e.Code, e.Error())
		}

		logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error",
			slogx.String("event", "api_unhandled_error"),
			slogx.Error(err),
		)

		return respond(ctx, http.StatusInternalServerError, "Internal Server Error")
	}
}
