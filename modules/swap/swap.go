// Package swap quotes currency swaps from unit prices.
package swap

import (
	"context"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/core/worker"
	"github.com/toan5ks1/code-challenge/internal/config"
	"github.com/toan5ks1/code-challenge/modules/swap/api/httphandler"
	swapconfig "github.com/toan5ks1/code-challenge/modules/swap/config"
	"github.com/toan5ks1/code-challenge/pkg/logger"
)

func New(injector do.Injector) (worker.Runner, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	precision := utils.Default(conf.Modules.Swap.Precision, swapconfig.DefaultPrecision)

	for _, handler := range lo.Uniq(conf.Modules.Swap.APIHandlers) {
		switch handler {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			if err := httphandler.New(precision).Mount(httpServer); err != nil {
				return nil, errors.Wrap(err, "can't mount Swap API")
			}
			logger.InfoContext(ctx, "Mounted HTTP handler")
		default:
			return nil, errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	return worker.Idle(), nil
}
