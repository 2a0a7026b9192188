package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/wallet")

	r.Get("/:wallet/balances", h.GetBalanceView)
	return nil
}
