package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

type HttpHandler struct {
	precision int32
}

func New(precision int32) *HttpHandler {
	return &HttpHandler{
		precision: precision,
	}
}

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/swap")

	r.Post("/quote", h.GetQuote)
	return nil
}
