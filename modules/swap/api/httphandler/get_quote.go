package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/toan5ks1/code-challenge/common"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/modules/swap/quote"
)

type getQuoteRequest struct {
	FromCurrency quote.Currency  `json:"fromCurrency"`
	ToCurrency   quote.Currency  `json:"toCurrency"`
	AmountToSend decimal.Decimal `json:"amountToSend"`
	Reverse      bool            `json:"reverse"`
}

type getQuoteResponse = common.HttpResponse[quote.Quote]

func (h *HttpHandler) GetQuote(ctx *fiber.Ctx) (err error) {
	var req getQuoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}

	q, err := quote.New(req.FromCurrency, req.ToCurrency, req.AmountToSend, h.precision)
	if err != nil {
		return errors.WithStack(err)
	}
	if req.Reverse {
		q = q.Reverse()
	}

	return errors.WithStack(ctx.JSON(getQuoteResponse{
		Result: q,
	}))
}
