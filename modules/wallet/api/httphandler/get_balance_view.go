package httphandler

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/toan5ks1/code-challenge/common"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
	"github.com/toan5ks1/code-challenge/modules/wallet/usecase"
)

type getBalanceViewRequest struct {
	Wallet string `params:"wallet"`
}

func (r getBalanceViewRequest) Validate() error {
	var errList []error
	if r.Wallet == "" {
		errList = append(errList, errors.New("'wallet' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type balanceRow struct {
	Key             string  `json:"key"`
	Currency        string  `json:"currency"`
	Amount          float64 `json:"amount"`
	USDValue        float64 `json:"usdValue"`
	FormattedAmount string  `json:"formattedAmount"`
}

type getBalanceViewResult struct {
	Wallet         string       `json:"wallet"`
	Rows           []balanceRow `json:"rows"`
	TotalUSDValue  float64      `json:"totalUsdValue"`
	FormattedTotal string       `json:"formattedTotal"`
}

type getBalanceViewResponse = common.HttpResponse[getBalanceViewResult]

func (h *HttpHandler) GetBalanceView(ctx *fiber.Ctx) (err error) {
	var req getBalanceViewRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.usecase.GetBalanceView(ctx.UserContext(), req.Wallet)
	if err != nil {
		return errors.Wrap(err, "error during GetBalanceView")
	}
	if err := checkEncodable(view); err != nil {
		return errors.WithStack(err)
	}

	resp := getBalanceViewResponse{
		Result: &getBalanceViewResult{
			Wallet: view.Wallet,
			Rows: lo.Map(view.Rows, func(row balanceview.DisplayRow, _ int) balanceRow {
				return balanceRow{
					Key:             row.Key(),
					Currency:        row.Currency,
					Amount:          row.Amount,
					USDValue:        row.USDValue,
					FormattedAmount: row.FormattedAmount,
				}
			}),
			TotalUSDValue:  view.TotalUSDValue,
			FormattedTotal: view.FormattedTotal,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}

// checkEncodable rejects views holding numbers JSON can't carry. A finite
// price times a finite amount can still overflow to +Inf.
func checkEncodable(view *usecase.BalanceView) error {
	for _, row := range view.Rows {
		if !isFinite(row.Amount) || !isFinite(row.USDValue) {
			return errors.Wrapf(errs.SomethingWentWrong, "balance %q of wallet %q is out of range", row.Key(), view.Wallet)
		}
	}
	if !isFinite(view.TotalUSDValue) {
		return errors.Wrapf(errs.SomethingWentWrong, "total usd value of wallet %q is out of range", view.Wallet)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
