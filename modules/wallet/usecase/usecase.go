package usecase

import (
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
	"github.com/toan5ks1/code-challenge/modules/wallet/datagateway"
)

type Usecase struct {
	balanceDg datagateway.BalanceDataGateway
	priceDg   datagateway.PriceDataGateway
	builder   balanceview.Builder
}

func New(balanceDg datagateway.BalanceDataGateway, priceDg datagateway.PriceDataGateway, builder balanceview.Builder) *Usecase {
	return &Usecase{
		balanceDg: balanceDg,
		priceDg:   priceDg,
		builder:   builder,
	}
}
