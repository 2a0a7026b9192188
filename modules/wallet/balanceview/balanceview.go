// Package balanceview turns raw wallet balances into the ordered rows shown to a user.
//
// Build is pure: it does no I/O, keeps no state and never fails. Balances on an
// unknown blockchain, or with an amount that is not strictly positive, are dropped.
// The remaining balances are ordered by blockchain priority, highest first, and
// balances that share a priority keep their input order.
package balanceview

import (
	"cmp"
	"slices"

	"github.com/toan5ks1/code-challenge/common"
	"github.com/toan5ks1/code-challenge/pkg/decimals"
)

// UnknownPriority is the priority of any blockchain missing from the priority table.
const UnknownPriority = -99

var priorities = map[common.Blockchain]int{
	common.BlockchainOsmosis:  100,
	common.BlockchainEthereum: 50,
	common.BlockchainArbitrum: 30,
	common.BlockchainZilliqa:  20,
	common.BlockchainNeo:      20,
}

// PriorityOf returns the display priority of a blockchain. Higher is shown first.
// Names are matched case-sensitively.
func PriorityOf(blockchain string) int {
	if p, ok := priorities[common.Blockchain(blockchain)]; ok {
		return p
	}
	return UnknownPriority
}

// WalletBalance is a single balance held by a wallet.
type WalletBalance struct {
	Currency   string  `json:"currency" mapstructure:"currency"`
	Amount     float64 `json:"amount" mapstructure:"amount"`
	Blockchain string  `json:"blockchain" mapstructure:"blockchain"`
}

// PriceTable maps a currency to its unit price in USD. A missing entry means price 0.
type PriceTable map[string]float64

// Price returns the unit price of currency, or 0 if it is unknown.
func (p PriceTable) Price(currency string) float64 {
	return p[currency]
}

// DisplayRow is the presentation model of one retained balance.
type DisplayRow struct {
	Currency        string  `json:"currency"`
	Amount          float64 `json:"amount"`
	USDValue        float64 `json:"usdValue"`
	FormattedAmount string  `json:"formattedAmount"`
}

// Key returns the identity of the row in a rendered list.
func (r DisplayRow) Key() string {
	return r.Currency
}

// Builder builds display rows. The zero value formats amounts with no decimal places.
type Builder struct {
	// Decimals is the number of digits after the decimal point in FormattedAmount.
	Decimals int32
}

// Build builds display rows with the default zero decimal formatting.
func Build(balances []WalletBalance, prices PriceTable) []DisplayRow {
	return Builder{}.Build(balances, prices)
}

type ranked struct {
	balance  WalletBalance
	priority int
}

// Build filters, orders and formats balances. The input slice is not modified
// and the result is never nil.
func (b Builder) Build(balances []WalletBalance, prices PriceTable) []DisplayRow {
	retained := make([]ranked, 0, len(balances))
	for _, balance := range balances {
		priority := PriorityOf(balance.Blockchain)
		if priority > UnknownPriority && balance.Amount > 0 {
			retained = append(retained, ranked{balance: balance, priority: priority})
		}
	}

	slices.SortStableFunc(retained, func(x, y ranked) int {
		return cmp.Compare(y.priority, x.priority)
	})

	rows := make([]DisplayRow, 0, len(retained))
	for _, r := range retained {
		rows = append(rows, DisplayRow{
			Currency:        r.balance.Currency,
			Amount:          r.balance.Amount,
			USDValue:        prices.Price(r.balance.Currency) * r.balance.Amount,
			FormattedAmount: decimals.ToFixed(r.balance.Amount, b.Decimals),
		})
	}
	return rows
}
