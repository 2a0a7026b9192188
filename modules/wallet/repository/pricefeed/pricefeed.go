// Package pricefeed reads unit prices from a remote JSON price feed.
//
// The feed is an array of {currency, date, price} records and may hold several
// records per currency. Only the latest record of each currency is used.
package pricefeed

import (
	"context"
	"maps"
	"math"
	"time"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/patrickmn/go-cache"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
	"github.com/toan5ks1/code-challenge/modules/wallet/config"
	"github.com/toan5ks1/code-challenge/modules/wallet/datagateway"
	"github.com/toan5ks1/code-challenge/pkg/httpclient"
	"github.com/toan5ks1/code-challenge/pkg/logger"
	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	DefaultCacheTTL  = time.Minute
	DefaultRateLimit = 1

	pricesCacheKey = "prices"
)

// PriceEntry is a single record of the price feed.
type PriceEntry struct {
	Currency string    `json:"currency"`
	Date     time.Time `json:"date"`
	Price    float64   `json:"price"`
}

var _ datagateway.PriceDataGateway = (*Repository)(nil)

type Repository struct {
	client  *httpclient.Client
	limiter *rate.Limiter
	cache   *cache.Cache
	group   singleflight.Group
}

func NewRepository(conf config.PriceFeedConfig) (*Repository, error) {
	if conf.URL == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "price feed url is required")
	}
	client, err := httpclient.New(conf.URL, httpclient.Config{
		Debug:   conf.Debug,
		Timeout: conf.Timeout,
		Headers: map[string]string{
			"Accept": "application/json",
		},
	})
	if err != nil {
		return nil, errors.Join(errs.InvalidArgument, errors.Wrap(err, "invalid price feed url"))
	}
	ttl := utils.Default(conf.CacheTTL, DefaultCacheTTL)
	limit := utils.Default(conf.RateLimit, DefaultRateLimit)
	return &Repository{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(limit), max(conf.Burst, 1)),
		cache:   cache.New(ttl, 2*ttl),
	}, nil
}

// GetPrices returns the cached prices, fetching the feed when the cache is empty or expired.
// Concurrent misses share a single request. The returned table is owned by the caller.
func (r *Repository) GetPrices(ctx context.Context) (balanceview.PriceTable, error) {
	if cached, ok := r.cache.Get(pricesCacheKey); ok {
		return maps.Clone(cached.(balanceview.PriceTable)), nil
	}
	prices, err := r.load(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return maps.Clone(prices), nil
}

// Refresh fetches the feed regardless of the cache and stores the result.
func (r *Repository) Refresh(ctx context.Context) (balanceview.PriceTable, error) {
	prices, err := r.load(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return maps.Clone(prices), nil
}

// load shares one fetch between concurrent callers. The fetch runs detached from
// the caller that started it and is bounded by the client timeout, so a caller
// giving up does not fail the others.
func (r *Repository) load(ctx context.Context) (balanceview.PriceTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "price feed request canceled")
	}
	ch := r.group.DoChan(pricesCacheKey, func() (interface{}, error) {
		prices, err := r.fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		r.cache.Set(pricesCacheKey, prices, cache.DefaultExpiration)
		return prices, nil
	})
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "price feed request canceled")
	case res := <-ch:
		if res.Err != nil {
			return nil, errors.WithStack(res.Err)
		}
		return res.Val.(balanceview.PriceTable), nil
	}
}

func (r *Repository) fetch(ctx context.Context) (balanceview.PriceTable, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "price feed rate limit")
	}
	resp, err := r.client.Get(ctx, "", httpclient.RequestOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "can't fetch price feed")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("price feed responded with status %d", resp.StatusCode())
	}
	var entries []PriceEntry
	if err := resp.UnmarshalBody(&entries); err != nil {
		return nil, errors.Wrap(err, "can't decode price feed")
	}
	prices := LatestPrices(entries)
	logger.DebugContext(ctx, "Fetched price feed",
		slogx.String("package", "pricefeed"),
		slogx.Int("entries", len(entries)),
		slogx.Int("currencies", len(prices)),
	)
	return prices, nil
}

// LatestPrices keeps the most recent price of each currency. When two records of
// a currency share the same date, the later record wins. Records without a
// currency, or with a price that is not a positive finite number, are ignored.
func LatestPrices(entries []PriceEntry) balanceview.PriceTable {
	dates := make(map[string]time.Time, len(entries))
	prices := make(balanceview.PriceTable, len(entries))
	for _, entry := range entries {
		if entry.Currency == "" || !(entry.Price > 0) || math.IsInf(entry.Price, 1) {
			continue
		}
		if date, ok := dates[entry.Currency]; ok && entry.Date.Before(date) {
			continue
		}
		dates[entry.Currency] = entry.Date
		prices[entry.Currency] = entry.Price
	}
	return prices
}
