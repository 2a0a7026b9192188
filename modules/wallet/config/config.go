package config

import (
	"time"

	"github.com/toan5ks1/code-challenge/internal/postgres"
)

const (
	DatabasePostgres = "postgres"
	DatabaseStatic   = "static"

	PriceSourceDatabase  = "database"
	PriceSourcePriceFeed = "pricefeed"
	PriceSourceStatic    = "static"
)

type Config struct {
	Database        string          `mapstructure:"database"`     // Where balances are read from. `postgres` | `static`
	PriceSource     string          `mapstructure:"price_source"` // Where prices are read from. `database` | `pricefeed` | `static`
	Postgres        postgres.Config `mapstructure:"postgres"`
	Snapshot        string          `mapstructure:"snapshot"` // Snapshot file (json or yaml) used by the `static` sources.
	PriceFeed       PriceFeedConfig `mapstructure:"price_feed"`
	PriceSync       PriceSyncConfig `mapstructure:"price_sync"`
	DisplayDecimals int32           `mapstructure:"display_decimals"` // Digits after the decimal point of a formatted amount. Default is 0.
	APIHandlers     []string        `mapstructure:"api_handlers"`     // `http`
}

type PriceFeedConfig struct {
	URL       string        `mapstructure:"url"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`  // Default is 1m
	RateLimit float64       `mapstructure:"rate_limit"` // Requests per second to the feed. Default is 1.
	Burst     int           `mapstructure:"burst"`      // Default is 1
	Timeout   time.Duration `mapstructure:"timeout"`    // Default is 10s
	Debug     bool          `mapstructure:"debug"`
}

// PriceSyncConfig controls the worker that copies price feed prices into the database.
type PriceSyncConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"` // Default is 15s
}

func Default() Config {
	return Config{
		Database:    DatabasePostgres,
		PriceSource: PriceSourceDatabase,
		PriceFeed: PriceFeedConfig{
			CacheTTL:  time.Minute,
			RateLimit: 1,
			Burst:     1,
		},
		APIHandlers: []string{"http"},
	}
}
