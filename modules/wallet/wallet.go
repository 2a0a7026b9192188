package wallet

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/core/worker"
	"github.com/toan5ks1/code-challenge/internal/config"
	"github.com/toan5ks1/code-challenge/internal/postgres"
	"github.com/toan5ks1/code-challenge/modules/wallet/api/httphandler"
	"github.com/toan5ks1/code-challenge/modules/wallet/balanceview"
	walletconfig "github.com/toan5ks1/code-challenge/modules/wallet/config"
	"github.com/toan5ks1/code-challenge/modules/wallet/datagateway"
	walletpostgres "github.com/toan5ks1/code-challenge/modules/wallet/repository/postgres"
	"github.com/toan5ks1/code-challenge/modules/wallet/repository/pricefeed"
	"github.com/toan5ks1/code-challenge/modules/wallet/repository/static"
	"github.com/toan5ks1/code-challenge/modules/wallet/usecase"
	"github.com/toan5ks1/code-challenge/pkg/logger"
	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
)

// Sources are the collaborators of the wallet module resolved from its config.
type Sources struct {
	Balances datagateway.BalanceDataGateway
	Prices   datagateway.PriceDataGateway

	// Wallet is set when balances are stored in postgres.
	Wallet datagateway.WalletDataGateway
	// Feed is set when prices come from the price feed.
	Feed *pricefeed.Repository

	CleanupFuncs []func(context.Context) error
}

// openPool is replaced in tests.
var openPool = postgres.NewPool

// NewSources opens the balance and price sources named by conf.
// Sources opened before a failure are closed.
func NewSources(ctx context.Context, conf walletconfig.Config) (_ *Sources, err error) {
	sources := &Sources{}
	defer func() {
		if err != nil {
			sources.closeOnError(ctx)
		}
	}()
	var snapshot *static.Repository
	loadSnapshot := func() (*static.Repository, error) {
		if snapshot != nil {
			return snapshot, nil
		}
		repo, err := static.Load(conf.Snapshot)
		if err != nil {
			return nil, errors.Wrap(err, "can't load wallet snapshot")
		}
		snapshot = repo
		return snapshot, nil
	}

	switch strings.ToLower(conf.Database) {
	case "postgresql", walletconfig.DatabasePostgres, "pg":
		pg, err := openPool(ctx, conf.Postgres)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "Invalid Postgres configuration for wallet")
			}
			return nil, errors.Wrap(err, "can't create Postgres connection pool")
		}
		sources.CleanupFuncs = append(sources.CleanupFuncs, func(ctx context.Context) error {
			pg.Close()
			return nil
		})
		repo := walletpostgres.NewRepository(pg)
		sources.Balances = repo
		sources.Wallet = repo
	case walletconfig.DatabaseStatic:
		repo, err := loadSnapshot()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		sources.Balances = repo
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q database for wallet is not supported", conf.Database)
	}

	switch strings.ToLower(conf.PriceSource) {
	case walletconfig.PriceSourceDatabase:
		if sources.Wallet == nil {
			return nil, errors.Wrap(errs.InvalidArgument, "price source `database` requires the postgres database")
		}
		sources.Prices = sources.Wallet
	case walletconfig.PriceSourcePriceFeed:
		feed, err := pricefeed.NewRepository(conf.PriceFeed)
		if err != nil {
			return nil, errors.Wrap(err, "can't create price feed")
		}
		sources.Feed = feed
		sources.Prices = feed
	case walletconfig.PriceSourceStatic:
		repo, err := loadSnapshot()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		sources.Prices = repo
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q price source for wallet is not supported", conf.PriceSource)
	}

	return sources, nil
}

func (s *Sources) Close(ctx context.Context) error {
	var errList []error
	for _, cleanup := range s.CleanupFuncs {
		if err := cleanup(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.WithStack(errors.Join(errList...))
}

func (s *Sources) closeOnError(ctx context.Context) {
	if err := s.Close(context.WithoutCancel(ctx)); err != nil {
		logger.WarnContext(ctx, "Failed to close wallet sources", slogx.Error(err))
	}
}

func New(injector do.Injector) (_ worker.Runner, err error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	walletConf := conf.Modules.Wallet

	sources, err := NewSources(ctx, walletConf)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer func() {
		if err != nil {
			sources.closeOnError(ctx)
		}
	}()

	// Mount API
	apiHandlers := lo.Uniq(walletConf.APIHandlers)
	for _, handler := range apiHandlers {
		switch handler {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			walletUsecase := usecase.New(sources.Balances, sources.Prices, balanceview.Builder{Decimals: walletConf.DisplayDecimals})
			if err := httphandler.New(walletUsecase).Mount(httpServer); err != nil {
				return nil, errors.Wrap(err, "can't mount Wallet API")
			}
			logger.InfoContext(ctx, "Mounted HTTP handler")
		default:
			return nil, errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	if !walletConf.PriceSync.Enabled {
		return worker.Idle(sources.CleanupFuncs...), nil
	}
	if sources.Wallet == nil {
		return nil, errors.Wrap(errs.InvalidArgument, "price sync requires the postgres database")
	}
	feed := sources.Feed
	if feed == nil {
		feed, err = pricefeed.NewRepository(walletConf.PriceFeed)
		if err != nil {
			return nil, errors.Wrap(err, "can't create price feed for price sync")
		}
	}
	processor := NewPriceSyncProcessor(feed, sources.Wallet, sources.CleanupFuncs)
	return worker.New(processor, walletConf.PriceSync.Interval), nil
}
