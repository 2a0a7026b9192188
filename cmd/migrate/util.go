package migrate

import (
	"fmt"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/toan5ks1/code-challenge/common/errs"
)

const (
	walletMigrationSource = "modules/wallet/database/postgresql/migrations"
	walletMigrationTable  = "wallet_schema_migrations"
)

type migrateCmdOptions struct {
	DatabaseURL  string
	WalletSource string
}

// newMigrate resolves the database URL and opens a Migrate instance for the wallet schema.
func newMigrate(opts *migrateCmdOptions, defaultDatabaseURL func() string) (*migrate.Migrate, error) {
	rawURL := opts.DatabaseURL
	if rawURL == "" && defaultDatabaseURL != nil {
		rawURL = defaultDatabaseURL()
	}
	if rawURL == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "--database is required")
	}
	databaseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse database URL")
	}
	if _, ok := supportedDrivers[databaseURL.Scheme]; !ok {
		return nil, errors.Wrapf(errs.Unsupported, "unsupported database driver: %s", databaseURL.Scheme)
	}

	newDatabaseURL := cloneURLWithQuery(databaseURL, url.Values{"x-migrations-table": {walletMigrationTable}})
	m, err := migrate.New("file://"+opts.WalletSource, newDatabaseURL.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Migrate instance")
	}
	m.Log = &consoleLogger{
		prefix: fmt.Sprintf("[%s] ", "Wallet"),
	}
	return m, nil
}

func cloneURLWithQuery(u *url.URL, newQuery url.Values) *url.URL {
	clone := *u
	query := clone.Query()
	for key, values := range newQuery {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	clone.RawQuery = query.Encode()
	return &clone
}

var supportedDrivers = map[string]struct{}{
	"postgres":   {},
	"postgresql": {},
}
