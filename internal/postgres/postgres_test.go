package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/stretchr/testify/assert"
	"github.com/toan5ks1/code-challenge/common/errs"
)

func TestConfigString(t *testing.T) {
	testcases := []struct {
		name     string
		conf     Config
		expected string
	}{
		{
			name:     "defaults",
			expected: "host=127.0.0.1 dbname=postgres port=5432 sslmode=prefer",
		},
		{
			name:     "credentials",
			conf:     Config{Host: "db", Port: "6543", User: "wallet", Password: "secret", DBName: "wallet", SSLMode: "disable"},
			expected: "host=db dbname=wallet port=6543 sslmode=disable user=wallet password=secret",
		},
		{
			name:     "url_wins",
			conf:     Config{Host: "db", URL: "postgres://u:p@localhost/wallet"},
			expected: "postgres://u:p@localhost/wallet",
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.conf.String())
		})
	}
}

func TestConfigMigrateURL(t *testing.T) {
	assert.Equal(t, "postgres://127.0.0.1:5432/postgres?sslmode=prefer", Config{}.MigrateURL())
	assert.Equal(t,
		"postgres://wallet:p%40ss@db:6543/wallet?sslmode=disable",
		Config{Host: "db", Port: "6543", User: "wallet", Password: "p@ss", DBName: "wallet", SSLMode: "disable"}.MigrateURL(),
	)
	assert.Equal(t, "postgresql://x", Config{URL: "postgresql://x"}.MigrateURL())
}

func TestQueryTracerLevel(t *testing.T) {
	assert.Equal(t, DefaultLogLevel, Config{}.QueryTracer().(*tracelog.TraceLog).LogLevel)
	assert.Equal(t, tracelog.LogLevelTrace, Config{Debug: true}.QueryTracer().(*tracelog.TraceLog).LogLevel)
}

func TestNewPoolInvalidConfig(t *testing.T) {
	_, err := NewPool(context.Background(), Config{URL: "postgres://%zz"})
	assert.ErrorIs(t, err, errs.InvalidArgument)
}
