package postgres

import (
	"github.com/jackc/pgx/v5"
	"github.com/toan5ks1/code-challenge/internal/postgres"
	"github.com/toan5ks1/code-challenge/modules/wallet/repository/postgres/gen"
)

type Repository struct {
	db      postgres.DB
	queries *gen.Queries
	tx      pgx.Tx

	// finished is set once tx is committed or rolled back.
	finished bool
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{
		db:      db,
		queries: gen.New(db),
	}
}
