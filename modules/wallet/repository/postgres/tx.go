package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/modules/wallet/datagateway"
	"github.com/toan5ks1/code-challenge/pkg/logger"
)

var (
	// ErrNestedWalletTx is returned when BeginWalletTx is called on a repository that is already a transaction.
	ErrNestedWalletTx = errors.Wrap(errs.Unsupported, "nested wallet transactions are not supported")

	// ErrNotWalletTx is returned when Commit is called on a repository that was not returned by BeginWalletTx.
	ErrNotWalletTx = errors.New("repository is not a wallet transaction")
)

// BeginWalletTx opens a transaction. The returned repository reads and writes
// through it until Commit or Rollback. Callers defer Rollback right after a
// successful begin; a Rollback after Commit is a no-op.
func (r *Repository) BeginWalletTx(ctx context.Context) (datagateway.WalletDataGatewayWithTx, error) {
	if r.tx != nil {
		return nil, errors.WithStack(ErrNestedWalletTx)
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "can't begin wallet transaction")
	}
	return &Repository{
		db:      r.db,
		queries: r.queries.WithTx(tx),
		tx:      tx,
	}, nil
}

// Commit persists the writes of the transaction. pgx rolls the transaction
// back when the commit fails, so it is finished either way.
func (r *Repository) Commit(ctx context.Context) error {
	if r.tx == nil {
		return errors.WithStack(ErrNotWalletTx)
	}
	if r.finished {
		return errors.Wrap(pgx.ErrTxClosed, "wallet transaction already finished")
	}
	r.finished = true
	if err := r.tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "can't commit wallet transaction")
	}
	return nil
}

// Rollback discards the writes of an unfinished transaction.
func (r *Repository) Rollback(ctx context.Context) error {
	if r.tx == nil || r.finished {
		return nil
	}
	r.finished = true
	if err := r.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return errors.Wrap(err, "can't rollback wallet transaction")
	}
	logger.DebugContext(ctx, "Rolled back wallet transaction")
	return nil
}
