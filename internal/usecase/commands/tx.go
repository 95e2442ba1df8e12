package commands

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// TxBeginner starts the transactions the command services run their writes
// in. *pgxpool.Pool satisfies it; tests substitute their own to drive the
// lock-update-commit sequence without a database.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Rollback after a successful commit reports pgx.ErrTxClosed; that is the
// normal path of `defer tx.Rollback`, not a failure worth logging.
func isTxClosed(err error) bool {
	return errors.Is(err, pgx.ErrTxClosed)
}
