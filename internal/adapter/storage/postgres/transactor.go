package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

var (
	// Ledger mutations run serializable so two submits that read the same
	// missing key cannot both insert it.
	updateTxOptions = pgx.TxOptions{IsoLevel: pgx.Serializable}
	viewTxOptions   = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
)

// Transactor starts ledger transactions on the connection pool.
type Transactor struct {
	pool Pool
}

// NewTransactor creates a new Transactor wrapping the connection pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// BeginUpdate starts a serializable read-write transaction.
func (t *Transactor) BeginUpdate(ctx context.Context) (pgx.Tx, error) {
	return t.pool.BeginTx(ctx, updateTxOptions)
}

// BeginView starts a read-only snapshot transaction.
func (t *Transactor) BeginView(ctx context.Context) (pgx.Tx, error) {
	return t.pool.BeginTx(ctx, viewTxOptions)
}
