package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-ledger/internal/ledger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const maxSerializationRetries = 8

// KVBackend implements ledger.Backend on the ledger_state table.
// Every Update is one serializable transaction; rows it reads are locked FOR UPDATE.
type KVBackend struct {
	tx  *Transactor
	log zerolog.Logger
}

// NewKVBackend creates a new KVBackend. Call Migrate first.
func NewKVBackend(pool Pool, log zerolog.Logger) *KVBackend {
	return &KVBackend{tx: NewTransactor(pool), log: log}
}

// Update runs fn in a read-write transaction, replaying it on serialization failures.
func (b *KVBackend) Update(ctx context.Context, fn func(txn ledger.Txn) error) error {
	for attempt := 1; ; attempt++ {
		err := b.runUpdate(ctx, fn)
		if !isSerializationFailure(err) {
			return err
		}
		if attempt >= maxSerializationRetries {
			return fmt.Errorf("ledger update: %w after %d attempts", err, attempt)
		}
		b.log.Debug().Int("attempt", attempt).Msg("ledger transaction serialization failure, retrying")
	}
}

func (b *KVBackend) runUpdate(ctx context.Context, fn func(txn ledger.Txn) error) error {
	dbTx, err := b.tx.BeginUpdate(ctx)
	if err != nil {
		return fmt.Errorf("begin ledger transaction: %w", err)
	}

	if err := fn(&kvTxn{ctx: ctx, tx: dbTx, forUpdate: true}); err != nil {
		_ = dbTx.Rollback(ctx)
		return err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit ledger transaction: %w", err)
	}
	return nil
}

// View runs fn in a read-only snapshot.
func (b *KVBackend) View(ctx context.Context, fn func(txn ledger.Txn) error) error {
	dbTx, err := b.tx.BeginView(ctx)
	if err != nil {
		return fmt.Errorf("begin ledger snapshot: %w", err)
	}

	if err := fn(&kvTxn{ctx: ctx, tx: dbTx}); err != nil {
		_ = dbTx.Rollback(ctx)
		return err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit ledger snapshot: %w", err)
	}
	return nil
}

// Close is a no-op; the pool is owned by the caller.
func (b *KVBackend) Close() error {
	return nil
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

type kvTxn struct {
	ctx       context.Context
	tx        pgx.Tx
	forUpdate bool
}

func (t *kvTxn) Get(key string) ([]byte, error) {
	query := `SELECT value FROM ledger_state WHERE key = $1`
	if t.forUpdate {
		query += ` FOR UPDATE`
	}

	var value []byte
	err := t.tx.QueryRow(t.ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get ledger key %s: %w", key, err)
	}
	return value, nil
}

func (t *kvTxn) Set(key string, value []byte) error {
	query := `INSERT INTO ledger_state (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	if _, err := t.tx.Exec(t.ctx, query, key, value); err != nil {
		return fmt.Errorf("put ledger key %s: %w", key, err)
	}
	return nil
}

// Scan reads the whole prefix before calling fn, since fn may query the same transaction.
func (t *kvTxn) Scan(prefix string, fn func(key string, value []byte) error) error {
	query := `SELECT key, value FROM ledger_state WHERE starts_with(key, $1) ORDER BY key`

	rows, err := t.tx.Query(t.ctx, query, prefix)
	if err != nil {
		return fmt.Errorf("scan ledger prefix %s: %w", prefix, err)
	}

	type kv struct {
		key   string
		value []byte
	}
	var entries []kv
	for rows.Next() {
		var e kv
		if err := rows.Scan(&e.key, &e.value); err != nil {
			rows.Close()
			return fmt.Errorf("scan ledger row: %w", err)
		}
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate ledger prefix %s: %w", prefix, err)
	}

	for _, e := range entries {
		if err := fn(e.key, e.value); err != nil {
			return err
		}
	}
	return nil
}
