// Package badger is an embedded ledger backend on top of Badger.
package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wallet-ledger/internal/ledger"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// maxConflictRetries bounds how often an Update is replayed after an optimistic conflict.
const maxConflictRetries = 16

// Backend implements ledger.Backend using Badger's serializable transactions.
type Backend struct {
	db  *badgerdb.DB
	log zerolog.Logger
}

// Open opens (or creates) a Badger database at path.
func Open(path string, log zerolog.Logger) (*Backend, error) {
	opts := badgerdb.DefaultOptions(path)
	opts.Logger = nil // Disable badger's built-in logging.
	return open(opts, log)
}

// OpenInMemory opens a Badger database that lives only in memory.
func OpenInMemory(log zerolog.Logger) (*Backend, error) {
	opts := badgerdb.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts, log)
}

func open(opts badgerdb.Options, log zerolog.Logger) (*Backend, error) {
	db, err := badgerdb.Open(opts)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "Cannot acquire directory lock") ||
			strings.Contains(errMsg, "resource temporarily unavailable") {
			return nil, fmt.Errorf("ledger database at %s is locked by another process (is another ledgerd running?): %w", opts.Dir, err)
		}
		return nil, fmt.Errorf("open ledger database at %s: %w", opts.Dir, err)
	}

	log.Info().
		Str("path", opts.Dir).
		Bool("in_memory", opts.InMemory).
		Msg("Badger ledger opened")

	return &Backend{db: db, log: log}, nil
}

// Update runs fn in a read-write transaction, replaying it on commit conflicts.
func (b *Backend) Update(ctx context.Context, fn func(txn ledger.Txn) error) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := b.db.Update(func(t *badgerdb.Txn) error {
			return fn(&txn{t: t})
		})
		if !errors.Is(err, badgerdb.ErrConflict) {
			return err
		}
		if attempt >= maxConflictRetries {
			return fmt.Errorf("badger update: %w after %d attempts", err, attempt)
		}
		b.log.Debug().Int("attempt", attempt).Msg("badger transaction conflict, retrying")
	}
}

// View runs fn in a read-only snapshot.
func (b *Backend) View(ctx context.Context, fn func(txn ledger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.View(func(t *badgerdb.Txn) error {
		return fn(&txn{t: t})
	})
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// Ping implements ports.HealthChecker.
func (b *Backend) Ping(_ context.Context) error {
	if b.db.IsClosed() {
		return errors.New("badger database closed")
	}
	return nil
}

// Name returns the dependency name.
func (b *Backend) Name() string {
	return "badger"
}

type txn struct {
	t *badgerdb.Txn
}

func (x *txn) Get(key string) ([]byte, error) {
	item, err := x.t.Get([]byte(key))
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return nil, ledger.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("badger get: %w", err)
	}
	return item.ValueCopy(nil)
}

func (x *txn) Set(key string, value []byte) error {
	if err := x.t.Set([]byte(key), value); err != nil {
		return fmt.Errorf("badger set: %w", err)
	}
	return nil
}

// Scan iterates committed and pending keys with prefix.
func (x *txn) Scan(prefix string, fn func(key string, value []byte) error) error {
	p := []byte(prefix)
	opts := badgerdb.DefaultIteratorOptions
	opts.Prefix = p
	it := x.t.NewIterator(opts)
	defer it.Close()

	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		item := it.Item()
		key := string(item.KeyCopy(nil))
		val, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("badger scan %s: %w", key, err)
		}
		if err := fn(key, val); err != nil {
			return err
		}
	}
	return nil
}
