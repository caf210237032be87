package ledger

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Txn.Get when the key has never been written.
var ErrKeyNotFound = errors.New("ledger: key not found")

// Txn is the view a contract handler gets of the backend for one Submit or Evaluate.
// Writes are visible to later reads in the same Txn and are committed only if
// the handler returns nil.
type Txn interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	// Scan visits every key with prefix in ascending key order.
	Scan(prefix string, fn func(key string, value []byte) error) error
}

// Backend is a transactional key-value store.
// Update may run fn more than once when the backend retries a conflicting commit,
// so fn must not have side effects outside the Txn.
type Backend interface {
	Update(ctx context.Context, fn func(txn Txn) error) error
	View(ctx context.Context, fn func(txn Txn) error) error
	Close() error
}
