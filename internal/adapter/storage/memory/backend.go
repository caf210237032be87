// Package memory is an in-process ledger backend for development and tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"wallet-ledger/internal/ledger"
)

var (
	ErrClosed   = errors.New("memory backend closed")
	ErrReadOnly = errors.New("write in read-only transaction")
)

// Backend keeps every key in a map. Update transactions are serialized;
// View transactions run concurrently with each other.
type Backend struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewBackend creates an empty Backend.
func NewBackend() *Backend {
	return &Backend{data: make(map[string][]byte)}
}

func (b *Backend) Update(ctx context.Context, fn func(txn ledger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	t := &txn{committed: b.data, writes: make(map[string][]byte), writable: true}
	if err := fn(t); err != nil {
		return err
	}
	for k, v := range t.writes {
		b.data[k] = v
	}
	return nil
}

func (b *Backend) View(ctx context.Context, fn func(txn ledger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}
	return fn(&txn{committed: b.data})
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Ping implements ports.HealthChecker.
func (b *Backend) Ping(_ context.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}
	return nil
}

// Name returns the dependency name.
func (b *Backend) Name() string {
	return "memory"
}

type txn struct {
	committed map[string][]byte
	writes    map[string][]byte
	writable  bool
}

func (t *txn) Get(key string) ([]byte, error) {
	if v, ok := t.writes[key]; ok {
		return clone(v), nil
	}
	if v, ok := t.committed[key]; ok {
		return clone(v), nil
	}
	return nil, ledger.ErrKeyNotFound
}

func (t *txn) Set(key string, value []byte) error {
	if !t.writable {
		return ErrReadOnly
	}
	t.writes[key] = clone(value)
	return nil
}

func (t *txn) Scan(prefix string, fn func(key string, value []byte) error) error {
	seen := make(map[string]struct{})
	var keys []string
	for _, m := range []map[string][]byte{t.writes, t.committed} {
		for k := range m {
			if !strings.HasPrefix(k, prefix) {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		v, err := t.Get(k)
		if err != nil {
			return err
		}
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}

func clone(v []byte) []byte {
	out := make([]byte, len(v))
	copy(out, v)
	return out
}
