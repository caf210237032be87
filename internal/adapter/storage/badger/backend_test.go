package badger

import (
	"context"
	"errors"
	"testing"

	"wallet-ledger/internal/ledger"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := OpenInMemory(zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBackend_UpdateAndView(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Update(ctx, func(txn ledger.Txn) error {
		return txn.Set("wallet/cust-1", []byte(`{"id":"cust-1"}`))
	}))

	err := b.View(ctx, func(txn ledger.Txn) error {
		v, err := txn.Get("wallet/cust-1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"cust-1"}`, string(v))

		_, err = txn.Get("wallet/ghost")
		assert.ErrorIs(t, err, ledger.ErrKeyNotFound)
		return nil
	})
	assert.NoError(t, err)
}

func TestBackend_FailedUpdateIsDiscarded(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := b.Update(ctx, func(txn ledger.Txn) error {
		_ = txn.Set("wallet/a", []byte("1"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = b.View(ctx, func(txn ledger.Txn) error {
		_, err := txn.Get("wallet/a")
		return err
	})
	assert.ErrorIs(t, err, ledger.ErrKeyNotFound)
}

func TestBackend_ScanSeesPendingWritesInKeyOrder(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Update(ctx, func(txn ledger.Txn) error {
		_ = txn.Set("pool/bitcoin/hot/b", []byte("b"))
		return txn.Set("pool/bitcoin/hotter/x", []byte("x"))
	}))

	var keys []string
	err := b.Update(ctx, func(txn ledger.Txn) error {
		_ = txn.Set("pool/bitcoin/hot/a", []byte("a"))
		return txn.Scan("pool/bitcoin/hot/", func(key string, _ []byte) error {
			keys = append(keys, key)
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"pool/bitcoin/hot/a", "pool/bitcoin/hot/b"}, keys)
}

func TestBackend_HealthCheck(t *testing.T) {
	b, err := OpenInMemory(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "badger", b.Name())
	assert.NoError(t, b.Ping(context.Background()))

	require.NoError(t, b.Close())
	assert.Error(t, b.Ping(context.Background()))
}
