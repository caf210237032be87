package ports

import (
	"context"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

// LedgerStore is the transactional ledger the core persists wallet state in.
// Every Submit is atomic on its own; there are no cross-call transactions.
// Results are JSON documents with amounts encoded as decimal strings.
type LedgerStore interface {
	Submit(ctx context.Context, cmd domain.Command) ([]byte, error)
	Evaluate(ctx context.Context, q domain.Query) ([]byte, error)
}

// PrimaryWalletProvider is the on-chain side of one primary wallet.
// Implementations own retry policy; callers own timeouts through ctx.
type PrimaryWalletProvider interface {
	Blockchain() string
	Name() string
	GetBalance(ctx context.Context) (decimal.Decimal, error)
	EstimateFee(ctx context.Context, toAddress string, amount decimal.Decimal) (decimal.Decimal, error)
	SendTransaction(ctx context.Context, toAddress string, amount decimal.Decimal, opts SendOptions) (string, error)
	VerifyAddress(ctx context.Context, address string) (bool, error)
}

// SendOptions carries the fee the ledger already debited and a reference back to the debit record.
type SendOptions struct {
	Fee              decimal.Decimal
	InternalWalletID string
	Reference        string
}

// ProviderRegistry resolves primary wallets by blockchain and name.
type ProviderRegistry interface {
	Get(blockchain, name string) (PrimaryWalletProvider, bool)
	List() []PrimaryWalletProvider
}

// WalletLocker serializes mutating operations per key (wallet id or pool key).
// The returned release func must be called exactly once.
type WalletLocker interface {
	Lock(ctx context.Context, keys ...string) (release func(), err error)
}

// IdempotencyCache stores completed withdrawal results by request key.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached result JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
