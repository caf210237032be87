package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// submit runs a mutating ledger operation and decodes its JSON result.
func submit[T any](ctx context.Context, store ports.LedgerStore, cmd domain.Command) (T, error) {
	var out T
	raw, err := store.Submit(ctx, cmd)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, apperror.InternalError(fmt.Errorf("decode %s result: %w", cmd.Function(), err))
	}
	return out, nil
}

// evaluate runs a read-only ledger operation and decodes its JSON result.
func evaluate[T any](ctx context.Context, store ports.LedgerStore, q domain.Query) (T, error) {
	var out T
	raw, err := store.Evaluate(ctx, q)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, apperror.InternalError(fmt.Errorf("decode %s result: %w", q.Function(), err))
	}
	return out, nil
}

func loadWallet(ctx context.Context, store ports.LedgerStore, id string) (*domain.InternalWallet, error) {
	return evaluate[*domain.InternalWallet](ctx, store, domain.GetInternalWallet{WalletID: id})
}

func poolWallets(ctx context.Context, store ports.LedgerStore, pool domain.PoolKey) ([]*domain.InternalWallet, error) {
	wallets, err := evaluate[[]*domain.InternalWallet](ctx, store, domain.GetInternalWalletsByPrimaryWallet{Pool: pool})
	if err != nil {
		return nil, err
	}
	if wallets == nil {
		wallets = []*domain.InternalWallet{}
	}
	return wallets, nil
}

func resolveProvider(providers ports.ProviderRegistry, pool domain.PoolKey) (ports.PrimaryWalletProvider, error) {
	p, ok := providers.Get(pool.Blockchain, pool.PrimaryWalletName)
	if !ok {
		return nil, apperror.ErrPrimaryWalletNotFound(pool.Blockchain, pool.PrimaryWalletName)
	}
	return p, nil
}

func onChainBalance(ctx context.Context, p ports.PrimaryWalletProvider) (decimal.Decimal, error) {
	balance, err := p.GetBalance(ctx)
	if err != nil {
		return decimal.Zero, apperror.ErrProvider(fmt.Errorf("get balance %s/%s: %w", p.Blockchain(), p.Name(), err))
	}
	return domain.Round(balance), nil
}

// samePool fails with the cross-domain error that separates w from pool.
func samePool(pool domain.PoolKey, w *domain.InternalWallet) error {
	if w.Blockchain != pool.Blockchain {
		return apperror.ErrCrossChainTransferForbidden(pool.Blockchain, w.Blockchain)
	}
	if w.PrimaryWalletName != pool.PrimaryWalletName {
		return apperror.ErrCrossPrimaryWalletTransferForbidden(pool.PrimaryWalletName, w.PrimaryWalletName)
	}
	return nil
}

func walletLockKey(id string) string {
	return "wallet:" + id
}

func poolLockKey(pool domain.PoolKey) string {
	return "pool:" + pool.String()
}

func newRecord(txType domain.LedgerTransactionType, pool domain.PoolKey, at time.Time) domain.LedgerTransactionRecord {
	return domain.LedgerTransactionRecord{
		ID:                uuid.NewString(),
		Type:              txType,
		Blockchain:        pool.Blockchain,
		PrimaryWalletName: pool.PrimaryWalletName,
		Timestamp:         at,
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
