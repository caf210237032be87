package badger

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/ledger"
	"wallet-ledger/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The ledger contract must behave the same on badger as on the memory backend.
func TestLedgerStore_TransferOnBadger(t *testing.T) {
	contract, err := ledger.NewContract()
	require.NoError(t, err)
	store := ledger.NewStore(newTestBackend(t), contract, zerolog.Nop())
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		_, err := store.Submit(ctx, domain.CreateInternalWallet{Wallet: domain.InternalWallet{
			ID: id, Blockchain: "bitcoin", PrimaryWalletName: "hot",
		}})
		require.NoError(t, err)
	}
	_, err = store.Submit(ctx, domain.UpdateInternalWalletBalance{
		WalletID: "a", NewBalance: decimal.RequireFromString("0.5"), RecordID: "fund-a", At: time.Now(),
	})
	require.NoError(t, err)

	transfer := func(amount string) error {
		_, err := store.Submit(ctx, domain.TransferBetweenInternalWallets{Record: domain.LedgerTransactionRecord{
			ID:                "t-" + amount,
			Type:              domain.LedgerTransactionTransfer,
			Blockchain:        "bitcoin",
			PrimaryWalletName: "hot",
			FromWalletID:      "a",
			ToWalletID:        "b",
			Amount:            decimal.RequireFromString(amount),
			Timestamp:         time.Now(),
		}})
		return err
	}
	require.NoError(t, transfer("0.2"))
	assert.True(t, apperror.HasCode(transfer("0.4"), apperror.CodeInsufficientWalletBalance))

	raw, err := store.Evaluate(ctx, domain.GetInternalWalletsByPrimaryWallet{
		Pool: domain.PoolKey{Blockchain: "bitcoin", PrimaryWalletName: "hot"},
	})
	require.NoError(t, err)
	var wallets []domain.InternalWallet
	require.NoError(t, json.Unmarshal(raw, &wallets))
	require.Len(t, wallets, 2)
	assert.Equal(t, "0.30000000", domain.FormatAmount(wallets[0].Balance))
	assert.Equal(t, "0.20000000", domain.FormatAmount(wallets[1].Balance))
}
