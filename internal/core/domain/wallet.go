package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// InternalWallet is an off-chain sub-ledger balance mapped to exactly one primary wallet.
// IDs are unique across every blockchain and primary wallet.
type InternalWallet struct {
	ID                string            `json:"id"`
	Blockchain        string            `json:"blockchain"`
	PrimaryWalletName string            `json:"primary_wallet_name"`
	Balance           decimal.Decimal   `json:"balance"`
	IsBaseWallet      bool              `json:"is_base_wallet"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// Pool returns the primary wallet this internal wallet draws from.
func (w *InternalWallet) Pool() PoolKey {
	return PoolKey{Blockchain: w.Blockchain, PrimaryWalletName: w.PrimaryWalletName}
}

// Clone returns an independent copy, including metadata.
func (w *InternalWallet) Clone() *InternalWallet {
	c := *w
	if w.Metadata != nil {
		c.Metadata = make(map[string]string, len(w.Metadata))
		for k, v := range w.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}

// PoolKey identifies one primary wallet: the custody domain internal wallets share.
type PoolKey struct {
	Blockchain        string `json:"blockchain"`
	PrimaryWalletName string `json:"primary_wallet_name"`
}

func (k PoolKey) String() string {
	return k.Blockchain + "/" + k.PrimaryWalletName
}

// BaseWalletID returns the reserved id of the base wallet for a primary wallet.
func BaseWalletID(prefix, blockchain, primaryWalletName string) string {
	return prefix + blockchain + "_" + primaryWalletName
}

// SumBalances adds up wallet balances, optionally skipping base wallets.
func SumBalances(wallets []*InternalWallet, includeBase bool) decimal.Decimal {
	total := decimal.Zero
	for _, w := range wallets {
		if w.IsBaseWallet && !includeBase {
			continue
		}
		total = total.Add(w.Balance)
	}
	return Round(total)
}

// SortWallets orders wallets by id so listings are deterministic.
func SortWallets(wallets []*InternalWallet) {
	sort.Slice(wallets, func(i, j int) bool { return wallets[i].ID < wallets[j].ID })
}

// PrimaryWalletView is the read-only projection of a primary wallet exposed upward.
// It never carries signing material.
type PrimaryWalletView struct {
	Blockchain               string          `json:"blockchain"`
	PrimaryWalletName        string          `json:"primary_wallet_name"`
	OnChainBalance           decimal.Decimal `json:"on_chain_balance"`
	AggregateInternalBalance decimal.Decimal `json:"aggregate_internal_balance"`
	ExcessBalance            decimal.Decimal `json:"excess_balance"`
	BaseInternalWalletID     string          `json:"base_internal_wallet_id"`
}
