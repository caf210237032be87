package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"wallet-ledger/config"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrInsufficientFunds is returned by SendTransaction when the simulated wallet cannot cover amount + fee.
var ErrInsufficientFunds = errors.New("primary wallet has insufficient funds")

// StaticProvider is a primary wallet whose balance and fee come from configuration.
// Sends are simulated by deducting from the balance. It stands in for a real
// node or API connector in development and tests.
type StaticProvider struct {
	blockchain string
	name       string
	address    string
	params     *chaincfg.Params // bitcoin only

	mu      sync.Mutex
	balance decimal.Decimal
	fee     decimal.Decimal

	log zerolog.Logger
}

var _ ports.PrimaryWalletProvider = (*StaticProvider)(nil)

// NewStaticProvider creates a provider from one primary_wallets entry.
func NewStaticProvider(cfg config.PrimaryWalletConfig, log zerolog.Logger) (*StaticProvider, error) {
	p := &StaticProvider{
		blockchain: cfg.Blockchain,
		name:       cfg.Name,
		address:    cfg.Address,
		balance:    domain.Round(cfg.Balance),
		fee:        domain.Round(cfg.Fee),
		log:        log.With().Str("blockchain", cfg.Blockchain).Str("primary_wallet", cfg.Name).Logger(),
	}
	if cfg.Blockchain == blockchainBitcoin {
		params, err := bitcoinParams(cfg.Network)
		if err != nil {
			return nil, err
		}
		p.params = params
		if cfg.Address != "" && !validBitcoinAddress(cfg.Address, params) {
			return nil, fmt.Errorf("primary wallet %s/%s: address %s is not valid on %s", cfg.Blockchain, cfg.Name, cfg.Address, params.Name)
		}
	}
	return p, nil
}

func (p *StaticProvider) Blockchain() string { return p.blockchain }
func (p *StaticProvider) Name() string       { return p.name }

func (p *StaticProvider) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balance, nil
}

func (p *StaticProvider) EstimateFee(ctx context.Context, _ string, _ decimal.Decimal) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fee, nil
}

// SendTransaction deducts amount + opts.Fee and returns a generated transaction id.
func (p *StaticProvider) SendTransaction(ctx context.Context, toAddress string, amount decimal.Decimal, opts ports.SendOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	total := domain.Round(amount.Add(opts.Fee))

	p.mu.Lock()
	if total.GreaterThan(p.balance) {
		p.mu.Unlock()
		return "", fmt.Errorf("send %s to %s: %w", domain.FormatAmount(total), toAddress, ErrInsufficientFunds)
	}
	p.balance = domain.Round(p.balance.Sub(total))
	p.mu.Unlock()

	txID := uuid.NewString()
	p.log.Info().
		Str("tx_id", txID).
		Str("to_address", toAddress).
		Str("amount", domain.FormatAmount(amount)).
		Str("fee", domain.FormatAmount(opts.Fee)).
		Str("internal_wallet_id", opts.InternalWalletID).
		Str("reference", opts.Reference).
		Msg("Simulated on-chain transaction sent")
	return txID, nil
}

func (p *StaticProvider) VerifyAddress(ctx context.Context, address string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if p.params != nil {
		return validBitcoinAddress(address, p.params), nil
	}
	return plausibleAddress(address), nil
}

// SetBalance overwrites the simulated on-chain balance (deposits, mining rewards).
func (p *StaticProvider) SetBalance(balance decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.balance = domain.Round(balance)
}

// NewRegistryFromConfig builds a Registry with one StaticProvider per configured primary wallet.
func NewRegistryFromConfig(wallets []config.PrimaryWalletConfig, log zerolog.Logger) (*Registry, error) {
	reg := NewRegistry()
	for _, w := range wallets {
		p, err := NewStaticProvider(w, log)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
