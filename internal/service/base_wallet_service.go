package service

import (
	"context"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/metrics"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// BaseWalletServiceImpl implements ports.BaseWalletService and ports.BaseWalletReconciler.
type BaseWalletServiceImpl struct {
	store     ports.LedgerStore
	providers ports.ProviderRegistry
	locker    ports.WalletLocker
	transfers ports.TransferService
	prefix    string
	metrics   *metrics.Collector
	log       zerolog.Logger
	now       func() time.Time
}

// NewBaseWalletService creates a new BaseWalletServiceImpl. Base wallet ids are
// prefix + blockchain + "_" + primary wallet name.
func NewBaseWalletService(
	store ports.LedgerStore,
	providers ports.ProviderRegistry,
	locker ports.WalletLocker,
	transfers ports.TransferService,
	prefix string,
	m *metrics.Collector,
	log zerolog.Logger,
) *BaseWalletServiceImpl {
	return &BaseWalletServiceImpl{
		store:     store,
		providers: providers,
		locker:    locker,
		transfers: transfers,
		prefix:    prefix,
		metrics:   m,
		log:       log,
		now:       utcNow,
	}
}

// CreateBaseInternalWallet returns the base wallet of a primary wallet, creating it on first use.
func (s *BaseWalletServiceImpl) CreateBaseInternalWallet(ctx context.Context, blockchain, primaryWalletName string) (*domain.InternalWallet, error) {
	pool := domain.PoolKey{Blockchain: blockchain, PrimaryWalletName: primaryWalletName}
	if _, err := resolveProvider(s.providers, pool); err != nil {
		return nil, err
	}
	id := domain.BaseWalletID(s.prefix, blockchain, primaryWalletName)

	release, err := s.locker.Lock(ctx, walletLockKey(id))
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := s.existingBaseWallet(ctx, id)
	if err != nil || existing != nil {
		return existing, err
	}

	now := s.now()
	w, err := submit[*domain.InternalWallet](ctx, s.store, domain.CreateInternalWallet{Wallet: domain.InternalWallet{
		ID:                id,
		Blockchain:        blockchain,
		PrimaryWalletName: primaryWalletName,
		Balance:           decimal.Zero,
		IsBaseWallet:      true,
		Metadata:          map[string]string{"type": "base"},
		CreatedAt:         now,
		UpdatedAt:         now,
	}})
	if apperror.HasCode(err, apperror.CodeWalletAlreadyExists) {
		// Another instance created it between our read and write.
		return s.existingBaseWallet(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("wallet_id", id).Str("primary_wallet", pool.String()).Msg("base wallet created")
	return w, nil
}

func (s *BaseWalletServiceImpl) existingBaseWallet(ctx context.Context, id string) (*domain.InternalWallet, error) {
	w, err := loadWallet(ctx, s.store, id)
	if apperror.HasCode(err, apperror.CodeWalletNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !w.IsBaseWallet {
		return nil, apperror.InternalError(fmt.Errorf("wallet %s occupies a base wallet id but is not a base wallet", id))
	}
	return w, nil
}

// GetWalletReadOnly reports on-chain balance against the internal allocation.
// The aggregate excludes the base wallet, so ExcessBalance is what the base wallet should hold.
func (s *BaseWalletServiceImpl) GetWalletReadOnly(ctx context.Context, blockchain, primaryWalletName string) (*domain.PrimaryWalletView, error) {
	pool := domain.PoolKey{Blockchain: blockchain, PrimaryWalletName: primaryWalletName}
	provider, err := resolveProvider(s.providers, pool)
	if err != nil {
		return nil, err
	}
	onChain, err := onChainBalance(ctx, provider)
	if err != nil {
		return nil, err
	}
	wallets, err := poolWallets(ctx, s.store, pool)
	if err != nil {
		return nil, err
	}
	aggregate := domain.SumBalances(wallets, false)

	return &domain.PrimaryWalletView{
		Blockchain:               blockchain,
		PrimaryWalletName:        primaryWalletName,
		OnChainBalance:           onChain,
		AggregateInternalBalance: aggregate,
		ExcessBalance:            domain.Round(onChain.Sub(aggregate)),
		BaseInternalWalletID:     domain.BaseWalletID(s.prefix, blockchain, primaryWalletName),
	}, nil
}

// WithdrawFromBaseInternalWallet sends excess funds held by the base wallet on-chain.
func (s *BaseWalletServiceImpl) WithdrawFromBaseInternalWallet(ctx context.Context, blockchain, primaryWalletName, toAddress string, amount decimal.Decimal) (res *domain.WithdrawalResult, err error) {
	defer func(start time.Time) { s.metrics.RecordOperation("withdraw_base", start, err) }(time.Now())

	amount, ok := domain.NormalizePositive(amount)
	if !ok {
		return nil, apperror.ErrInvalidAmount().With("amount", amount.String())
	}
	pool := domain.PoolKey{Blockchain: blockchain, PrimaryWalletName: primaryWalletName}
	provider, err := resolveProvider(s.providers, pool)
	if err != nil {
		return nil, err
	}

	id := domain.BaseWalletID(s.prefix, blockchain, primaryWalletName)
	base, err := loadWallet(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	if base.Balance.LessThan(amount) {
		return nil, apperror.ErrInsufficientWalletBalance(id, domain.FormatAmount(base.Balance), domain.FormatAmount(amount))
	}

	fee, err := provider.EstimateFee(ctx, toAddress, amount)
	if err != nil {
		return nil, apperror.ErrProvider(fmt.Errorf("estimate fee: %w", err))
	}
	fee = domain.Round(fee)
	total := domain.Round(amount.Add(fee))
	if base.Balance.LessThan(total) {
		return nil, apperror.ErrInsufficientWalletBalance(id, domain.FormatAmount(base.Balance), domain.FormatAmount(total))
	}

	return s.transfers.Withdraw(ctx, ports.WithdrawalRequest{
		InternalWalletID: id,
		ToAddress:        toAddress,
		Amount:           amount,
		Fee:              &fee,
	})
}

// ReconcileBaseInternalWallet sets the base wallet to on-chain balance minus every
// other wallet in the pool, floored at zero. The base wallet is created if missing.
func (s *BaseWalletServiceImpl) ReconcileBaseInternalWallet(ctx context.Context, blockchain, primaryWalletName string) (*domain.InternalWallet, error) {
	pool := domain.PoolKey{Blockchain: blockchain, PrimaryWalletName: primaryWalletName}
	provider, err := resolveProvider(s.providers, pool)
	if err != nil {
		return nil, err
	}
	base, err := s.CreateBaseInternalWallet(ctx, blockchain, primaryWalletName)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Lock(ctx, walletLockKey(base.ID), poolLockKey(pool))
	if err != nil {
		return nil, err
	}
	defer release()

	onChain, err := onChainBalance(ctx, provider)
	if err != nil {
		return nil, err
	}
	wallets, err := poolWallets(ctx, s.store, pool)
	if err != nil {
		return nil, err
	}
	target := domain.Round(onChain.Sub(domain.SumBalances(wallets, false)))
	if target.IsNegative() {
		target = decimal.Zero
	}

	w, err := submit[*domain.InternalWallet](ctx, s.store, domain.ReconcileBaseInternalWallet{
		WalletID:   base.ID,
		NewBalance: target,
		RecordID:   uuid.NewString(),
		At:         s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("wallet_id", w.ID).
		Str("on_chain_balance", domain.FormatAmount(onChain)).
		Str("balance", domain.FormatAmount(w.Balance)).
		Msg("base wallet reconciled")
	return w, nil
}
