package service

import (
	"context"
	"strings"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/metrics"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	store      ports.LedgerStore
	providers  ports.ProviderRegistry
	locker     ports.WalletLocker
	basePrefix string
	metrics    *metrics.Collector
	log        zerolog.Logger
	now        func() time.Time
}

// NewWalletService creates a new WalletServiceImpl. Ids starting with basePrefix
// are reserved for base wallets.
func NewWalletService(
	store ports.LedgerStore,
	providers ports.ProviderRegistry,
	locker ports.WalletLocker,
	basePrefix string,
	m *metrics.Collector,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		store:      store,
		providers:  providers,
		locker:     locker,
		basePrefix: basePrefix,
		metrics:    m,
		log:        log,
		now:        utcNow,
	}
}

// CreateInternalWallet registers a zero-balance wallet under a known primary wallet.
func (s *WalletServiceImpl) CreateInternalWallet(ctx context.Context, req ports.CreateWalletRequest) (w *domain.InternalWallet, err error) {
	defer func(start time.Time) { s.metrics.RecordOperation("create_wallet", start, err) }(time.Now())

	if req.ID == "" {
		return nil, apperror.Validation("wallet id is required")
	}
	if strings.HasPrefix(req.ID, s.basePrefix) {
		return nil, apperror.ErrReservedWalletID(req.ID, s.basePrefix)
	}
	pool := domain.PoolKey{Blockchain: req.Blockchain, PrimaryWalletName: req.PrimaryWalletName}
	if _, err := resolveProvider(s.providers, pool); err != nil {
		return nil, err
	}

	now := s.now()
	wallet := domain.InternalWallet{
		ID:                req.ID,
		Blockchain:        req.Blockchain,
		PrimaryWalletName: req.PrimaryWalletName,
		Balance:           decimal.Zero,
		Metadata:          copyMetadata(req.Metadata),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	w, err = submit[*domain.InternalWallet](ctx, s.store, domain.CreateInternalWallet{Wallet: wallet})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("wallet_id", w.ID).
		Str("blockchain", w.Blockchain).
		Str("primary_wallet", w.PrimaryWalletName).
		Msg("internal wallet created")
	return w, nil
}

func (s *WalletServiceImpl) GetInternalWallet(ctx context.Context, id string) (*domain.InternalWallet, error) {
	return loadWallet(ctx, s.store, id)
}

func (s *WalletServiceImpl) GetAllInternalWallets(ctx context.Context) ([]*domain.InternalWallet, error) {
	wallets, err := evaluate[[]*domain.InternalWallet](ctx, s.store, domain.GetAllInternalWallets{})
	if err != nil {
		return nil, err
	}
	if wallets == nil {
		wallets = []*domain.InternalWallet{}
	}
	return wallets, nil
}

func (s *WalletServiceImpl) GetInternalWalletsByPrimaryWallet(ctx context.Context, blockchain, primaryWalletName string) ([]*domain.InternalWallet, error) {
	return poolWallets(ctx, s.store, domain.PoolKey{Blockchain: blockchain, PrimaryWalletName: primaryWalletName})
}

// UpdateInternalWalletBalance overwrites a non-base wallet balance. It is the
// funding and admin path; base wallets only move through reconciliation.
func (s *WalletServiceImpl) UpdateInternalWalletBalance(ctx context.Context, id string, newBalance decimal.Decimal) (w *domain.InternalWallet, err error) {
	defer func(start time.Time) { s.metrics.RecordOperation("update_balance", start, err) }(time.Now())

	balance := domain.Round(newBalance)
	if balance.IsNegative() {
		return nil, apperror.ErrInvalidAmount().With("wallet_id", id).With("balance", newBalance.String())
	}

	current, err := loadWallet(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	if current.IsBaseWallet {
		return nil, apperror.ErrBaseWalletDirectMutationForbidden(id)
	}

	// Funding changes the pool aggregate, so it serializes with withdrawals.
	release, err := s.locker.Lock(ctx, walletLockKey(id), poolLockKey(current.Pool()))
	if err != nil {
		return nil, err
	}
	defer release()

	w, err = submit[*domain.InternalWallet](ctx, s.store, domain.UpdateInternalWalletBalance{
		WalletID:   id,
		NewBalance: balance,
		RecordID:   uuid.NewString(),
		At:         s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("wallet_id", id).
		Str("previous_balance", domain.FormatAmount(current.Balance)).
		Str("balance", domain.FormatAmount(w.Balance)).
		Msg("internal wallet balance updated")
	return w, nil
}

func copyMetadata(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
