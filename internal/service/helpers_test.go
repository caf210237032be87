package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"wallet-ledger/internal/adapter/provider"
	"wallet-ledger/internal/adapter/storage/memory"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/core/ports/mocks"
	"wallet-ledger/internal/ledger"
	"wallet-ledger/internal/lock"
	"wallet-ledger/internal/metrics"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	btcHot  = domain.PoolKey{Blockchain: "bitcoin", PrimaryWalletName: "hot"}
	btcCold = domain.PoolKey{Blockchain: "bitcoin", PrimaryWalletName: "cold"}
	ltcHot  = domain.PoolKey{Blockchain: "litecoin", PrimaryWalletName: "hot"}
)

var errBalanceUnavailable = errors.New("node unreachable")

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fmtAmt(v decimal.Decimal) string {
	return domain.FormatAmount(v)
}

// ledgerEnv wires every service against the in-memory ledger and gomock providers.
type ledgerEnv struct {
	ctrl      *gomock.Controller
	store     *ledger.Store
	registry  *provider.Registry
	providers map[domain.PoolKey]*mocks.MockPrimaryWalletProvider
	metrics   *metrics.Collector

	wallets   *WalletServiceImpl
	base      *BaseWalletServiceImpl
	transfers *TransferServiceImpl
	templates *TemplateServiceImpl
	recon     *ReconciliationServiceImpl

	mu      sync.Mutex
	onChain map[domain.PoolKey]decimal.Decimal
}

func defaultOptions() ReconciliationOptions {
	return ReconciliationOptions{
		Strategy:         domain.StrategyScheduled,
		WarningThreshold: d("0.00001"),
		Concurrency:      2,
	}
}

func newLedgerEnv(t *testing.T, opts ReconciliationOptions) *ledgerEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	contract, err := ledger.NewContract()
	require.NoError(t, err)

	e := &ledgerEnv{
		ctrl:      ctrl,
		store:     ledger.NewStore(memory.NewBackend(), contract, zerolog.Nop()),
		registry:  provider.NewRegistry(),
		providers: make(map[domain.PoolKey]*mocks.MockPrimaryWalletProvider),
		metrics:   metrics.NewCollector(),
		onChain:   make(map[domain.PoolKey]decimal.Decimal),
	}
	for _, pool := range []domain.PoolKey{btcHot, btcCold, ltcHot} {
		e.addProvider(t, pool)
	}

	locker := lock.NewKeyedMutex()
	log := zerolog.Nop()
	e.recon = NewReconciliationService(e.store, e.registry, opts, e.metrics, log)
	e.wallets = NewWalletService(e.store, e.registry, locker, "base_", e.metrics, log)
	e.transfers = NewTransferService(e.store, e.registry, locker, e.recon, nil, time.Hour, e.metrics, log)
	e.templates = NewTemplateService(e.store, locker, e.recon, e.metrics, log)
	e.base = NewBaseWalletService(e.store, e.registry, locker, e.transfers, "base_", e.metrics, log)
	e.recon.SetBaseWalletReconciler(e.base)
	return e
}

// addProvider registers a mock whose balance is whatever setOnChain last stored.
func (e *ledgerEnv) addProvider(t *testing.T, pool domain.PoolKey) *mocks.MockPrimaryWalletProvider {
	t.Helper()
	m := mocks.NewMockPrimaryWalletProvider(e.ctrl)
	m.EXPECT().Blockchain().Return(pool.Blockchain).AnyTimes()
	m.EXPECT().Name().Return(pool.PrimaryWalletName).AnyTimes()
	m.EXPECT().GetBalance(gomock.Any()).DoAndReturn(func(context.Context) (decimal.Decimal, error) {
		e.mu.Lock()
		defer e.mu.Unlock()
		bal, ok := e.onChain[pool]
		if !ok {
			return decimal.Zero, errBalanceUnavailable
		}
		return bal, nil
	}).AnyTimes()
	require.NoError(t, e.registry.Register(m))
	e.providers[pool] = m
	return m
}

func (e *ledgerEnv) setOnChain(pool domain.PoolKey, balance string) {
	e.mu.Lock()
	e.onChain[pool] = d(balance)
	e.mu.Unlock()
}

// fund creates a wallet and sets its balance through the funding path.
func (e *ledgerEnv) fund(t *testing.T, pool domain.PoolKey, id, balance string) {
	t.Helper()
	ctx := context.Background()
	_, err := e.wallets.CreateInternalWallet(ctx, portsCreate(pool, id))
	require.NoError(t, err)
	if balance != "0" {
		_, err = e.wallets.UpdateInternalWalletBalance(ctx, id, d(balance))
		require.NoError(t, err)
	}
}

func (e *ledgerEnv) balance(t *testing.T, id string) string {
	t.Helper()
	w, err := e.wallets.GetInternalWallet(context.Background(), id)
	require.NoError(t, err)
	return fmtAmt(w.Balance)
}

func (e *ledgerEnv) poolTotal(t *testing.T, pool domain.PoolKey) string {
	t.Helper()
	wallets, err := e.wallets.GetInternalWalletsByPrimaryWallet(context.Background(), pool.Blockchain, pool.PrimaryWalletName)
	require.NoError(t, err)
	return fmtAmt(domain.SumBalances(wallets, true))
}

func portsCreate(pool domain.PoolKey, id string) ports.CreateWalletRequest {
	return ports.CreateWalletRequest{
		Blockchain:        pool.Blockchain,
		PrimaryWalletName: pool.PrimaryWalletName,
		ID:                id,
	}
}

// decimalMatcher compares by value; gomock.Eq would also compare exponents.
type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Matches(x any) bool {
	v, ok := x.(decimal.Decimal)
	return ok && v.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return "is decimal " + m.want.String()
}

func decEq(s string) gomock.Matcher {
	return decimalMatcher{want: d(s)}
}
