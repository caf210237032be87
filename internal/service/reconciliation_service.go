package service

import (
	"context"
	"sync"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/metrics"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ReconciliationOptions configures the reconciliation engine.
type ReconciliationOptions struct {
	Strategy         domain.ReconciliationStrategy
	WarningThreshold decimal.Decimal
	StrictMode       bool
	// AbsorbSurplus re-derives the base wallet after every recorded discrepancy.
	AbsorbSurplus bool
	// Concurrency bounds how many primary wallets a sweep reconciles at once.
	Concurrency int
}

// ReconciliationServiceImpl implements ports.ReconciliationService and ports.TransactionVerifier.
type ReconciliationServiceImpl struct {
	store     ports.LedgerStore
	providers ports.ProviderRegistry
	base      ports.BaseWalletReconciler
	opts      ReconciliationOptions
	metrics   *metrics.Collector
	log       zerolog.Logger
	now       func() time.Time

	mu      sync.Mutex
	blocked map[domain.PoolKey]*domain.ReconciliationResult
}

// NewReconciliationService creates a new ReconciliationServiceImpl.
func NewReconciliationService(
	store ports.LedgerStore,
	providers ports.ProviderRegistry,
	opts ReconciliationOptions,
	m *metrics.Collector,
	log zerolog.Logger,
) *ReconciliationServiceImpl {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &ReconciliationServiceImpl{
		store:     store,
		providers: providers,
		opts:      opts,
		metrics:   m,
		log:       log,
		now:       utcNow,
		blocked:   make(map[domain.PoolKey]*domain.ReconciliationResult),
	}
}

// SetBaseWalletReconciler wires the base wallet sink used when AbsorbSurplus is on.
// The base wallet service depends on transfers, which depend on this service, so
// it is attached after construction.
func (s *ReconciliationServiceImpl) SetBaseWalletReconciler(r ports.BaseWalletReconciler) {
	s.base = r
}

// ReconcileWallet compares one primary wallet against its internal wallets,
// base wallet included, and records a discrepancy beyond the warning threshold.
func (s *ReconciliationServiceImpl) ReconcileWallet(ctx context.Context, blockchain, primaryWalletName string) (*domain.ReconciliationResult, error) {
	pool := domain.PoolKey{Blockchain: blockchain, PrimaryWalletName: primaryWalletName}
	return s.reconcile(ctx, pool, domain.TriggerManual, "")
}

func (s *ReconciliationServiceImpl) reconcile(ctx context.Context, pool domain.PoolKey, trigger domain.ReconciliationTrigger, txType string) (res *domain.ReconciliationResult, err error) {
	defer func() { s.metrics.RecordReconciliation(trigger, res, err) }()

	provider, err := resolveProvider(s.providers, pool)
	if err != nil {
		return nil, apperror.ErrReconciliationFailed(pool.Blockchain, pool.PrimaryWalletName, err)
	}
	onChain, err := onChainBalance(ctx, provider)
	if err != nil {
		return nil, apperror.ErrReconciliationFailed(pool.Blockchain, pool.PrimaryWalletName, err)
	}
	wallets, err := poolWallets(ctx, s.store, pool)
	if err != nil {
		return nil, apperror.ErrReconciliationFailed(pool.Blockchain, pool.PrimaryWalletName, err)
	}

	res = domain.NewReconciliationResult(pool, onChain, domain.SumBalances(wallets, true), s.opts.WarningThreshold, s.now())
	if !res.HasDiscrepancy {
		s.clearGate(pool)
		s.log.Debug().
			Str("primary_wallet", pool.String()).
			Str("on_chain_balance", domain.FormatAmount(res.OnChainBalance)).
			Msg("balances reconciled")
		return res, nil
	}

	d := domain.BalanceDiscrepancy{
		ID:                       uuid.NewString(),
		Blockchain:               pool.Blockchain,
		PrimaryWalletName:        pool.PrimaryWalletName,
		OnChainBalance:           res.OnChainBalance,
		AggregateInternalBalance: res.AggregateInternalBalance,
		Difference:               res.Difference,
		Threshold:                s.opts.WarningThreshold,
		Trigger:                  trigger,
		TransactionType:          txType,
		DetectedAt:               res.Timestamp,
	}
	if _, err := s.store.Submit(ctx, domain.RecordBalanceDiscrepancy{Discrepancy: d}); err != nil {
		return nil, apperror.ErrReconciliationFailed(pool.Blockchain, pool.PrimaryWalletName, err)
	}
	res.DiscrepancyID = d.ID

	s.log.Warn().
		Str("primary_wallet", pool.String()).
		Str("discrepancy_id", d.ID).
		Str("on_chain_balance", domain.FormatAmount(res.OnChainBalance)).
		Str("aggregate_balance", domain.FormatAmount(res.AggregateInternalBalance)).
		Str("difference", domain.FormatAmount(res.Difference)).
		Str("trigger", string(trigger)).
		Msg("balance discrepancy recorded")

	if s.opts.AbsorbSurplus && s.base != nil {
		if _, err := s.base.ReconcileBaseInternalWallet(ctx, pool.Blockchain, pool.PrimaryWalletName); err != nil {
			s.log.Warn().Err(err).Str("primary_wallet", pool.String()).Msg("failed to absorb difference into base wallet")
		}
	}
	return res, nil
}

// PerformFullReconciliation reconciles every registered primary wallet. A failure
// on one wallet is reported in the result and never stops the others.
func (s *ReconciliationServiceImpl) PerformFullReconciliation(ctx context.Context) *domain.ReconciliationReport {
	return s.sweep(ctx, domain.TriggerManual)
}

// RunScheduled is the scheduler's entry point.
func (s *ReconciliationServiceImpl) RunScheduled(ctx context.Context) *domain.ReconciliationReport {
	return s.sweep(ctx, domain.TriggerScheduled)
}

func (s *ReconciliationServiceImpl) sweep(ctx context.Context, trigger domain.ReconciliationTrigger) *domain.ReconciliationReport {
	providers := s.providers.List()
	report := &domain.ReconciliationReport{
		Results:   make([]*domain.ReconciliationResult, 0, len(providers)),
		StartedAt: s.now(),
	}

	results := make([]*domain.ReconciliationResult, len(providers))
	errs := make([]error, len(providers))

	// Workers never return an error, so one wallet cannot cancel the rest.
	var eg errgroup.Group
	eg.SetLimit(s.opts.Concurrency)
	for i, p := range providers {
		pool := domain.PoolKey{Blockchain: p.Blockchain(), PrimaryWalletName: p.Name()}
		eg.Go(func() error {
			results[i], errs[i] = s.reconcile(ctx, pool, trigger, "")
			return nil
		})
	}
	_ = eg.Wait()

	for i, p := range providers {
		if errs[i] != nil {
			report.Failures = append(report.Failures, domain.ReconciliationFailure{
				Blockchain:        p.Blockchain(),
				PrimaryWalletName: p.Name(),
				Err:               errs[i],
				Message:           errs[i].Error(),
			})
			s.log.Error().Err(errs[i]).
				Str("primary_wallet", p.Blockchain()+"/"+p.Name()).
				Msg("reconciliation failed")
			continue
		}
		report.Results = append(report.Results, results[i])
	}
	report.FinishedAt = s.now()

	s.log.Info().
		Str("trigger", string(trigger)).
		Int("reconciled", len(report.Results)).
		Int("failed", len(report.Failures)).
		Int("discrepancies", report.DiscrepancyCount()).
		Msg("full reconciliation finished")
	return report
}

// VerifyBalanceAfterTransaction reconciles the pool a committed transaction touched.
// In strict mode a discrepancy blocks later operations on the pool and is
// returned as BalanceVerificationFailed; the committed transaction stands.
func (s *ReconciliationServiceImpl) VerifyBalanceAfterTransaction(
	ctx context.Context,
	blockchain, primaryWalletName string,
	txType domain.LedgerTransactionType,
	details map[string]string,
) (*domain.VerificationResult, error) {
	if !s.opts.Strategy.AfterTransaction() {
		return &domain.VerificationResult{Verified: true, Skipped: true}, nil
	}

	pool := domain.PoolKey{Blockchain: blockchain, PrimaryWalletName: primaryWalletName}
	res, err := s.reconcile(ctx, pool, domain.TriggerAfterTransaction, string(txType))
	if err != nil {
		return nil, err
	}
	if !res.HasDiscrepancy {
		return &domain.VerificationResult{Verified: true, ReconciliationResult: res}, nil
	}

	if s.opts.StrictMode {
		s.block(pool, res)
		s.log.Error().
			Str("primary_wallet", pool.String()).
			Str("transaction_type", string(txType)).
			Interface("transaction", details).
			Str("difference", domain.FormatAmount(res.Difference)).
			Msg("strict mode: primary wallet blocked until balances reconcile")
		return nil, s.gateError(pool, res)
	}
	return &domain.VerificationResult{Verified: false, ReconciliationResult: res}, nil
}

// CheckGate fails while a strict-mode discrepancy is outstanding for pool.
func (s *ReconciliationServiceImpl) CheckGate(pool domain.PoolKey) error {
	if !s.opts.StrictMode {
		return nil
	}
	s.mu.Lock()
	res, blocked := s.blocked[pool]
	s.mu.Unlock()
	if !blocked {
		return nil
	}
	return s.gateError(pool, res)
}

// GetBalanceDiscrepancies lists recorded discrepancies, oldest first. Empty
// blockchain and name list every primary wallet.
func (s *ReconciliationServiceImpl) GetBalanceDiscrepancies(ctx context.Context, blockchain, primaryWalletName string) ([]domain.BalanceDiscrepancy, error) {
	out, err := evaluate[[]domain.BalanceDiscrepancy](ctx, s.store, domain.GetBalanceDiscrepancies{
		Pool: domain.PoolKey{Blockchain: blockchain, PrimaryWalletName: primaryWalletName},
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.BalanceDiscrepancy{}
	}
	return out, nil
}

func (s *ReconciliationServiceImpl) gateError(pool domain.PoolKey, res *domain.ReconciliationResult) error {
	return apperror.ErrBalanceVerificationFailed(pool.Blockchain, pool.PrimaryWalletName,
		domain.FormatAmount(res.Difference), domain.FormatAmount(s.opts.WarningThreshold))
}

func (s *ReconciliationServiceImpl) block(pool domain.PoolKey, res *domain.ReconciliationResult) {
	s.mu.Lock()
	s.blocked[pool] = res
	s.mu.Unlock()
	s.metrics.SetStrictGate(pool, true)
}

func (s *ReconciliationServiceImpl) clearGate(pool domain.PoolKey) {
	s.mu.Lock()
	_, was := s.blocked[pool]
	delete(s.blocked, pool)
	s.mu.Unlock()
	if was {
		s.metrics.SetStrictGate(pool, false)
		s.log.Info().Str("primary_wallet", pool.String()).Msg("strict mode gate cleared")
	}
}
