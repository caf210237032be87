package service

import (
	"context"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/metrics"
	"wallet-ledger/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TemplateServiceImpl implements ports.TemplateService: merchant fee splits and
// payroll fan-outs, each committed as one ledger operation.
type TemplateServiceImpl struct {
	store    ports.LedgerStore
	locker   ports.WalletLocker
	verifier ports.TransactionVerifier
	metrics  *metrics.Collector
	log      zerolog.Logger
	now      func() time.Time
}

// NewTemplateService creates a new TemplateServiceImpl.
func NewTemplateService(
	store ports.LedgerStore,
	locker ports.WalletLocker,
	verifier ports.TransactionVerifier,
	m *metrics.Collector,
	log zerolog.Logger,
) *TemplateServiceImpl {
	return &TemplateServiceImpl{
		store:    store,
		locker:   locker,
		verifier: verifier,
		metrics:  m,
		log:      log,
		now:      utcNow,
	}
}

// ProcessMerchantTransaction debits amount from the payer and splits it between
// the merchant and the fee wallet using the current fee configuration.
func (s *TemplateServiceImpl) ProcessMerchantTransaction(ctx context.Context, req ports.MerchantTransactionRequest) (rec *domain.LedgerTransactionRecord, err error) {
	defer func(start time.Time) { s.metrics.RecordOperation("merchant_transaction", start, err) }(time.Now())

	if req.FromWalletID == "" || req.ToWalletID == "" || req.FeeWalletID == "" {
		return nil, apperror.Validation("payer, merchant and fee wallet ids are required")
	}
	if req.FromWalletID == req.ToWalletID {
		return nil, apperror.Validation("payer and merchant must differ").With("wallet_id", req.FromWalletID)
	}
	amount, ok := domain.NormalizePositive(req.Amount)
	if !ok {
		return nil, apperror.ErrInvalidAmount().With("amount", req.Amount.String())
	}

	from, err := loadWallet(ctx, s.store, req.FromWalletID)
	if err != nil {
		return nil, err
	}
	pool := from.Pool()
	for _, id := range []string{req.ToWalletID, req.FeeWalletID} {
		w, err := loadWallet(ctx, s.store, id)
		if err != nil {
			return nil, err
		}
		if err := samePool(pool, w); err != nil {
			return nil, err
		}
	}
	if err := s.verifier.CheckGate(pool); err != nil {
		return nil, err
	}

	cfg, err := s.GetFeeConfiguration(ctx)
	if err != nil {
		return nil, err
	}
	fee, net := cfg.Compute(req.ToWalletID, amount)
	if net.IsNegative() {
		return nil, apperror.ErrInvalidAmount().
			With("amount", domain.FormatAmount(amount)).
			With("fee_amount", domain.FormatAmount(fee))
	}

	rec, err = s.merchantLocked(ctx, pool, req, amount, fee, net)
	if err != nil {
		return nil, err
	}

	verifyAfterTransaction(ctx, s.verifier, s.log, pool, domain.LedgerTransactionMerchantPayment, map[string]string{
		"record_id":  rec.ID,
		"from":       rec.FromWalletID,
		"merchant":   rec.ToWalletID,
		"amount":     domain.FormatAmount(rec.Amount),
		"fee_amount": domain.FormatAmount(rec.FeeAmount),
	})
	return rec, nil
}

func (s *TemplateServiceImpl) merchantLocked(
	ctx context.Context,
	pool domain.PoolKey,
	req ports.MerchantTransactionRequest,
	amount, fee, net decimal.Decimal,
) (*domain.LedgerTransactionRecord, error) {
	release, err := s.locker.Lock(ctx,
		walletLockKey(req.FromWalletID), walletLockKey(req.ToWalletID), walletLockKey(req.FeeWalletID))
	if err != nil {
		return nil, err
	}
	defer release()

	from, err := loadWallet(ctx, s.store, req.FromWalletID)
	if err != nil {
		return nil, err
	}
	if from.Balance.LessThan(amount) {
		return nil, apperror.ErrInsufficientWalletBalance(from.ID, domain.FormatAmount(from.Balance), domain.FormatAmount(amount))
	}

	rec := newRecord(domain.LedgerTransactionMerchantPayment, pool, s.now())
	rec.FromWalletID = req.FromWalletID
	rec.ToWalletID = req.ToWalletID
	rec.FeeWalletID = req.FeeWalletID
	rec.Amount = amount
	rec.FeeAmount = fee
	rec.NetAmount = net
	out, err := submit[*domain.LedgerTransactionRecord](ctx, s.store, domain.ProcessMerchantTransaction{Record: rec})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("record_id", out.ID).
		Str("from", out.FromWalletID).
		Str("merchant", out.ToWalletID).
		Str("amount", domain.FormatAmount(out.Amount)).
		Str("fee_amount", domain.FormatAmount(out.FeeAmount)).
		Str("net_amount", domain.FormatAmount(out.NetAmount)).
		Msg("merchant transaction committed")
	return out, nil
}

// ProcessPayroll pays every configured employee from the employer wallet in one
// ledger operation. Each (employer, date) pair runs at most once.
func (s *TemplateServiceImpl) ProcessPayroll(ctx context.Context, employerWalletID string, payrollDate time.Time) (rec *domain.LedgerTransactionRecord, err error) {
	defer func(start time.Time) { s.metrics.RecordOperation("payroll", start, err) }(time.Now())

	employer, err := loadWallet(ctx, s.store, employerWalletID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.GetPayrollConfiguration(ctx, employerWalletID)
	if err != nil {
		return nil, err
	}
	payments := cfg.Payments()
	total := cfg.Total()

	pool := employer.Pool()
	lockKeys := []string{walletLockKey(employerWalletID)}
	for _, p := range payments {
		w, err := loadWallet(ctx, s.store, p.WalletID)
		if apperror.HasCode(err, apperror.CodeWalletNotFound) {
			return nil, apperror.ErrEmployeeWalletNotFound(p.WalletID)
		}
		if err != nil {
			return nil, err
		}
		if err := samePool(pool, w); err != nil {
			return nil, err
		}
		lockKeys = append(lockKeys, walletLockKey(p.WalletID))
	}
	if err := s.verifier.CheckGate(pool); err != nil {
		return nil, err
	}

	rec, err = s.payrollLocked(ctx, pool, employerWalletID, payrollDate.UTC().Format(domain.PayrollDateLayout), payments, total, lockKeys)
	if err != nil {
		return nil, err
	}

	verifyAfterTransaction(ctx, s.verifier, s.log, pool, domain.LedgerTransactionPayroll, map[string]string{
		"record_id":    rec.ID,
		"employer":     rec.FromWalletID,
		"payroll_date": rec.PayrollDate,
		"amount":       domain.FormatAmount(rec.Amount),
	})
	return rec, nil
}

func (s *TemplateServiceImpl) payrollLocked(
	ctx context.Context,
	pool domain.PoolKey,
	employerWalletID, date string,
	payments []domain.Payment,
	total decimal.Decimal,
	lockKeys []string,
) (*domain.LedgerTransactionRecord, error) {
	release, err := s.locker.Lock(ctx, lockKeys...)
	if err != nil {
		return nil, err
	}
	defer release()

	employer, err := loadWallet(ctx, s.store, employerWalletID)
	if err != nil {
		return nil, err
	}
	if employer.Balance.LessThan(total) {
		return nil, apperror.ErrInsufficientWalletBalance(employerWalletID, domain.FormatAmount(employer.Balance), domain.FormatAmount(total))
	}

	rec := newRecord(domain.LedgerTransactionPayroll, pool, s.now())
	rec.FromWalletID = employerWalletID
	rec.Recipients = payments
	rec.Amount = total
	rec.PayrollDate = date
	out, err := submit[*domain.LedgerTransactionRecord](ctx, s.store, domain.ProcessPayroll{Record: rec})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("record_id", out.ID).
		Str("employer", employerWalletID).
		Str("payroll_date", date).
		Int("employees", len(out.Recipients)).
		Str("amount", domain.FormatAmount(out.Amount)).
		Msg("payroll processed")
	return out, nil
}

// GetFeeConfiguration returns the stored fee schedule, or the default until one is stored.
func (s *TemplateServiceImpl) GetFeeConfiguration(ctx context.Context) (*domain.FeeConfiguration, error) {
	cfg, err := evaluate[*domain.FeeConfiguration](ctx, s.store, domain.GetFeeConfiguration{})
	if apperror.HasCode(err, apperror.CodeConfigurationNotFound) {
		def := domain.DefaultFeeConfiguration()
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdateFeeConfiguration replaces the fee schedule wholesale.
func (s *TemplateServiceImpl) UpdateFeeConfiguration(ctx context.Context, cfg domain.FeeConfiguration) (*domain.FeeConfiguration, error) {
	cfg.UpdatedAt = s.now()
	out, err := submit[*domain.FeeConfiguration](ctx, s.store, domain.UpdateFeeConfiguration{Config: cfg})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int64("version", out.Version).
		Str("default_fee_percentage", out.DefaultFeePercentage.String()).
		Msg("fee configuration updated")
	return out, nil
}

func (s *TemplateServiceImpl) GetPayrollConfiguration(ctx context.Context, employerWalletID string) (*domain.PayrollConfiguration, error) {
	return evaluate[*domain.PayrollConfiguration](ctx, s.store, domain.GetPayrollConfiguration{EmployerWalletID: employerWalletID})
}

// UpdatePayrollConfiguration replaces an employer's payroll wholesale.
func (s *TemplateServiceImpl) UpdatePayrollConfiguration(ctx context.Context, cfg domain.PayrollConfiguration) (*domain.PayrollConfiguration, error) {
	cfg.UpdatedAt = s.now()
	out, err := submit[*domain.PayrollConfiguration](ctx, s.store, domain.UpdatePayrollConfiguration{Config: cfg})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("employer", out.EmployerWalletID).
		Int64("version", out.Version).
		Int("employees", len(out.Employees)).
		Msg("payroll configuration updated")
	return out, nil
}
