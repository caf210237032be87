package service

import (
	"context"
	"testing"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payday = time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)

func storeFeeConfig(t *testing.T, e *ledgerEnv, pct, minFee, maxFee string, specific map[string]decimal.Decimal) {
	t.Helper()
	_, err := e.templates.UpdateFeeConfiguration(context.Background(), domain.FeeConfiguration{
		DefaultFeePercentage: d(pct),
		MinimumFee:           d(minFee),
		MaximumFee:           d(maxFee),
		MerchantSpecificFees: specific,
	})
	require.NoError(t, err)
}

func storePayroll(t *testing.T, e *ledgerEnv, employer string, employees map[string]decimal.Decimal) {
	t.Helper()
	_, err := e.templates.UpdatePayrollConfiguration(context.Background(), domain.PayrollConfiguration{
		EmployerWalletID: employer,
		Cycle:            domain.PayrollCycleMonthly,
		Day:              31,
		Employees:        employees,
	})
	require.NoError(t, err)
}

// ==================== Merchant Transaction Tests ====================

func TestTemplateService_ProcessMerchantTransaction_FeeClampedToMaximum(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	e.fund(t, btcHot, "payer", "1")
	e.fund(t, btcHot, "shop", "0")
	e.fund(t, btcHot, "fees", "0")
	storeFeeConfig(t, e, "20", "0.0001", "0.01", nil)

	rec, err := e.templates.ProcessMerchantTransaction(context.Background(), ports.MerchantTransactionRequest{
		FromWalletID: "payer", ToWalletID: "shop", FeeWalletID: "fees", Amount: d("0.1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "0.01000000", fmtAmt(rec.FeeAmount))
	assert.Equal(t, "0.09000000", fmtAmt(rec.NetAmount))

	assert.Equal(t, "0.90000000", e.balance(t, "payer"))
	assert.Equal(t, "0.09000000", e.balance(t, "shop"))
	assert.Equal(t, "0.01000000", e.balance(t, "fees"))
	assert.Equal(t, "1.00000000", e.poolTotal(t, btcHot))
}

func TestTemplateService_ProcessMerchantTransaction_MerchantSpecificRate(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	e.fund(t, btcHot, "payer", "2")
	e.fund(t, btcHot, "vip", "0")
	e.fund(t, btcHot, "fees", "0")
	storeFeeConfig(t, e, "2.5", "0.0001", "0.01", map[string]decimal.Decimal{"vip": d("0.5")})

	rec, err := e.templates.ProcessMerchantTransaction(context.Background(), ports.MerchantTransactionRequest{
		FromWalletID: "payer", ToWalletID: "vip", FeeWalletID: "fees", Amount: d("1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "0.00500000", fmtAmt(rec.FeeAmount))
	assert.Equal(t, "0.99500000", e.balance(t, "vip"))
}

func TestTemplateService_ProcessMerchantTransaction_DefaultConfiguration(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	e.fund(t, btcHot, "payer", "1")
	e.fund(t, btcHot, "shop", "0")
	e.fund(t, btcHot, "fees", "0")

	cfg, err := e.templates.GetFeeConfiguration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), cfg.Version)

	rec, err := e.templates.ProcessMerchantTransaction(context.Background(), ports.MerchantTransactionRequest{
		FromWalletID: "payer", ToWalletID: "shop", FeeWalletID: "fees", Amount: d("0.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "0.00500000", fmtAmt(rec.FeeAmount), "1% default rate")
}

func TestTemplateService_ProcessMerchantTransaction_Rejections(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	e.fund(t, btcHot, "payer", "0.05")
	e.fund(t, btcHot, "shop", "0")
	e.fund(t, btcHot, "fees", "0")
	e.fund(t, btcCold, "cold-fees", "0")
	ctx := context.Background()

	_, err := e.templates.ProcessMerchantTransaction(ctx, ports.MerchantTransactionRequest{
		FromWalletID: "payer", ToWalletID: "shop", FeeWalletID: "fees", Amount: d("0.1"),
	})
	assert.True(t, apperror.HasCode(err, apperror.CodeInsufficientWalletBalance))

	_, err = e.templates.ProcessMerchantTransaction(ctx, ports.MerchantTransactionRequest{
		FromWalletID: "payer", ToWalletID: "shop", FeeWalletID: "cold-fees", Amount: d("0.01"),
	})
	assert.True(t, apperror.HasCode(err, apperror.CodeCrossPrimaryWalletTransferForbidden))

	_, err = e.templates.ProcessMerchantTransaction(ctx, ports.MerchantTransactionRequest{
		FromWalletID: "payer", ToWalletID: "payer", FeeWalletID: "fees", Amount: d("0.01"),
	})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidAmount))

	// Below the minimum fee the net amount would be negative.
	_, err = e.templates.ProcessMerchantTransaction(ctx, ports.MerchantTransactionRequest{
		FromWalletID: "payer", ToWalletID: "shop", FeeWalletID: "fees", Amount: d("0.00005"),
	})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidAmount))

	assert.Equal(t, "0.05000000", e.balance(t, "payer"))
	assert.Equal(t, "0.00000000", e.balance(t, "shop"))
	assert.Equal(t, "0.00000000", e.balance(t, "fees"))
}

func TestTemplateService_UpdateFeeConfiguration_Versioned(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	ctx := context.Background()

	storeFeeConfig(t, e, "1", "0.0001", "0.01", nil)
	storeFeeConfig(t, e, "2", "0.0001", "0.01", nil)

	cfg, err := e.templates.GetFeeConfiguration(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cfg.Version)
	assert.True(t, cfg.DefaultFeePercentage.Equal(d("2")))

	_, err = e.templates.UpdateFeeConfiguration(ctx, domain.FeeConfiguration{
		DefaultFeePercentage: d("120"), MinimumFee: d("0"), MaximumFee: d("1"),
	})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidAmount))
}

// ==================== Payroll Tests ====================

func TestTemplateService_ProcessPayroll_Success(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	e.fund(t, btcHot, "corp", "1")
	e.fund(t, btcHot, "emp-1", "0")
	e.fund(t, btcHot, "emp-2", "0.1")
	storePayroll(t, e, "corp", map[string]decimal.Decimal{"emp-1": d("0.2"), "emp-2": d("0.3")})

	rec, err := e.templates.ProcessPayroll(context.Background(), "corp", payday)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-31", rec.PayrollDate)
	assert.Equal(t, "0.50000000", fmtAmt(rec.Amount))
	assert.Len(t, rec.Recipients, 2)

	assert.Equal(t, "0.50000000", e.balance(t, "corp"))
	assert.Equal(t, "0.20000000", e.balance(t, "emp-1"))
	assert.Equal(t, "0.40000000", e.balance(t, "emp-2"))
	assert.Equal(t, "1.10000000", e.poolTotal(t, btcHot))
}

func TestTemplateService_ProcessPayroll_OncePerDate(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	e.fund(t, btcHot, "corp", "1")
	e.fund(t, btcHot, "emp-1", "0")
	storePayroll(t, e, "corp", map[string]decimal.Decimal{"emp-1": d("0.2")})
	ctx := context.Background()

	_, err := e.templates.ProcessPayroll(ctx, "corp", payday)
	require.NoError(t, err)

	_, err = e.templates.ProcessPayroll(ctx, "corp", payday.Add(3*time.Hour))
	assert.True(t, apperror.HasCode(err, apperror.CodePayrollAlreadyProcessed))
	assert.Equal(t, "0.80000000", e.balance(t, "corp"))

	_, err = e.templates.ProcessPayroll(ctx, "corp", payday.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, "0.60000000", e.balance(t, "corp"))
}

func TestTemplateService_ProcessPayroll_MissingEmployeeAbortsRun(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	e.fund(t, btcHot, "corp", "1")
	e.fund(t, btcHot, "emp-1", "0")
	storePayroll(t, e, "corp", map[string]decimal.Decimal{"emp-1": d("0.2"), "emp-ghost": d("0.1")})

	_, err := e.templates.ProcessPayroll(context.Background(), "corp", payday)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeEmployeeWalletNotFound, appErr.Code)
	assert.Equal(t, "emp-ghost", appErr.Details["wallet_id"])

	assert.Equal(t, "1.00000000", e.balance(t, "corp"))
	assert.Equal(t, "0.00000000", e.balance(t, "emp-1"), "no partial payroll")
}

func TestTemplateService_ProcessPayroll_Insufficient(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	e.fund(t, btcHot, "corp", "0.25")
	e.fund(t, btcHot, "emp-1", "0")
	e.fund(t, btcHot, "emp-2", "0")
	storePayroll(t, e, "corp", map[string]decimal.Decimal{"emp-1": d("0.2"), "emp-2": d("0.1")})

	_, err := e.templates.ProcessPayroll(context.Background(), "corp", payday)
	assert.True(t, apperror.HasCode(err, apperror.CodeInsufficientWalletBalance))
	assert.Equal(t, "0.25000000", e.balance(t, "corp"))
	assert.Equal(t, "0.00000000", e.balance(t, "emp-1"))
}

func TestTemplateService_ProcessPayroll_NoConfiguration(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	e.fund(t, btcHot, "corp", "1")

	_, err := e.templates.ProcessPayroll(context.Background(), "corp", payday)
	assert.True(t, apperror.HasCode(err, apperror.CodeConfigurationNotFound))
}

func TestTemplateService_SequenceConservesPoolTotal(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	ctx := context.Background()
	e.fund(t, btcHot, "corp", "2")
	e.fund(t, btcHot, "emp", "0")
	e.fund(t, btcHot, "shop", "0")
	e.fund(t, btcHot, "fees", "0")
	storePayroll(t, e, "corp", map[string]decimal.Decimal{"emp": d("0.33333333")})
	storeFeeConfig(t, e, "3", "0.0001", "0.01", nil)
	before := e.poolTotal(t, btcHot)

	_, err := e.templates.ProcessPayroll(ctx, "corp", payday)
	require.NoError(t, err)
	_, err = e.templates.ProcessMerchantTransaction(ctx, ports.MerchantTransactionRequest{
		FromWalletID: "emp", ToWalletID: "shop", FeeWalletID: "fees", Amount: d("0.12345678"),
	})
	require.NoError(t, err)
	_, err = e.transfers.Transfer(ctx, ports.TransferRequest{FromWalletID: "shop", ToWalletID: "corp", Amount: d("0.05")})
	require.NoError(t, err)

	assert.Equal(t, before, e.poolTotal(t, btcHot))
}
