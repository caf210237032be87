package service

import (
	"context"
	"testing"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedHotPool funds A=0.5 and B=0.3 and settles the base wallet at 0.7 against 1.5 on-chain.
func seedHotPool(t *testing.T, e *ledgerEnv) {
	t.Helper()
	e.fund(t, btcHot, "A", "0.5")
	e.fund(t, btcHot, "B", "0.3")
	e.setOnChain(btcHot, "1.5")
	base, err := e.base.ReconcileBaseInternalWallet(context.Background(), btcHot.Blockchain, btcHot.PrimaryWalletName)
	require.NoError(t, err)
	require.Equal(t, "0.70000000", fmtAmt(base.Balance))
}

func TestReconciliationService_ReconcileWallet(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	ctx := context.Background()
	seedHotPool(t, e)

	res, err := e.recon.ReconcileWallet(ctx, "bitcoin", "hot")
	require.NoError(t, err)
	assert.Equal(t, "1.50000000", fmtAmt(res.OnChainBalance))
	assert.Equal(t, "1.50000000", fmtAmt(res.AggregateInternalBalance))
	assert.True(t, res.Difference.IsZero())
	assert.False(t, res.HasDiscrepancy)
	assert.Empty(t, res.DiscrepancyID)

	e.setOnChain(btcHot, "2.0")
	res, err = e.recon.ReconcileWallet(ctx, "bitcoin", "hot")
	require.NoError(t, err)
	assert.Equal(t, "0.50000000", fmtAmt(res.Difference))
	assert.True(t, res.HasDiscrepancy)
	require.NotEmpty(t, res.DiscrepancyID)

	recorded, err := e.recon.GetBalanceDiscrepancies(ctx, "bitcoin", "hot")
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, res.DiscrepancyID, recorded[0].ID)
	assert.Equal(t, domain.TriggerManual, recorded[0].Trigger)
	assert.Equal(t, "0.50000000", fmtAmt(recorded[0].Difference))

	// Detection never mutates balances.
	assert.Equal(t, "0.70000000", e.balance(t, "base_bitcoin_hot"))
}

func TestReconciliationService_ReconcileWallet_DeficitIsDiscrepancy(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	e.fund(t, btcHot, "A", "1")
	e.setOnChain(btcHot, "0.4")

	res, err := e.recon.ReconcileWallet(context.Background(), "bitcoin", "hot")
	require.NoError(t, err)
	assert.Equal(t, "-0.60000000", fmtAmt(res.Difference))
	assert.True(t, res.HasDiscrepancy)
}

func TestReconciliationService_ReconcileWallet_Failures(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	ctx := context.Background()

	_, err := e.recon.ReconcileWallet(ctx, "bitcoin", "nope")
	assert.True(t, apperror.HasCode(err, apperror.CodeReconciliationFailed))
	assert.True(t, apperror.HasCode(err, apperror.CodePrimaryWalletNotFound))

	// btcCold has no on-chain balance configured, so the provider errors.
	_, err = e.recon.ReconcileWallet(ctx, "bitcoin", "cold")
	assert.True(t, apperror.HasCode(err, apperror.CodeReconciliationFailed))
	assert.True(t, apperror.HasCode(err, apperror.CodeProvider))
	assert.ErrorIs(t, err, errBalanceUnavailable)

	recorded, err := e.recon.GetBalanceDiscrepancies(ctx, "", "")
	require.NoError(t, err)
	assert.NotNil(t, recorded)
	assert.Empty(t, recorded)
}

func TestReconciliationService_PerformFullReconciliation(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	ctx := context.Background()
	e.fund(t, btcHot, "A", "1")
	e.fund(t, ltcHot, "L", "5")
	e.setOnChain(btcHot, "1")
	e.setOnChain(ltcHot, "6")

	report := e.recon.PerformFullReconciliation(ctx)

	require.Len(t, report.Results, 2)
	require.Len(t, report.Failures, 1, "one failing primary wallet never stops the others")
	assert.Equal(t, "bitcoin", report.Failures[0].Blockchain)
	assert.Equal(t, "cold", report.Failures[0].PrimaryWalletName)
	assert.True(t, apperror.HasCode(report.Failures[0].Err, apperror.CodeReconciliationFailed))
	assert.Equal(t, 1, report.DiscrepancyCount())
	assert.False(t, report.FinishedAt.Before(report.StartedAt))

	all, err := e.recon.GetBalanceDiscrepancies(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "litecoin", all[0].Blockchain)

	btc, err := e.recon.GetBalanceDiscrepancies(ctx, "bitcoin", "hot")
	require.NoError(t, err)
	assert.Empty(t, btc)
}

func TestReconciliationService_RunScheduled_TagsTrigger(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())
	e.fund(t, ltcHot, "L", "1")
	e.setOnChain(ltcHot, "2")

	e.recon.RunScheduled(context.Background())

	recorded, err := e.recon.GetBalanceDiscrepancies(context.Background(), "litecoin", "hot")
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, domain.TriggerScheduled, recorded[0].Trigger)
}

func TestReconciliationService_VerifyBalanceAfterTransaction_SkippedForScheduledStrategy(t *testing.T) {
	e := newLedgerEnv(t, defaultOptions())

	res, err := e.recon.VerifyBalanceAfterTransaction(context.Background(), "bitcoin", "hot", domain.LedgerTransactionTransfer, nil)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Nil(t, res.ReconciliationResult)
}

func TestReconciliationService_VerifyBalanceAfterTransaction_NonStrict(t *testing.T) {
	opts := defaultOptions()
	opts.Strategy = domain.StrategyBoth
	e := newLedgerEnv(t, opts)
	ctx := context.Background()
	e.fund(t, btcHot, "A", "1")
	e.setOnChain(btcHot, "1")

	res, err := e.recon.VerifyBalanceAfterTransaction(ctx, "bitcoin", "hot", domain.LedgerTransactionTransfer, nil)
	require.NoError(t, err)
	assert.True(t, res.Verified)

	e.setOnChain(btcHot, "1.2")
	res, err = e.recon.VerifyBalanceAfterTransaction(ctx, "bitcoin", "hot", domain.LedgerTransactionWithdrawal, map[string]string{"record_id": "r1"})
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.Equal(t, "0.20000000", fmtAmt(res.ReconciliationResult.Difference))
	assert.NoError(t, e.recon.CheckGate(btcHot), "the gate only closes in strict mode")

	recorded, err := e.recon.GetBalanceDiscrepancies(ctx, "bitcoin", "hot")
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, domain.TriggerAfterTransaction, recorded[0].Trigger)
	assert.Equal(t, string(domain.LedgerTransactionWithdrawal), recorded[0].TransactionType)
}

func TestReconciliationService_VerifyBalanceAfterTransaction_StrictGate(t *testing.T) {
	opts := defaultOptions()
	opts.Strategy = domain.StrategyAfterTransaction
	opts.StrictMode = true
	e := newLedgerEnv(t, opts)
	ctx := context.Background()
	e.fund(t, btcHot, "A", "1")
	e.setOnChain(btcHot, "0.9")

	res, err := e.recon.VerifyBalanceAfterTransaction(ctx, "bitcoin", "hot", domain.LedgerTransactionTransfer, nil)
	assert.Nil(t, res)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeBalanceVerificationFailed, appErr.Code)
	assert.Equal(t, "-0.10000000", appErr.Details["difference"])

	assert.True(t, apperror.HasCode(e.recon.CheckGate(btcHot), apperror.CodeBalanceVerificationFailed))
	assert.NoError(t, e.recon.CheckGate(ltcHot), "other primary wallets stay open")

	e.setOnChain(btcHot, "1")
	_, err = e.recon.ReconcileWallet(ctx, "bitcoin", "hot")
	require.NoError(t, err)
	assert.NoError(t, e.recon.CheckGate(btcHot))
}

func TestReconciliationService_AbsorbSurplus(t *testing.T) {
	opts := defaultOptions()
	opts.AbsorbSurplus = true
	e := newLedgerEnv(t, opts)
	ctx := context.Background()
	e.fund(t, btcHot, "A", "0.5")
	e.setOnChain(btcHot, "0.8")

	res, err := e.recon.ReconcileWallet(ctx, "bitcoin", "hot")
	require.NoError(t, err)
	assert.True(t, res.HasDiscrepancy, "the discrepancy is recorded before it is absorbed")
	assert.Equal(t, "0.30000000", e.balance(t, "base_bitcoin_hot"))
	assert.Equal(t, "0.50000000", e.balance(t, "A"))

	res, err = e.recon.ReconcileWallet(ctx, "bitcoin", "hot")
	require.NoError(t, err)
	assert.False(t, res.HasDiscrepancy)
}
