package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStrategy selects when balances are reconciled.
type ReconciliationStrategy string

const (
	StrategyAfterTransaction ReconciliationStrategy = "after_transaction"
	StrategyScheduled        ReconciliationStrategy = "scheduled"
	StrategyBoth             ReconciliationStrategy = "both"
)

func (s ReconciliationStrategy) AfterTransaction() bool {
	return s == StrategyAfterTransaction || s == StrategyBoth
}

func (s ReconciliationStrategy) Scheduled() bool {
	return s == StrategyScheduled || s == StrategyBoth
}

// ReconciliationTrigger records what caused a reconciliation run.
type ReconciliationTrigger string

const (
	TriggerManual           ReconciliationTrigger = "manual"
	TriggerScheduled        ReconciliationTrigger = "scheduled"
	TriggerAfterTransaction ReconciliationTrigger = "after_transaction"
)

// ReconciliationResult is produced fresh by every reconciliation of one primary wallet.
type ReconciliationResult struct {
	Blockchain               string          `json:"blockchain"`
	PrimaryWalletName        string          `json:"primary_wallet_name"`
	OnChainBalance           decimal.Decimal `json:"on_chain_balance"`
	AggregateInternalBalance decimal.Decimal `json:"aggregate_internal_balance"`
	Difference               decimal.Decimal `json:"difference"` // on-chain minus aggregate
	HasDiscrepancy           bool            `json:"has_discrepancy"`
	DiscrepancyID            string          `json:"discrepancy_id,omitempty"`
	Timestamp                time.Time       `json:"timestamp"`
}

// Pool returns the primary wallet the result describes.
func (r *ReconciliationResult) Pool() PoolKey {
	return PoolKey{Blockchain: r.Blockchain, PrimaryWalletName: r.PrimaryWalletName}
}

// NewReconciliationResult computes the difference and flags it against threshold.
func NewReconciliationResult(pool PoolKey, onChain, aggregate, threshold decimal.Decimal, at time.Time) *ReconciliationResult {
	diff := Round(onChain.Sub(aggregate))
	return &ReconciliationResult{
		Blockchain:               pool.Blockchain,
		PrimaryWalletName:        pool.PrimaryWalletName,
		OnChainBalance:           Round(onChain),
		AggregateInternalBalance: Round(aggregate),
		Difference:               diff,
		HasDiscrepancy:           diff.Abs().GreaterThan(threshold),
		Timestamp:                at,
	}
}

// BalanceDiscrepancy is the append-only record of a difference beyond threshold.
type BalanceDiscrepancy struct {
	ID                       string                `json:"id"`
	Blockchain               string                `json:"blockchain"`
	PrimaryWalletName        string                `json:"primary_wallet_name"`
	OnChainBalance           decimal.Decimal       `json:"on_chain_balance"`
	AggregateInternalBalance decimal.Decimal       `json:"aggregate_internal_balance"`
	Difference               decimal.Decimal       `json:"difference"`
	Threshold                decimal.Decimal       `json:"threshold"`
	Trigger                  ReconciliationTrigger `json:"trigger"`
	TransactionType          string                `json:"transaction_type,omitempty"`
	DetectedAt               time.Time             `json:"detected_at"`
}

// VerificationResult is the outcome of an after-transaction balance check.
type VerificationResult struct {
	Verified             bool                  `json:"verified"`
	Skipped              bool                  `json:"skipped"`
	ReconciliationResult *ReconciliationResult `json:"reconciliation_result,omitempty"`
}

// ReconciliationFailure reports one primary wallet a sweep could not reconcile.
type ReconciliationFailure struct {
	Blockchain        string `json:"blockchain"`
	PrimaryWalletName string `json:"primary_wallet_name"`
	Err               error  `json:"-"`
	Message           string `json:"error"`
}

// ReconciliationReport collects every per-wallet outcome of a full sweep.
type ReconciliationReport struct {
	Results    []*ReconciliationResult `json:"results"`
	Failures   []ReconciliationFailure `json:"failures,omitempty"`
	StartedAt  time.Time               `json:"started_at"`
	FinishedAt time.Time               `json:"finished_at"`
}

// DiscrepancyCount returns how many successful results flagged a discrepancy.
func (r *ReconciliationReport) DiscrepancyCount() int {
	n := 0
	for _, res := range r.Results {
		if res.HasDiscrepancy {
			n++
		}
	}
	return n
}
