package ports

import (
	"context"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

// --- Service Ports (Business Logic) ---

// WalletService is the internal wallet ledger.
type WalletService interface {
	CreateInternalWallet(ctx context.Context, req CreateWalletRequest) (*domain.InternalWallet, error)
	GetInternalWallet(ctx context.Context, id string) (*domain.InternalWallet, error)
	GetAllInternalWallets(ctx context.Context) ([]*domain.InternalWallet, error)
	GetInternalWalletsByPrimaryWallet(ctx context.Context, blockchain, primaryWalletName string) ([]*domain.InternalWallet, error)
	UpdateInternalWalletBalance(ctx context.Context, id string, newBalance decimal.Decimal) (*domain.InternalWallet, error)
}

// CreateWalletRequest holds validated input for internal wallet creation.
type CreateWalletRequest struct {
	Blockchain        string
	PrimaryWalletName string
	ID                string
	Metadata          map[string]string
}

// BaseWalletService manages the excess-fund sink of each primary wallet.
type BaseWalletService interface {
	CreateBaseInternalWallet(ctx context.Context, blockchain, primaryWalletName string) (*domain.InternalWallet, error)
	GetWalletReadOnly(ctx context.Context, blockchain, primaryWalletName string) (*domain.PrimaryWalletView, error)
	WithdrawFromBaseInternalWallet(ctx context.Context, blockchain, primaryWalletName, toAddress string, amount decimal.Decimal) (*domain.WithdrawalResult, error)
}

// BaseWalletReconciler re-derives a base wallet balance. Only the reconciliation engine holds one.
type BaseWalletReconciler interface {
	ReconcileBaseInternalWallet(ctx context.Context, blockchain, primaryWalletName string) (*domain.InternalWallet, error)
}

// TransferService admission-controls outbound balance movement.
type TransferService interface {
	Withdraw(ctx context.Context, req WithdrawalRequest) (*domain.WithdrawalResult, error)
	Transfer(ctx context.Context, req TransferRequest) (*domain.LedgerTransactionRecord, error)
}

// WithdrawalRequest holds input for a withdrawal to an external address.
// A nil Fee is estimated by the primary wallet provider.
type WithdrawalRequest struct {
	InternalWalletID string
	ToAddress        string
	Amount           decimal.Decimal
	Fee              *decimal.Decimal
	RequestID        string // optional client idempotency key
}

// TransferRequest holds input for a transfer between two internal wallets.
type TransferRequest struct {
	FromWalletID string
	ToWalletID   string
	Amount       decimal.Decimal
	Memo         string
}

// TemplateService runs fee-bounded multi-party ledger mutations.
type TemplateService interface {
	ProcessMerchantTransaction(ctx context.Context, req MerchantTransactionRequest) (*domain.LedgerTransactionRecord, error)
	ProcessPayroll(ctx context.Context, employerWalletID string, payrollDate time.Time) (*domain.LedgerTransactionRecord, error)
	GetFeeConfiguration(ctx context.Context) (*domain.FeeConfiguration, error)
	UpdateFeeConfiguration(ctx context.Context, cfg domain.FeeConfiguration) (*domain.FeeConfiguration, error)
	GetPayrollConfiguration(ctx context.Context, employerWalletID string) (*domain.PayrollConfiguration, error)
	UpdatePayrollConfiguration(ctx context.Context, cfg domain.PayrollConfiguration) (*domain.PayrollConfiguration, error)
}

// MerchantTransactionRequest holds input for a fee-split payment.
type MerchantTransactionRequest struct {
	FromWalletID string
	ToWalletID   string
	FeeWalletID  string
	Amount       decimal.Decimal
}

// ReconciliationService compares on-chain and internal balances.
type ReconciliationService interface {
	ReconcileWallet(ctx context.Context, blockchain, primaryWalletName string) (*domain.ReconciliationResult, error)
	PerformFullReconciliation(ctx context.Context) *domain.ReconciliationReport
	VerifyBalanceAfterTransaction(ctx context.Context, blockchain, primaryWalletName string, txType domain.LedgerTransactionType, details map[string]string) (*domain.VerificationResult, error)
	GetBalanceDiscrepancies(ctx context.Context, blockchain, primaryWalletName string) ([]domain.BalanceDiscrepancy, error)
}

// TransactionVerifier is the slice of reconciliation that mutating services consult.
type TransactionVerifier interface {
	// CheckGate fails with BalanceVerificationFailed while a strict-mode
	// discrepancy is outstanding for the pool.
	CheckGate(pool domain.PoolKey) error
	VerifyBalanceAfterTransaction(ctx context.Context, blockchain, primaryWalletName string, txType domain.LedgerTransactionType, details map[string]string) (*domain.VerificationResult, error)
}

// ReportingService summarizes committed ledger activity.
type ReportingService interface {
	GetLedgerStats(ctx context.Context, blockchain, primaryWalletName, period string) (*LedgerStats, error)
	ListLedgerTransactions(ctx context.Context, params LedgerTransactionListParams) ([]domain.LedgerTransactionRecord, int64, error)
}

// LedgerStats holds aggregated ledger activity for one primary wallet.
type LedgerStats struct {
	TotalTransactions int64                                  `json:"total_transactions"`
	ByType            map[domain.LedgerTransactionType]int64 `json:"by_type"`
	Withdrawn         decimal.Decimal                        `json:"withdrawn"`
	WithdrawalFees    decimal.Decimal                        `json:"withdrawal_fees"`
	Transferred       decimal.Decimal                        `json:"transferred"`
	MerchantVolume    decimal.Decimal                        `json:"merchant_volume"`
	MerchantFees      decimal.Decimal                        `json:"merchant_fees"`
	PayrollPaid       decimal.Decimal                        `json:"payroll_paid"`
}

// LedgerTransactionListParams holds filter/pagination for ledger record listing.
type LedgerTransactionListParams struct {
	WalletID string
	Type     *domain.LedgerTransactionType
	From     *int64 // unix seconds, inclusive
	To       *int64 // unix seconds, inclusive
	Page     int
	PageSize int
}
