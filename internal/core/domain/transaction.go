package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerTransactionType represents the kind of ledger mutation a record describes.
type LedgerTransactionType string

const (
	LedgerTransactionWithdrawal      LedgerTransactionType = "WITHDRAWAL"
	LedgerTransactionTransfer        LedgerTransactionType = "TRANSFER"
	LedgerTransactionMerchantPayment LedgerTransactionType = "MERCHANT_PAYMENT"
	LedgerTransactionPayroll         LedgerTransactionType = "PAYROLL"
	LedgerTransactionBalanceUpdate   LedgerTransactionType = "BALANCE_UPDATE"
	LedgerTransactionBaseReconcile   LedgerTransactionType = "BASE_RECONCILE"
)

// Payment is one credit of a fan-out.
type Payment struct {
	WalletID string          `json:"wallet_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// LedgerTransactionRecord is an immutable ledger entry for one committed mutation.
type LedgerTransactionRecord struct {
	ID                string                `json:"id"`
	Type              LedgerTransactionType `json:"type"`
	Blockchain        string                `json:"blockchain"`
	PrimaryWalletName string                `json:"primary_wallet_name"`
	FromWalletID      string                `json:"from_wallet_id,omitempty"`
	ToWalletID        string                `json:"to_wallet_id,omitempty"`
	FeeWalletID       string                `json:"fee_wallet_id,omitempty"`
	ToAddress         string                `json:"to_address,omitempty"`
	Recipients        []Payment             `json:"recipients,omitempty"`
	Amount            decimal.Decimal       `json:"amount"`
	FeeAmount         decimal.Decimal       `json:"fee_amount"`
	NetAmount         decimal.Decimal       `json:"net_amount"`
	Memo              string                `json:"memo,omitempty"`
	PayrollDate       string                `json:"payroll_date,omitempty"`
	Timestamp         time.Time             `json:"timestamp"`
}

// Pool returns the primary wallet the record's wallets belong to.
func (r *LedgerTransactionRecord) Pool() PoolKey {
	return PoolKey{Blockchain: r.Blockchain, PrimaryWalletName: r.PrimaryWalletName}
}

// Involves reports whether walletID is debited or credited by the record.
func (r *LedgerTransactionRecord) Involves(walletID string) bool {
	if r.FromWalletID == walletID || r.ToWalletID == walletID || r.FeeWalletID == walletID {
		return true
	}
	for _, p := range r.Recipients {
		if p.WalletID == walletID {
			return true
		}
	}
	return false
}

// WithdrawalResult is returned by a completed withdrawal: the committed debit
// and the on-chain transaction id the provider broadcast. An empty
// TransactionID marks a debit whose send has not succeeded.
type WithdrawalResult struct {
	Record        LedgerTransactionRecord `json:"record"`
	TransactionID string                  `json:"transaction_id"`
}

// Sent reports whether the provider accepted the on-chain transaction.
func (r WithdrawalResult) Sent() bool {
	return r.TransactionID != ""
}
