package dto

import (
	"wallet-ledger/internal/core/domain"
)

// Amounts travel as decimal strings so no client ever rounds through a float.

// CreateWalletRequest is the request body for internal wallet creation.
type CreateWalletRequest struct {
	ID                string            `json:"id" binding:"required,max=128,safe_id"`
	Blockchain        string            `json:"blockchain" binding:"required,max=64,safe_id"`
	PrimaryWalletName string            `json:"primary_wallet_name" binding:"required,max=64,safe_id"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// UpdateBalanceRequest is the request body for an operator balance overwrite.
type UpdateBalanceRequest struct {
	Balance string `json:"balance" binding:"required,amount"`
}

// WithdrawRequest is the request body for a withdrawal to an external address.
type WithdrawRequest struct {
	ToAddress string  `json:"to_address" binding:"required,max=128"`
	Amount    string  `json:"amount" binding:"required,amount"`
	Fee       *string `json:"fee,omitempty" binding:"omitempty,amount"`
	RequestID string  `json:"request_id,omitempty" binding:"omitempty,max=128,safe_id"`
}

// BaseWithdrawRequest is the request body for a base wallet withdrawal.
type BaseWithdrawRequest struct {
	ToAddress string `json:"to_address" binding:"required,max=128"`
	Amount    string `json:"amount" binding:"required,amount"`
}

// TransferRequest is the request body for an internal transfer.
type TransferRequest struct {
	FromWalletID string `json:"from_wallet_id" binding:"required,safe_id"`
	ToWalletID   string `json:"to_wallet_id" binding:"required,safe_id"`
	Amount       string `json:"amount" binding:"required,amount"`
	Memo         string `json:"memo,omitempty" binding:"max=256"`
}

// MerchantTransactionRequest is the request body for a fee-split payment.
type MerchantTransactionRequest struct {
	FromWalletID     string `json:"from_wallet_id" binding:"required,safe_id"`
	MerchantWalletID string `json:"merchant_wallet_id" binding:"required,safe_id"`
	FeeWalletID      string `json:"fee_wallet_id" binding:"required,safe_id"`
	Amount           string `json:"amount" binding:"required,amount"`
}

// PayrollRunRequest is the request body for running an employer's payroll.
type PayrollRunRequest struct {
	PayrollDate string `json:"payroll_date" binding:"required,datetime=2006-01-02"`
}

// FeeConfigurationRequest replaces the fee schedule.
type FeeConfigurationRequest struct {
	DefaultFeePercentage string            `json:"default_fee_percentage" binding:"required,amount"`
	MinimumFee           string            `json:"minimum_fee" binding:"required,amount"`
	MaximumFee           string            `json:"maximum_fee" binding:"required,amount"`
	MerchantSpecificFees map[string]string `json:"merchant_specific_fees,omitempty" binding:"omitempty,dive,keys,safe_id,endkeys,amount"`
}

// PayrollConfigurationRequest replaces an employer's payroll.
type PayrollConfigurationRequest struct {
	Cycle     string            `json:"cycle" binding:"required,oneof=weekly biweekly monthly"`
	Day       int               `json:"day" binding:"min=0,max=31"`
	Employees map[string]string `json:"employees" binding:"required,min=1,dive,keys,safe_id,endkeys,amount"`
}

// WalletResponse renders an internal wallet with fixed-precision amounts.
type WalletResponse struct {
	ID                string            `json:"id"`
	Blockchain        string            `json:"blockchain"`
	PrimaryWalletName string            `json:"primary_wallet_name"`
	Balance           string            `json:"balance"`
	IsBaseWallet      bool              `json:"is_base_wallet"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	CreatedAt         string            `json:"created_at"`
	UpdatedAt         string            `json:"updated_at"`
}

// TransactionListResponse wraps a paginated ledger record list.
type TransactionListResponse struct {
	Items      []domain.LedgerTransactionRecord `json:"items"`
	Total      int64                            `json:"total"`
	Page       int                              `json:"page"`
	PageSize   int                              `json:"page_size"`
	TotalPages int                              `json:"total_pages"`
}

// LedgerStatsResponse is the response for per primary wallet statistics.
type LedgerStatsResponse struct {
	TotalTransactions int64            `json:"total_transactions"`
	ByType            map[string]int64 `json:"by_type"`
	Withdrawn         string           `json:"withdrawn"`
	WithdrawalFees    string           `json:"withdrawal_fees"`
	Transferred       string           `json:"transferred"`
	MerchantVolume    string           `json:"merchant_volume"`
	MerchantFees      string           `json:"merchant_fees"`
	PayrollPaid       string           `json:"payroll_paid"`
}
