package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Function names a ledger operation. The set is closed: every value below has
// exactly one handler in the ledger contract.
type Function string

const (
	FnCreateInternalWallet              Function = "createInternalWallet"
	FnGetInternalWallet                 Function = "getInternalWallet"
	FnGetAllInternalWallets             Function = "getAllInternalWallets"
	FnGetInternalWalletsByPrimaryWallet Function = "getInternalWalletsByPrimaryWallet"
	FnUpdateInternalWalletBalance       Function = "updateInternalWalletBalance"
	FnReconcileBaseInternalWallet       Function = "reconcileBaseInternalWallet"
	FnWithdrawFromInternalWallet        Function = "withdrawFromInternalWallet"
	FnTransferBetweenInternalWallets    Function = "transferBetweenInternalWallets"
	FnProcessMerchantTransaction        Function = "processMerchantTransaction"
	FnProcessPayroll                    Function = "processPayroll"
	FnRecordBalanceDiscrepancy          Function = "recordBalanceDiscrepancy"
	FnGetBalanceDiscrepancies           Function = "getBalanceDiscrepancies"
	FnGetFeeConfiguration               Function = "getFeeConfiguration"
	FnUpdateFeeConfiguration            Function = "updateFeeConfiguration"
	FnGetPayrollConfiguration           Function = "getPayrollConfiguration"
	FnUpdatePayrollConfiguration        Function = "updatePayrollConfiguration"
	FnGetLedgerTransactions             Function = "getLedgerTransactions"
)

// Functions lists every ledger function.
func Functions() []Function {
	return []Function{
		FnCreateInternalWallet,
		FnGetInternalWallet,
		FnGetAllInternalWallets,
		FnGetInternalWalletsByPrimaryWallet,
		FnUpdateInternalWalletBalance,
		FnReconcileBaseInternalWallet,
		FnWithdrawFromInternalWallet,
		FnTransferBetweenInternalWallets,
		FnProcessMerchantTransaction,
		FnProcessPayroll,
		FnRecordBalanceDiscrepancy,
		FnGetBalanceDiscrepancies,
		FnGetFeeConfiguration,
		FnUpdateFeeConfiguration,
		FnGetPayrollConfiguration,
		FnUpdatePayrollConfiguration,
		FnGetLedgerTransactions,
	}
}

// Command is a mutating ledger operation. Only types in this package implement it.
type Command interface {
	Function() Function
	isCommand()
}

// Query is a read-only ledger operation. Only types in this package implement it.
type Query interface {
	Function() Function
	isQuery()
}

// ---- Commands ----

type CreateInternalWallet struct {
	Wallet InternalWallet
}

type UpdateInternalWalletBalance struct {
	WalletID   string
	NewBalance decimal.Decimal
	RecordID   string
	At         time.Time
}

// ReconcileBaseInternalWallet re-derives a base wallet's balance as the excess sink.
type ReconcileBaseInternalWallet struct {
	WalletID   string
	NewBalance decimal.Decimal
	RecordID   string
	At         time.Time
}

// WithdrawFromInternalWallet debits Record.Amount + Record.FeeAmount from Record.FromWalletID.
type WithdrawFromInternalWallet struct {
	Record LedgerTransactionRecord
}

type TransferBetweenInternalWallets struct {
	Record LedgerTransactionRecord
}

// ProcessMerchantTransaction debits Amount from the payer and credits NetAmount
// and FeeAmount to the merchant and fee wallets.
type ProcessMerchantTransaction struct {
	Record LedgerTransactionRecord
}

type ProcessPayroll struct {
	Record LedgerTransactionRecord
}

type RecordBalanceDiscrepancy struct {
	Discrepancy BalanceDiscrepancy
}

type UpdateFeeConfiguration struct {
	Config FeeConfiguration
}

type UpdatePayrollConfiguration struct {
	Config PayrollConfiguration
}

func (CreateInternalWallet) Function() Function           { return FnCreateInternalWallet }
func (UpdateInternalWalletBalance) Function() Function    { return FnUpdateInternalWalletBalance }
func (ReconcileBaseInternalWallet) Function() Function    { return FnReconcileBaseInternalWallet }
func (WithdrawFromInternalWallet) Function() Function     { return FnWithdrawFromInternalWallet }
func (TransferBetweenInternalWallets) Function() Function { return FnTransferBetweenInternalWallets }
func (ProcessMerchantTransaction) Function() Function     { return FnProcessMerchantTransaction }
func (ProcessPayroll) Function() Function                 { return FnProcessPayroll }
func (RecordBalanceDiscrepancy) Function() Function       { return FnRecordBalanceDiscrepancy }
func (UpdateFeeConfiguration) Function() Function         { return FnUpdateFeeConfiguration }
func (UpdatePayrollConfiguration) Function() Function     { return FnUpdatePayrollConfiguration }

func (CreateInternalWallet) isCommand()           {}
func (UpdateInternalWalletBalance) isCommand()    {}
func (ReconcileBaseInternalWallet) isCommand()    {}
func (WithdrawFromInternalWallet) isCommand()     {}
func (TransferBetweenInternalWallets) isCommand() {}
func (ProcessMerchantTransaction) isCommand()     {}
func (ProcessPayroll) isCommand()                 {}
func (RecordBalanceDiscrepancy) isCommand()       {}
func (UpdateFeeConfiguration) isCommand()         {}
func (UpdatePayrollConfiguration) isCommand()     {}

// ---- Queries ----

type GetInternalWallet struct {
	WalletID string
}

type GetAllInternalWallets struct{}

type GetInternalWalletsByPrimaryWallet struct {
	Pool PoolKey
}

type GetFeeConfiguration struct{}

type GetPayrollConfiguration struct {
	EmployerWalletID string
}

// GetBalanceDiscrepancies lists discrepancy records; a zero Pool lists all of them.
type GetBalanceDiscrepancies struct {
	Pool PoolKey
}

// GetLedgerTransactions lists transaction records; an empty WalletID lists all of them.
type GetLedgerTransactions struct {
	WalletID string
}

func (GetInternalWallet) Function() Function                 { return FnGetInternalWallet }
func (GetAllInternalWallets) Function() Function             { return FnGetAllInternalWallets }
func (GetInternalWalletsByPrimaryWallet) Function() Function { return FnGetInternalWalletsByPrimaryWallet }
func (GetFeeConfiguration) Function() Function               { return FnGetFeeConfiguration }
func (GetPayrollConfiguration) Function() Function           { return FnGetPayrollConfiguration }
func (GetBalanceDiscrepancies) Function() Function           { return FnGetBalanceDiscrepancies }
func (GetLedgerTransactions) Function() Function             { return FnGetLedgerTransactions }

func (GetInternalWallet) isQuery()                 {}
func (GetAllInternalWallets) isQuery()             {}
func (GetInternalWalletsByPrimaryWallet) isQuery() {}
func (GetFeeConfiguration) isQuery()               {}
func (GetPayrollConfiguration) isQuery()           {}
func (GetBalanceDiscrepancies) isQuery()           {}
func (GetLedgerTransactions) isQuery()             {}
