package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// AppError is a structured error that maps to HTTP responses.
// Details carries the ids, amounts and thresholds a caller needs to render
// an actionable message without parsing Message.
type AppError struct {
	Code       string            `json:"error_code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%s", k, e.Details[k])
		}
		b.WriteString(")")
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// With attaches a structured detail and returns the same error for chaining.
func (e *AppError) With(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err, or any error it wraps, is an AppError with code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	for err != nil {
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Err
	}
	return false
}

// CodeOf returns the outermost AppError code in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Error codes.
const (
	CodeWalletNotFound                    = "WLT_001"
	CodeWalletAlreadyExists               = "WLT_002"
	CodePrimaryWalletNotFound             = "WLT_003"
	CodeBaseWalletDirectMutationForbidden = "WLT_004"
	CodeReservedWalletID                  = "WLT_005"

	CodeInsufficientWalletBalance    = "BAL_001"
	CodeInsufficientAggregateBalance = "BAL_002"
	CodeInsufficientOnChainBalance   = "BAL_003"

	CodeCrossChainTransferForbidden         = "XFR_001"
	CodeCrossPrimaryWalletTransferForbidden = "XFR_002"
	CodeInvalidAddress                      = "XFR_003"
	CodeWithdrawalSendPending               = "XFR_004"

	CodeEmployeeWalletNotFound  = "PAY_001"
	CodeInvalidAmount           = "PAY_002"
	CodePayrollAlreadyProcessed = "PAY_003"
	CodeConfigurationNotFound   = "PAY_004"

	CodeReconciliationFailed      = "REC_001"
	CodeBalanceVerificationFailed = "REC_002"

	CodeInternal              = "SYS_001"
	CodeLockTimeout           = "SYS_002"
	CodeUnknownLedgerFunction = "SYS_003"
	CodeProvider              = "SYS_004"
)

// ---- Internal wallets (WLT) ----

func ErrWalletNotFound(walletID string) *AppError {
	return New(CodeWalletNotFound, "Internal wallet not found", http.StatusNotFound).
		With("wallet_id", walletID)
}

func ErrWalletAlreadyExists(walletID string) *AppError {
	return New(CodeWalletAlreadyExists, "Internal wallet already exists", http.StatusConflict).
		With("wallet_id", walletID)
}

func ErrPrimaryWalletNotFound(blockchain, primaryWalletName string) *AppError {
	return New(CodePrimaryWalletNotFound, "Primary wallet not found", http.StatusNotFound).
		With("blockchain", blockchain).
		With("primary_wallet", primaryWalletName)
}

func ErrBaseWalletDirectMutationForbidden(walletID string) *AppError {
	return New(CodeBaseWalletDirectMutationForbidden, "Base wallet balance cannot be set directly", http.StatusForbidden).
		With("wallet_id", walletID)
}

func ErrReservedWalletID(walletID, prefix string) *AppError {
	return New(CodeReservedWalletID, "Wallet id is reserved for base wallets", http.StatusBadRequest).
		With("wallet_id", walletID).
		With("reserved_prefix", prefix)
}

// ---- Balances (BAL) ----

func ErrInsufficientWalletBalance(walletID, balance, required string) *AppError {
	return New(CodeInsufficientWalletBalance, "Insufficient balance in internal wallet", http.StatusUnprocessableEntity).
		With("wallet_id", walletID).
		With("balance", balance).
		With("required", required)
}

func ErrInsufficientAggregateBalance(blockchain, primaryWalletName, aggregate, required string) *AppError {
	return New(CodeInsufficientAggregateBalance, "Insufficient aggregate internal balance", http.StatusUnprocessableEntity).
		With("blockchain", blockchain).
		With("primary_wallet", primaryWalletName).
		With("aggregate_balance", aggregate).
		With("required", required)
}

func ErrInsufficientOnChainBalance(blockchain, primaryWalletName, onChain, required string) *AppError {
	return New(CodeInsufficientOnChainBalance, "Insufficient on-chain balance", http.StatusUnprocessableEntity).
		With("blockchain", blockchain).
		With("primary_wallet", primaryWalletName).
		With("on_chain_balance", onChain).
		With("required", required)
}

// ---- Transfers (XFR) ----

func ErrCrossChainTransferForbidden(fromChain, toChain string) *AppError {
	return New(CodeCrossChainTransferForbidden, "Transfers between blockchains are not allowed", http.StatusBadRequest).
		With("from_blockchain", fromChain).
		With("to_blockchain", toChain)
}

func ErrCrossPrimaryWalletTransferForbidden(fromPrimary, toPrimary string) *AppError {
	return New(CodeCrossPrimaryWalletTransferForbidden, "Transfers between primary wallets are not allowed", http.StatusBadRequest).
		With("from_primary_wallet", fromPrimary).
		With("to_primary_wallet", toPrimary)
}

func ErrInvalidAddress(address string) *AppError {
	return New(CodeInvalidAddress, "Destination address is not valid for this primary wallet", http.StatusBadRequest).
		With("address", address)
}

// ErrWithdrawalSendPending is returned when a request id is replayed for a
// withdrawal that was debited but never sent.
func ErrWithdrawalSendPending(walletID, recordID string) *AppError {
	return New(CodeWithdrawalSendPending, "Withdrawal already debited; on-chain send pending reconciliation", http.StatusConflict).
		With("wallet_id", walletID).
		With("record_id", recordID)
}

// ---- Payments, fees and payroll (PAY) ----

func ErrEmployeeWalletNotFound(walletID string) *AppError {
	return New(CodeEmployeeWalletNotFound, "Employee wallet not found", http.StatusNotFound).
		With("wallet_id", walletID)
}

func ErrInvalidAmount() *AppError {
	return New(CodeInvalidAmount, "Invalid amount", http.StatusBadRequest)
}

func ErrPayrollAlreadyProcessed(employerWalletID, payrollDate string) *AppError {
	return New(CodePayrollAlreadyProcessed, "Payroll already processed for this date", http.StatusConflict).
		With("employer_wallet_id", employerWalletID).
		With("payroll_date", payrollDate)
}

func ErrConfigurationNotFound(name string) *AppError {
	return New(CodeConfigurationNotFound, fmt.Sprintf("%s not found", name), http.StatusNotFound)
}

// Validation returns a PAY_002-style validation error.
func Validation(message string) *AppError {
	return New(CodeInvalidAmount, message, http.StatusBadRequest)
}

// ---- Reconciliation (REC) ----

func ErrReconciliationFailed(blockchain, primaryWalletName string, err error) *AppError {
	return Wrap(CodeReconciliationFailed, "Balance reconciliation failed", http.StatusBadGateway, err).
		With("blockchain", blockchain).
		With("primary_wallet", primaryWalletName)
}

func ErrBalanceVerificationFailed(blockchain, primaryWalletName, difference, threshold string) *AppError {
	return New(CodeBalanceVerificationFailed, "On-chain and internal balances disagree", http.StatusConflict).
		With("blockchain", blockchain).
		With("primary_wallet", primaryWalletName).
		With("difference", difference).
		With("threshold", threshold)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap(CodeLockTimeout, "Wallet lock acquisition timeout", http.StatusServiceUnavailable, err)
}

func ErrUnknownLedgerFunction(function string) *AppError {
	return New(CodeUnknownLedgerFunction, "Unknown ledger function", http.StatusInternalServerError).
		With("function", function)
}

// ErrProvider wraps a failure reported by a primary wallet provider.
func ErrProvider(err error) *AppError {
	return Wrap(CodeProvider, "Primary wallet provider failure", http.StatusBadGateway, err)
}
