package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("PAY_002", "Invalid amount", http.StatusBadRequest),
			expected: "[PAY_002] Invalid amount",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
		{
			name:     "with details in key order",
			appErr:   New("BAL_001", "Insufficient", http.StatusUnprocessableEntity).With("wallet_id", "w1").With("balance", "0.5"),
			expected: "[BAL_001] Insufficient (balance=0.5, wallet_id=w1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, New("PAY_002", "test", http.StatusBadRequest).Unwrap())
}

func TestHasCode_ThroughWrapping(t *testing.T) {
	cause := ErrPrimaryWalletNotFound("bitcoin", "hot")
	recErr := ErrReconciliationFailed("bitcoin", "hot", cause)
	wrapped := fmt.Errorf("sweep: %w", recErr)

	assert.True(t, HasCode(wrapped, CodeReconciliationFailed))
	assert.True(t, HasCode(wrapped, CodePrimaryWalletNotFound), "inner kinds stay reachable")
	assert.False(t, HasCode(wrapped, CodeWalletNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	assert.False(t, HasCode(nil, CodeInternal))

	assert.Equal(t, CodeReconciliationFailed, CodeOf(wrapped))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"WalletNotFound", ErrWalletNotFound("w"), CodeWalletNotFound, 404},
		{"WalletAlreadyExists", ErrWalletAlreadyExists("w"), CodeWalletAlreadyExists, 409},
		{"PrimaryWalletNotFound", ErrPrimaryWalletNotFound("bitcoin", "hot"), CodePrimaryWalletNotFound, 404},
		{"BaseWalletDirectMutation", ErrBaseWalletDirectMutationForbidden("base_bitcoin_hot"), CodeBaseWalletDirectMutationForbidden, 403},
		{"ReservedWalletID", ErrReservedWalletID("base_x", "base_"), CodeReservedWalletID, 400},
		{"InsufficientWallet", ErrInsufficientWalletBalance("w", "0.5", "0.6001"), CodeInsufficientWalletBalance, 422},
		{"InsufficientAggregate", ErrInsufficientAggregateBalance("bitcoin", "hot", "1", "2"), CodeInsufficientAggregateBalance, 422},
		{"InsufficientOnChain", ErrInsufficientOnChainBalance("bitcoin", "hot", "1", "2"), CodeInsufficientOnChainBalance, 422},
		{"CrossChain", ErrCrossChainTransferForbidden("bitcoin", "litecoin"), CodeCrossChainTransferForbidden, 400},
		{"CrossPrimary", ErrCrossPrimaryWalletTransferForbidden("hot", "cold"), CodeCrossPrimaryWalletTransferForbidden, 400},
		{"InvalidAddress", ErrInvalidAddress("nope"), CodeInvalidAddress, 400},
		{"EmployeeWalletNotFound", ErrEmployeeWalletNotFound("emp"), CodeEmployeeWalletNotFound, 404},
		{"InvalidAmount", ErrInvalidAmount(), CodeInvalidAmount, 400},
		{"PayrollAlreadyProcessed", ErrPayrollAlreadyProcessed("emp", "2026-01-31"), CodePayrollAlreadyProcessed, 409},
		{"ConfigurationNotFound", ErrConfigurationNotFound("Payroll configuration"), CodeConfigurationNotFound, 404},
		{"ReconciliationFailed", ErrReconciliationFailed("bitcoin", "hot", errors.New("x")), CodeReconciliationFailed, 502},
		{"BalanceVerificationFailed", ErrBalanceVerificationFailed("bitcoin", "hot", "0.5", "0.00001"), CodeBalanceVerificationFailed, 409},
		{"Internal", InternalError(errors.New("x")), CodeInternal, 500},
		{"LockTimeout", ErrLockTimeout(errors.New("x")), CodeLockTimeout, 503},
		{"UnknownLedgerFunction", ErrUnknownLedgerFunction("deleteEverything"), CodeUnknownLedgerFunction, 500},
		{"Provider", ErrProvider(errors.New("x")), CodeProvider, 502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestStructuredDetails(t *testing.T) {
	err := ErrInsufficientWalletBalance("cust-1", "0.50000000", "0.60010000")

	assert.Equal(t, "cust-1", err.Details["wallet_id"])
	assert.Equal(t, "0.50000000", err.Details["balance"])
	assert.Equal(t, "0.60010000", err.Details["required"])
}
