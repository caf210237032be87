package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := TransferRequest{
		FromWalletID: "  cust-1  ",
		ToWalletID:   " cust-2 ",
		Amount:       " 0.5 ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "cust-1", req.FromWalletID)
	assert.Equal(t, "cust-2", req.ToWalletID)
	assert.Equal(t, "0.5", req.Amount)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := TransferRequest{Memo: "rent <script>alert('x')</script>"}
	SanitizeStruct(&req)

	assert.Contains(t, req.Memo, "&lt;script&gt;")
	assert.NotContains(t, req.Memo, "<script>")
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	fee := "  0.0001  "
	req := WithdrawRequest{ToAddress: "addr", Amount: "1", Fee: &fee}
	SanitizeStruct(&req)

	assert.Equal(t, "0.0001", *req.Fee)
}

func TestSanitizeStruct_NilPointerIsNoOp(t *testing.T) {
	req := WithdrawRequest{ToAddress: "addr", Amount: "1"}
	SanitizeStruct(&req)
	assert.Nil(t, req.Fee)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"cust-001",
		"BASE_bitcoin_hot",
		"a.b.c",
		"simple123",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"cust 001",
		"cust<001>",
		"cust;DROP",
		"",
		"cust/001",
		"cust\n001",
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestAmountValidation(t *testing.T) {
	tests := []struct {
		amount string
		valid  bool
	}{
		{"0.5", true},
		{"0", true},
		{"0.123456789", true},
		{"10", true},
		{"-0.1", false},
		{"one", false},
		{"1e", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&UpdateBalanceRequest{Balance: tt.amount})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestWithdrawRequest_OptionalFields(t *testing.T) {
	ok := WithdrawRequest{ToAddress: "addr", Amount: "0.1"}
	assert.NoError(t, binding.Validator.ValidateStruct(&ok))

	badFee := "-1"
	withFee := WithdrawRequest{ToAddress: "addr", Amount: "0.1", Fee: &badFee}
	assert.Error(t, binding.Validator.ValidateStruct(&withFee))

	badRequestID := WithdrawRequest{ToAddress: "addr", Amount: "0.1", RequestID: "has space"}
	assert.Error(t, binding.Validator.ValidateStruct(&badRequestID))
}

func TestPayrollConfigurationRequest_Validation(t *testing.T) {
	ok := PayrollConfigurationRequest{Cycle: "monthly", Day: 28, Employees: map[string]string{"emp-1": "0.2"}}
	assert.NoError(t, binding.Validator.ValidateStruct(&ok))

	badCycle := ok
	badCycle.Cycle = "daily"
	assert.Error(t, binding.Validator.ValidateStruct(&badCycle))

	badKey := PayrollConfigurationRequest{Cycle: "weekly", Day: 5, Employees: map[string]string{"emp 1": "0.2"}}
	assert.Error(t, binding.Validator.ValidateStruct(&badKey))

	badAmount := PayrollConfigurationRequest{Cycle: "weekly", Day: 5, Employees: map[string]string{"emp-1": "lots"}}
	assert.Error(t, binding.Validator.ValidateStruct(&badAmount))
}
