package handler

import (
	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransferHandler handles withdrawal and internal transfer endpoints.
type TransferHandler struct {
	transfers ports.TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transfers ports.TransferService) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

// Withdraw handles POST /api/v1/wallets/:id/withdrawals.
func (h *TransferHandler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	in := ports.WithdrawalRequest{
		InternalWalletID: c.Param("id"),
		ToAddress:        req.ToAddress,
		Amount:           amount,
		RequestID:        req.RequestID,
	}
	if req.Fee != nil {
		fee, err := parseAmount("fee", *req.Fee)
		if err != nil {
			response.Error(c, err)
			return
		}
		in.Fee = &fee
	}

	result, err := h.transfers.Withdraw(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Transfer handles POST /api/v1/transfers.
func (h *TransferHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	rec, err := h.transfers.Transfer(c.Request.Context(), ports.TransferRequest{
		FromWalletID: req.FromWalletID,
		ToWalletID:   req.ToWalletID,
		Amount:       amount,
		Memo:         req.Memo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rec)
}
