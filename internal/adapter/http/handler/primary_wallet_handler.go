package handler

import (
	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// PrimaryWalletHandler handles base wallet and reconciliation endpoints.
type PrimaryWalletHandler struct {
	base  ports.BaseWalletService
	recon ports.ReconciliationService
}

// NewPrimaryWalletHandler creates a new PrimaryWalletHandler.
func NewPrimaryWalletHandler(base ports.BaseWalletService, recon ports.ReconciliationService) *PrimaryWalletHandler {
	return &PrimaryWalletHandler{base: base, recon: recon}
}

// GetReadOnly handles GET /api/v1/primary-wallets/:blockchain/:name.
func (h *PrimaryWalletHandler) GetReadOnly(c *gin.Context) {
	view, err := h.base.GetWalletReadOnly(c.Request.Context(), c.Param("blockchain"), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// CreateBaseWallet handles POST /api/v1/primary-wallets/:blockchain/:name/base-wallet.
func (h *PrimaryWalletHandler) CreateBaseWallet(c *gin.Context) {
	w, err := h.base.CreateBaseInternalWallet(c.Request.Context(), c.Param("blockchain"), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletResponse(w))
}

// WithdrawFromBaseWallet handles POST /api/v1/primary-wallets/:blockchain/:name/base-wallet/withdrawals.
func (h *PrimaryWalletHandler) WithdrawFromBaseWallet(c *gin.Context) {
	var req dto.BaseWithdrawRequest
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

	result, err := h.base.WithdrawFromBaseInternalWallet(c.Request.Context(), c.Param("blockchain"), c.Param("name"), req.ToAddress, amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Reconcile handles POST /api/v1/primary-wallets/:blockchain/:name/reconcile.
func (h *PrimaryWalletHandler) Reconcile(c *gin.Context) {
	res, err := h.recon.ReconcileWallet(c.Request.Context(), c.Param("blockchain"), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// ReconcileAll handles POST /api/v1/reconciliation. Per-wallet failures are
// reported inside the body; the request itself succeeds.
func (h *PrimaryWalletHandler) ReconcileAll(c *gin.Context) {
	response.OK(c, h.recon.PerformFullReconciliation(c.Request.Context()))
}

// Discrepancies handles GET /api/v1/discrepancies.
func (h *PrimaryWalletHandler) Discrepancies(c *gin.Context) {
	blockchain, name := c.Query("blockchain"), c.Query("primary_wallet")
	if (blockchain == "") != (name == "") {
		response.Error(c, apperror.Validation("blockchain and primary_wallet must be given together"))
		return
	}
	out, err := h.recon.GetBalanceDiscrepancies(c.Request.Context(), blockchain, name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}
