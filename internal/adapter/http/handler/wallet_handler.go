package handler

import (
	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles internal wallet endpoints.
type WalletHandler struct {
	wallets ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallets ports.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

// Create handles POST /api/v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	w, err := h.wallets.CreateInternalWallet(c.Request.Context(), ports.CreateWalletRequest{
		Blockchain:        req.Blockchain,
		PrimaryWalletName: req.PrimaryWalletName,
		ID:                req.ID,
		Metadata:          req.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWalletResponse(w))
}

// Get handles GET /api/v1/wallets/:id.
func (h *WalletHandler) Get(c *gin.Context) {
	w, err := h.wallets.GetInternalWallet(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletResponse(w))
}

// List handles GET /api/v1/wallets. Passing both blockchain and
// primary_wallet narrows the listing to one primary wallet.
func (h *WalletHandler) List(c *gin.Context) {
	blockchain, name := c.Query("blockchain"), c.Query("primary_wallet")
	if (blockchain == "") != (name == "") {
		response.Error(c, apperror.Validation("blockchain and primary_wallet must be given together"))
		return
	}

	var (
		wallets []*domain.InternalWallet
		err     error
	)
	if blockchain == "" {
		wallets, err = h.wallets.GetAllInternalWallets(c.Request.Context())
	} else {
		wallets, err = h.wallets.GetInternalWalletsByPrimaryWallet(c.Request.Context(), blockchain, name)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletResponses(wallets))
}

// UpdateBalance handles PUT /api/v1/wallets/:id/balance.
func (h *WalletHandler) UpdateBalance(c *gin.Context) {
	var req dto.UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	balance, err := parseAmount("balance", req.Balance)
	if err != nil {
		response.Error(c, err)
		return
	}

	w, err := h.wallets.UpdateInternalWalletBalance(c.Request.Context(), c.Param("id"), balance)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletResponse(w))
}
