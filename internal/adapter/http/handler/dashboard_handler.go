package handler

import (
	"math"
	"strconv"

	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles ledger statistics & transaction list endpoints.
type DashboardHandler struct {
	reportingSvc ports.ReportingService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportingSvc ports.ReportingService) *DashboardHandler {
	return &DashboardHandler{reportingSvc: reportingSvc}
}

// GetStats handles GET /api/v1/primary-wallets/:blockchain/:name/stats.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	period := c.DefaultQuery("period", "all")
	stats, err := h.reportingSvc.GetLedgerStats(c.Request.Context(), c.Param("blockchain"), c.Param("name"), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	byType := make(map[string]int64, len(stats.ByType))
	for t, n := range stats.ByType {
		byType[string(t)] = n
	}
	response.OK(c, dto.LedgerStatsResponse{
		TotalTransactions: stats.TotalTransactions,
		ByType:            byType,
		Withdrawn:         domain.FormatAmount(stats.Withdrawn),
		WithdrawalFees:    domain.FormatAmount(stats.WithdrawalFees),
		Transferred:       domain.FormatAmount(stats.Transferred),
		MerchantVolume:    domain.FormatAmount(stats.MerchantVolume),
		MerchantFees:      domain.FormatAmount(stats.MerchantFees),
		PayrollPaid:       domain.FormatAmount(stats.PayrollPaid),
	})
}

// ListTransactions handles GET /api/v1/transactions.
func (h *DashboardHandler) ListTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := ports.LedgerTransactionListParams{
		WalletID: c.Query("wallet_id"),
		Page:     page,
		PageSize: pageSize,
	}
	if t := c.Query("type"); t != "" {
		txType := domain.LedgerTransactionType(t)
		params.Type = &txType
	}
	if f := c.Query("from"); f != "" {
		if v, err := strconv.ParseInt(f, 10, 64); err == nil {
			params.From = &v
		}
	}
	if t := c.Query("to"); t != "" {
		if v, err := strconv.ParseInt(t, 10, 64); err == nil {
			params.To = &v
		}
	}

	txns, total, err := h.reportingSvc.ListLedgerTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	if txns == nil {
		txns = []domain.LedgerTransactionRecord{}
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	response.OK(c, dto.TransactionListResponse{
		Items:      txns,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}
