package handler

import (
	"time"

	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// TemplateHandler handles merchant payment, payroll and configuration endpoints.
type TemplateHandler struct {
	templates ports.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templates ports.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// MerchantTransaction handles POST /api/v1/merchant-transactions.
func (h *TemplateHandler) MerchantTransaction(c *gin.Context) {
	var req dto.MerchantTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	rec, err := h.templates.ProcessMerchantTransaction(c.Request.Context(), ports.MerchantTransactionRequest{
		FromWalletID: req.FromWalletID,
		ToWalletID:   req.MerchantWalletID,
		FeeWalletID:  req.FeeWalletID,
		Amount:       amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rec)
}

// RunPayroll handles POST /api/v1/payroll/:employer_id/runs.
func (h *TemplateHandler) RunPayroll(c *gin.Context) {
	var req dto.PayrollRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	date, err := time.Parse(domain.PayrollDateLayout, req.PayrollDate)
	if err != nil {
		response.Error(c, apperror.Validation("payroll_date must be YYYY-MM-DD"))
		return
	}

	rec, err := h.templates.ProcessPayroll(c.Request.Context(), c.Param("employer_id"), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rec)
}

// GetFeeConfiguration handles GET /api/v1/config/fee.
func (h *TemplateHandler) GetFeeConfiguration(c *gin.Context) {
	cfg, err := h.templates.GetFeeConfiguration(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cfg)
}

// UpdateFeeConfiguration handles PUT /api/v1/config/fee.
func (h *TemplateHandler) UpdateFeeConfiguration(c *gin.Context) {
	var req dto.FeeConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var cfg domain.FeeConfiguration
	var err error
	if cfg.DefaultFeePercentage, err = parseAmount("default_fee_percentage", req.DefaultFeePercentage); err != nil {
		response.Error(c, err)
		return
	}
	if cfg.MinimumFee, err = parseAmount("minimum_fee", req.MinimumFee); err != nil {
		response.Error(c, err)
		return
	}
	if cfg.MaximumFee, err = parseAmount("maximum_fee", req.MaximumFee); err != nil {
		response.Error(c, err)
		return
	}
	if cfg.MerchantSpecificFees, err = parseAmountMap("merchant_specific_fees", req.MerchantSpecificFees); err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.templates.UpdateFeeConfiguration(c.Request.Context(), cfg)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}

// GetPayrollConfiguration handles GET /api/v1/config/payroll/:employer_id.
func (h *TemplateHandler) GetPayrollConfiguration(c *gin.Context) {
	cfg, err := h.templates.GetPayrollConfiguration(c.Request.Context(), c.Param("employer_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cfg)
}

// UpdatePayrollConfiguration handles PUT /api/v1/config/payroll/:employer_id.
func (h *TemplateHandler) UpdatePayrollConfiguration(c *gin.Context) {
	var req dto.PayrollConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	employees, err := parseAmountMap("employees", req.Employees)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.templates.UpdatePayrollConfiguration(c.Request.Context(), domain.PayrollConfiguration{
		EmployerWalletID: c.Param("employer_id"),
		Cycle:            domain.PayrollCycle(req.Cycle),
		Day:              req.Day,
		Employees:        employees,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}
