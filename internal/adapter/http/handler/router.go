package handler

import (
	"net/http"

	"wallet-ledger/internal/adapter/http/middleware"
	"wallet-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletSvc         ports.WalletService
	BaseWalletSvc     ports.BaseWalletService
	TransferSvc       ports.TransferService
	TemplateSvc       ports.TemplateService
	ReconciliationSvc ports.ReconciliationService
	ReportingSvc      ports.ReportingService
	HealthCheckers    []ports.HealthChecker
	Metrics           http.Handler // nil = /metrics disabled
	OpenAPI           []byte       // nil = /swagger/spec answers 404
	Mode              string       // gin mode: debug, release, test
	Logger            zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit
	r.Use(middleware.AuditLog(deps.Logger))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	// Swagger documentation
	swagger := r.Group("/swagger")
	{
		docs := NewDocsHandler(deps.OpenAPI)
		swagger.GET("", docs.UI)
		swagger.GET("/spec", docs.Spec)
	}

	v1 := r.Group("/api/v1")

	walletHandler := NewWalletHandler(deps.WalletSvc)
	transferHandler := NewTransferHandler(deps.TransferSvc)
	wallets := v1.Group("/wallets")
	{
		wallets.POST("", walletHandler.Create)
		wallets.GET("", walletHandler.List)
		wallets.GET("/:id", walletHandler.Get)
		wallets.PUT("/:id/balance", walletHandler.UpdateBalance)
		wallets.POST("/:id/withdrawals", transferHandler.Withdraw)
	}
	v1.POST("/transfers", transferHandler.Transfer)

	templateHandler := NewTemplateHandler(deps.TemplateSvc)
	v1.POST("/merchant-transactions", templateHandler.MerchantTransaction)
	v1.POST("/payroll/:employer_id/runs", templateHandler.RunPayroll)
	cfg := v1.Group("/config")
	{
		cfg.GET("/fee", templateHandler.GetFeeConfiguration)
		cfg.PUT("/fee", templateHandler.UpdateFeeConfiguration)
		cfg.GET("/payroll/:employer_id", templateHandler.GetPayrollConfiguration)
		cfg.PUT("/payroll/:employer_id", templateHandler.UpdatePayrollConfiguration)
	}

	primaryHandler := NewPrimaryWalletHandler(deps.BaseWalletSvc, deps.ReconciliationSvc)
	dashboardHandler := NewDashboardHandler(deps.ReportingSvc)
	primary := v1.Group("/primary-wallets/:blockchain/:name")
	{
		primary.GET("", primaryHandler.GetReadOnly)
		primary.GET("/stats", dashboardHandler.GetStats)
		primary.POST("/base-wallet", primaryHandler.CreateBaseWallet)
		primary.POST("/base-wallet/withdrawals", primaryHandler.WithdrawFromBaseWallet)
		primary.POST("/reconcile", primaryHandler.Reconcile)
	}
	v1.POST("/reconciliation", primaryHandler.ReconcileAll)
	v1.GET("/discrepancies", primaryHandler.Discrepancies)
	v1.GET("/transactions", dashboardHandler.ListTransactions)

	return r
}
