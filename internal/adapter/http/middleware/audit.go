package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuditLog records every successful ledger mutation made through the API.
// Routes are matched on their registered pattern, not the raw path.
func AuditLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			return
		}

		action, resource := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		params := zerolog.Dict()
		for _, p := range c.Params {
			params.Str(p.Key, p.Value)
		}
		log.Info().
			Bool("audit", true).
			Str("action", action).
			Str("resource_type", resource).
			Dict("params", params).
			Str("request_id", c.GetString(CtxRequestID)).
			Str("client_ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Msg("ledger mutation")
	}
}

func mapRouteToAction(route, method string) (action, resource string) {
	switch method + " " + route {
	case "POST /api/v1/wallets":
		return "wallet.create", "internal_wallet"
	case "PUT /api/v1/wallets/:id/balance":
		return "wallet.balance_update", "internal_wallet"
	case "POST /api/v1/wallets/:id/withdrawals":
		return "wallet.withdraw", "ledger_transaction"
	case "POST /api/v1/transfers":
		return "wallet.transfer", "ledger_transaction"
	case "POST /api/v1/merchant-transactions":
		return "template.merchant_payment", "ledger_transaction"
	case "POST /api/v1/payroll/:employer_id/runs":
		return "template.payroll", "ledger_transaction"
	case "PUT /api/v1/config/fee":
		return "config.fee_update", "fee_configuration"
	case "PUT /api/v1/config/payroll/:employer_id":
		return "config.payroll_update", "payroll_configuration"
	case "POST /api/v1/primary-wallets/:blockchain/:name/base-wallet":
		return "base_wallet.create", "internal_wallet"
	case "POST /api/v1/primary-wallets/:blockchain/:name/base-wallet/withdrawals":
		return "base_wallet.withdraw", "ledger_transaction"
	case "POST /api/v1/primary-wallets/:blockchain/:name/reconcile":
		return "reconciliation.wallet", "primary_wallet"
	case "POST /api/v1/reconciliation":
		return "reconciliation.full", "primary_wallet"
	}
	return "", ""
}
