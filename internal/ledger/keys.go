package ledger

import (
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
)

const (
	walletPrefix      = "wallet/"
	poolPrefix        = "pool/"
	txnPrefix         = "txn/"
	discrepancyPrefix = "discrepancy/"
	payrollRunPrefix  = "payroll/"

	feeConfigKey        = "config/fee"
	payrollConfigPrefix = "config/payroll/"
)

func walletKey(id string) string {
	return walletPrefix + id
}

func poolIndexPrefix(pool domain.PoolKey) string {
	return poolPrefix + pool.Blockchain + "/" + pool.PrimaryWalletName + "/"
}

func poolIndexKey(pool domain.PoolKey, id string) string {
	return poolIndexPrefix(pool) + id
}

// Timestamps are zero-padded so lexical key order is chronological.
func timeOrderedKey(prefix string, at time.Time, id string) string {
	return fmt.Sprintf("%s%020d/%s", prefix, at.UnixNano(), id)
}

func payrollConfigKey(employerWalletID string) string {
	return payrollConfigPrefix + employerWalletID
}

func payrollRunKey(employerWalletID, payrollDate string) string {
	return payrollRunPrefix + employerWalletID + "/" + payrollDate
}
