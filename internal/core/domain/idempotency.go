package domain

// BuildWithdrawalIdempotencyKey scopes a client request id to the wallet it debits.
func BuildWithdrawalIdempotencyKey(walletID, requestID string) string {
	return "withdrawal:" + walletID + ":" + requestID
}
