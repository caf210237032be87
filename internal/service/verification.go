package service

import (
	"context"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// verifyAfterTransaction runs the post-commit balance check. The transaction is
// already committed, so failures are logged and never returned; in strict mode
// the verifier blocks the next operation on the pool instead.
func verifyAfterTransaction(
	ctx context.Context,
	verifier ports.TransactionVerifier,
	log zerolog.Logger,
	pool domain.PoolKey,
	txType domain.LedgerTransactionType,
	details map[string]string,
) {
	res, err := verifier.VerifyBalanceAfterTransaction(ctx, pool.Blockchain, pool.PrimaryWalletName, txType, details)
	if err != nil {
		log.Error().Err(err).
			Str("blockchain", pool.Blockchain).
			Str("primary_wallet", pool.PrimaryWalletName).
			Str("transaction_type", string(txType)).
			Msg("balance verification failed after committed transaction")
		return
	}
	if res != nil && !res.Verified && !res.Skipped {
		l := log.Warn().
			Str("blockchain", pool.Blockchain).
			Str("primary_wallet", pool.PrimaryWalletName).
			Str("transaction_type", string(txType))
		if r := res.ReconciliationResult; r != nil {
			l = l.Str("difference", domain.FormatAmount(r.Difference))
		}
		l.Msg("balance discrepancy after transaction")
	}
}
