package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/metrics"
	"wallet-ledger/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TransferServiceImpl implements ports.TransferService.
type TransferServiceImpl struct {
	store          ports.LedgerStore
	providers      ports.ProviderRegistry
	locker         ports.WalletLocker
	verifier       ports.TransactionVerifier
	idempCache     ports.IdempotencyCache
	idempotencyTTL time.Duration
	metrics        *metrics.Collector
	log            zerolog.Logger
	now            func() time.Time
}

// NewTransferService creates a new TransferServiceImpl. A nil idempCache
// disables request-id replay.
func NewTransferService(
	store ports.LedgerStore,
	providers ports.ProviderRegistry,
	locker ports.WalletLocker,
	verifier ports.TransactionVerifier,
	idempCache ports.IdempotencyCache,
	idempotencyTTL time.Duration,
	m *metrics.Collector,
	log zerolog.Logger,
) *TransferServiceImpl {
	return &TransferServiceImpl{
		store:          store,
		providers:      providers,
		locker:         locker,
		verifier:       verifier,
		idempCache:     idempCache,
		idempotencyTTL: idempotencyTTL,
		metrics:        m,
		log:            log,
		now:            utcNow,
	}
}

// Withdraw debits amount + fee from an internal wallet and sends amount on-chain.
// Checks run wallet, aggregate, then on-chain balance and fail on the first
// violation. The debit commits before the send, so a failed send leaves a
// recoverable debit rather than an unrecorded transaction.
func (s *TransferServiceImpl) Withdraw(ctx context.Context, req ports.WithdrawalRequest) (res *domain.WithdrawalResult, err error) {
	defer func(start time.Time) { s.metrics.RecordOperation("withdraw", start, err) }(time.Now())

	amount, ok := domain.NormalizePositive(req.Amount)
	if !ok {
		return nil, apperror.ErrInvalidAmount().With("amount", req.Amount.String())
	}
	if req.ToAddress == "" {
		return nil, apperror.ErrInvalidAddress("")
	}
	if req.Fee != nil && req.Fee.IsNegative() {
		return nil, apperror.ErrInvalidAmount().With("fee", req.Fee.String())
	}

	var idempKey string
	if req.RequestID != "" && s.idempCache != nil {
		idempKey = domain.BuildWithdrawalIdempotencyKey(req.InternalWalletID, req.RequestID)
		// A pending entry may belong to a send still in flight; decide under the lock.
		if cached := s.cachedWithdrawal(ctx, idempKey); cached != nil && cached.Sent() {
			return cached, nil
		}
	}

	wallet, err := loadWallet(ctx, s.store, req.InternalWalletID)
	if err != nil {
		return nil, err
	}
	pool := wallet.Pool()
	provider, err := resolveProvider(s.providers, pool)
	if err != nil {
		return nil, err
	}
	if err := s.verifier.CheckGate(pool); err != nil {
		return nil, err
	}

	res, err = s.withdrawLocked(ctx, provider, req.InternalWalletID, req.ToAddress, amount, req.Fee, idempKey)
	if err != nil {
		return nil, err
	}

	verifyAfterTransaction(ctx, s.verifier, s.log, pool, domain.LedgerTransactionWithdrawal, map[string]string{
		"record_id":     res.Record.ID,
		"wallet_id":     res.Record.FromWalletID,
		"amount":        domain.FormatAmount(res.Record.Amount),
		"fee":           domain.FormatAmount(res.Record.FeeAmount),
		"on_chain_txid": res.TransactionID,
	})
	return res, nil
}

func (s *TransferServiceImpl) withdrawLocked(
	ctx context.Context,
	provider ports.PrimaryWalletProvider,
	walletID, toAddress string,
	amount decimal.Decimal,
	requestedFee *decimal.Decimal,
	idempKey string,
) (*domain.WithdrawalResult, error) {
	pool := domain.PoolKey{Blockchain: provider.Blockchain(), PrimaryWalletName: provider.Name()}
	release, err := s.locker.Lock(ctx, walletLockKey(walletID), poolLockKey(pool))
	if err != nil {
		return nil, err
	}
	defer release()

	// A concurrent duplicate may have finished while we waited for the lock.
	if idempKey != "" {
		if cached := s.cachedWithdrawal(ctx, idempKey); cached != nil {
			return replayWithdrawal(cached)
		}
	}

	wallet, err := loadWallet(ctx, s.store, walletID)
	if err != nil {
		return nil, err
	}

	var fee decimal.Decimal
	if requestedFee != nil {
		fee = domain.Round(*requestedFee)
	} else {
		fee, err = provider.EstimateFee(ctx, toAddress, amount)
		if err != nil {
			return nil, apperror.ErrProvider(fmt.Errorf("estimate fee: %w", err))
		}
		fee = domain.Round(fee)
	}
	total := domain.Round(amount.Add(fee))

	if wallet.Balance.LessThan(total) {
		return nil, apperror.ErrInsufficientWalletBalance(walletID, domain.FormatAmount(wallet.Balance), domain.FormatAmount(total))
	}

	wallets, err := poolWallets(ctx, s.store, pool)
	if err != nil {
		return nil, err
	}
	aggregate := domain.SumBalances(wallets, true)
	if aggregate.LessThan(total) {
		return nil, apperror.ErrInsufficientAggregateBalance(pool.Blockchain, pool.PrimaryWalletName,
			domain.FormatAmount(aggregate), domain.FormatAmount(total))
	}

	onChain, err := onChainBalance(ctx, provider)
	if err != nil {
		return nil, err
	}
	if onChain.LessThan(total) {
		return nil, apperror.ErrInsufficientOnChainBalance(pool.Blockchain, pool.PrimaryWalletName,
			domain.FormatAmount(onChain), domain.FormatAmount(total))
	}

	valid, err := provider.VerifyAddress(ctx, toAddress)
	if err != nil {
		return nil, apperror.ErrProvider(fmt.Errorf("verify address: %w", err))
	}
	if !valid {
		return nil, apperror.ErrInvalidAddress(toAddress)
	}

	rec := newRecord(domain.LedgerTransactionWithdrawal, pool, s.now())
	rec.FromWalletID = walletID
	rec.ToAddress = toAddress
	rec.Amount = amount
	rec.FeeAmount = fee
	debit, err := submit[*domain.LedgerTransactionRecord](ctx, s.store, domain.WithdrawFromInternalWallet{Record: rec})
	if err != nil {
		return nil, err
	}
	if idempKey != "" {
		s.cacheWithdrawal(ctx, idempKey, &domain.WithdrawalResult{Record: *debit})
	}

	txID, err := provider.SendTransaction(ctx, toAddress, amount, ports.SendOptions{
		Fee:              fee,
		InternalWalletID: walletID,
		Reference:        debit.ID,
	})
	if err != nil {
		s.log.Error().Err(err).
			Bool("recoverable", true).
			Str("record_id", debit.ID).
			Str("wallet_id", walletID).
			Str("amount", domain.FormatAmount(amount)).
			Str("fee", domain.FormatAmount(fee)).
			Msg("wallet debited but on-chain send failed")
		return nil, apperror.ErrProvider(fmt.Errorf("send transaction: %w", err)).With("record_id", debit.ID)
	}

	res := &domain.WithdrawalResult{Record: *debit, TransactionID: txID}
	if idempKey != "" {
		s.cacheWithdrawal(ctx, idempKey, res)
	}

	s.log.Info().
		Str("record_id", debit.ID).
		Str("wallet_id", walletID).
		Str("to_address", toAddress).
		Str("amount", domain.FormatAmount(amount)).
		Str("fee", domain.FormatAmount(fee)).
		Str("txid", txID).
		Msg("withdrawal sent")
	return res, nil
}

// Transfer moves amount between two wallets of the same primary wallet. No fee applies.
func (s *TransferServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) (rec *domain.LedgerTransactionRecord, err error) {
	defer func(start time.Time) { s.metrics.RecordOperation("transfer", start, err) }(time.Now())

	if req.FromWalletID == req.ToWalletID {
		return nil, apperror.Validation("cannot transfer to the same wallet").With("wallet_id", req.FromWalletID)
	}
	amount, ok := domain.NormalizePositive(req.Amount)
	if !ok {
		return nil, apperror.ErrInvalidAmount().With("amount", req.Amount.String())
	}

	from, err := loadWallet(ctx, s.store, req.FromWalletID)
	if err != nil {
		return nil, err
	}
	to, err := loadWallet(ctx, s.store, req.ToWalletID)
	if err != nil {
		return nil, err
	}
	pool := from.Pool()
	if err := samePool(pool, to); err != nil {
		return nil, err
	}
	if err := s.verifier.CheckGate(pool); err != nil {
		return nil, err
	}

	rec, err = s.transferLocked(ctx, pool, req.FromWalletID, req.ToWalletID, amount, req.Memo)
	if err != nil {
		return nil, err
	}

	verifyAfterTransaction(ctx, s.verifier, s.log, pool, domain.LedgerTransactionTransfer, map[string]string{
		"record_id": rec.ID,
		"from":      rec.FromWalletID,
		"to":        rec.ToWalletID,
		"amount":    domain.FormatAmount(rec.Amount),
	})
	return rec, nil
}

func (s *TransferServiceImpl) transferLocked(ctx context.Context, pool domain.PoolKey, fromID, toID string, amount decimal.Decimal, memo string) (*domain.LedgerTransactionRecord, error) {
	release, err := s.locker.Lock(ctx, walletLockKey(fromID), walletLockKey(toID))
	if err != nil {
		return nil, err
	}
	defer release()

	from, err := loadWallet(ctx, s.store, fromID)
	if err != nil {
		return nil, err
	}
	if from.Balance.LessThan(amount) {
		return nil, apperror.ErrInsufficientWalletBalance(fromID, domain.FormatAmount(from.Balance), domain.FormatAmount(amount))
	}

	rec := newRecord(domain.LedgerTransactionTransfer, pool, s.now())
	rec.FromWalletID = fromID
	rec.ToWalletID = toID
	rec.Amount = amount
	rec.Memo = memo
	out, err := submit[*domain.LedgerTransactionRecord](ctx, s.store, domain.TransferBetweenInternalWallets{Record: rec})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("record_id", out.ID).
		Str("from", fromID).
		Str("to", toID).
		Str("amount", domain.FormatAmount(out.Amount)).
		Msg("internal transfer committed")
	return out, nil
}

func (s *TransferServiceImpl) cachedWithdrawal(ctx context.Context, key string) *domain.WithdrawalResult {
	cached, err := s.idempCache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("idempotency cache lookup failed")
		return nil
	}
	if cached == nil {
		return nil
	}
	var res domain.WithdrawalResult
	if err := json.Unmarshal(cached, &res); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("discarding undecodable idempotency entry")
		return nil
	}
	s.log.Info().Str("key", key).Str("record_id", res.Record.ID).Bool("sent", res.Sent()).Msg("withdrawal replayed from idempotency cache")
	return &res
}

// replayWithdrawal runs under the wallet lock, so a pending entry means the
// send failed. The debit is not repeated; reconciliation settles the record.
func replayWithdrawal(cached *domain.WithdrawalResult) (*domain.WithdrawalResult, error) {
	if !cached.Sent() {
		return nil, apperror.ErrWithdrawalSendPending(cached.Record.FromWalletID, cached.Record.ID)
	}
	return cached, nil
}

func (s *TransferServiceImpl) cacheWithdrawal(ctx context.Context, key string, res *domain.WithdrawalResult) {
	raw, err := json.Marshal(res)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to encode withdrawal for idempotency cache")
		return
	}
	if err := s.idempCache.Set(ctx, key, raw, s.idempotencyTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to cache withdrawal result")
	}
}
