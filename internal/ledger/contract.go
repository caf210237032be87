package ledger

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/pkg/apperror"

	"github.com/shopspring/decimal"
)

type handler func(txn Txn, op any) (any, error)

// Contract holds exactly one handler per domain.Function.
type Contract struct {
	handlers map[domain.Function]handler
}

// NewContract builds the handler map and fails if any declared function is unhandled.
func NewContract() (*Contract, error) {
	c := &Contract{}
	c.handlers = map[domain.Function]handler{
		domain.FnCreateInternalWallet:              bind(c.createInternalWallet),
		domain.FnGetInternalWallet:                 bind(c.getInternalWallet),
		domain.FnGetAllInternalWallets:             bind(c.getAllInternalWallets),
		domain.FnGetInternalWalletsByPrimaryWallet: bind(c.getInternalWalletsByPrimaryWallet),
		domain.FnUpdateInternalWalletBalance:       bind(c.updateInternalWalletBalance),
		domain.FnReconcileBaseInternalWallet:       bind(c.reconcileBaseInternalWallet),
		domain.FnWithdrawFromInternalWallet:        bind(c.withdrawFromInternalWallet),
		domain.FnTransferBetweenInternalWallets:    bind(c.transferBetweenInternalWallets),
		domain.FnProcessMerchantTransaction:        bind(c.processMerchantTransaction),
		domain.FnProcessPayroll:                    bind(c.processPayroll),
		domain.FnRecordBalanceDiscrepancy:          bind(c.recordBalanceDiscrepancy),
		domain.FnGetBalanceDiscrepancies:           bind(c.getBalanceDiscrepancies),
		domain.FnGetFeeConfiguration:               bind(c.getFeeConfiguration),
		domain.FnUpdateFeeConfiguration:            bind(c.updateFeeConfiguration),
		domain.FnGetPayrollConfiguration:           bind(c.getPayrollConfiguration),
		domain.FnUpdatePayrollConfiguration:        bind(c.updatePayrollConfiguration),
		domain.FnGetLedgerTransactions:             bind(c.getLedgerTransactions),
	}
	if err := c.verify(domain.Functions()); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Contract) verify(functions []domain.Function) error {
	var missing []string
	for _, fn := range functions {
		if _, ok := c.handlers[fn]; !ok {
			missing = append(missing, string(fn))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("ledger functions without handler: %v", missing)
	}
	return nil
}

func (c *Contract) lookup(fn domain.Function) (handler, error) {
	h, ok := c.handlers[fn]
	if !ok {
		return nil, apperror.ErrUnknownLedgerFunction(string(fn))
	}
	return h, nil
}

func bind[T any](h func(txn Txn, op T) (any, error)) handler {
	return func(txn Txn, op any) (any, error) {
		v, ok := op.(T)
		if !ok {
			return nil, fmt.Errorf("unexpected operation type %T", op)
		}
		return h(txn, v)
	}
}

// ---- Internal wallets ----

func (c *Contract) createInternalWallet(txn Txn, cmd domain.CreateInternalWallet) (any, error) {
	w := cmd.Wallet
	if w.ID == "" || w.Blockchain == "" || w.PrimaryWalletName == "" {
		return nil, apperror.Validation("wallet id, blockchain and primary wallet name are required")
	}
	w.Balance = domain.Round(w.Balance)
	if w.Balance.IsNegative() {
		return nil, apperror.ErrInvalidAmount().With("wallet_id", w.ID)
	}

	// Ids are global: the wallet key is not scoped by blockchain or primary wallet.
	found, err := exists(txn, walletKey(w.ID))
	if err != nil {
		return nil, err
	}
	if found {
		return nil, apperror.ErrWalletAlreadyExists(w.ID)
	}

	if err := putJSON(txn, walletKey(w.ID), &w); err != nil {
		return nil, err
	}
	if err := txn.Set(poolIndexKey(w.Pool(), w.ID), []byte(w.ID)); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Contract) getInternalWallet(txn Txn, q domain.GetInternalWallet) (any, error) {
	return loadWallet(txn, q.WalletID)
}

func (c *Contract) getAllInternalWallets(txn Txn, _ domain.GetAllInternalWallets) (any, error) {
	return scanJSON[domain.InternalWallet](txn, walletPrefix, nil)
}

func (c *Contract) getInternalWalletsByPrimaryWallet(txn Txn, q domain.GetInternalWalletsByPrimaryWallet) (any, error) {
	var ids []string
	err := txn.Scan(poolIndexPrefix(q.Pool), func(_ string, value []byte) error {
		ids = append(ids, string(value))
		return nil
	})
	if err != nil {
		return nil, err
	}

	wallets := make([]*domain.InternalWallet, 0, len(ids))
	for _, id := range ids {
		w, err := loadWallet(txn, id)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	domain.SortWallets(wallets)
	return wallets, nil
}

func (c *Contract) updateInternalWalletBalance(txn Txn, cmd domain.UpdateInternalWalletBalance) (any, error) {
	w, err := loadWallet(txn, cmd.WalletID)
	if err != nil {
		return nil, err
	}
	if w.IsBaseWallet {
		return nil, apperror.ErrBaseWalletDirectMutationForbidden(w.ID)
	}
	return c.overwriteBalance(txn, w, cmd.NewBalance, cmd.RecordID, domain.LedgerTransactionBalanceUpdate, cmd.At)
}

func (c *Contract) reconcileBaseInternalWallet(txn Txn, cmd domain.ReconcileBaseInternalWallet) (any, error) {
	w, err := loadWallet(txn, cmd.WalletID)
	if err != nil {
		return nil, err
	}
	if !w.IsBaseWallet {
		return nil, apperror.Validation("only base wallets can be reconciled").With("wallet_id", w.ID)
	}
	return c.overwriteBalance(txn, w, cmd.NewBalance, cmd.RecordID, domain.LedgerTransactionBaseReconcile, cmd.At)
}

func (c *Contract) overwriteBalance(txn Txn, w *domain.InternalWallet, newBalance decimal.Decimal, recordID string, txType domain.LedgerTransactionType, at time.Time) (*domain.InternalWallet, error) {
	balance := domain.Round(newBalance)
	if balance.IsNegative() {
		return nil, apperror.ErrInvalidAmount().With("wallet_id", w.ID)
	}

	rec := domain.LedgerTransactionRecord{
		ID:                recordID,
		Type:              txType,
		Blockchain:        w.Blockchain,
		PrimaryWalletName: w.PrimaryWalletName,
		ToWalletID:        w.ID,
		Amount:            balance,
		NetAmount:         domain.Round(balance.Sub(w.Balance)),
		Timestamp:         at,
	}

	w.Balance = balance
	w.UpdatedAt = at
	if err := putJSON(txn, walletKey(w.ID), w); err != nil {
		return nil, err
	}
	if err := appendRecord(txn, &rec); err != nil {
		return nil, err
	}
	return w, nil
}

// ---- Balance movement ----

func (c *Contract) withdrawFromInternalWallet(txn Txn, cmd domain.WithdrawFromInternalWallet) (any, error) {
	rec := cmd.Record
	if err := requirePositive(rec.Amount); err != nil {
		return nil, err
	}
	if rec.FeeAmount.IsNegative() {
		return nil, apperror.ErrInvalidAmount().With("fee", rec.FeeAmount.String())
	}
	rec.Amount = domain.Round(rec.Amount)
	rec.FeeAmount = domain.Round(rec.FeeAmount)
	rec.NetAmount = domain.Round(rec.Amount.Add(rec.FeeAmount))

	deltas := map[string]decimal.Decimal{rec.FromWalletID: rec.NetAmount.Neg()}
	if err := applyDeltas(txn, rec.Pool(), deltas, rec.Timestamp); err != nil {
		return nil, err
	}
	if err := appendRecord(txn, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Contract) transferBetweenInternalWallets(txn Txn, cmd domain.TransferBetweenInternalWallets) (any, error) {
	rec := cmd.Record
	if rec.FromWalletID == rec.ToWalletID {
		return nil, apperror.Validation("cannot transfer to the same wallet").With("wallet_id", rec.FromWalletID)
	}
	if err := requirePositive(rec.Amount); err != nil {
		return nil, err
	}
	rec.Amount = domain.Round(rec.Amount)
	rec.NetAmount = rec.Amount

	deltas := map[string]decimal.Decimal{
		rec.FromWalletID: rec.Amount.Neg(),
		rec.ToWalletID:   rec.Amount,
	}
	if err := applyDeltas(txn, rec.Pool(), deltas, rec.Timestamp); err != nil {
		return nil, err
	}
	if err := appendRecord(txn, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Contract) processMerchantTransaction(txn Txn, cmd domain.ProcessMerchantTransaction) (any, error) {
	rec := cmd.Record
	if rec.FromWalletID == rec.ToWalletID {
		return nil, apperror.Validation("payer and merchant must differ").With("wallet_id", rec.FromWalletID)
	}
	if err := requirePositive(rec.Amount); err != nil {
		return nil, err
	}
	rec.Amount = domain.Round(rec.Amount)
	rec.FeeAmount = domain.Round(rec.FeeAmount)
	rec.NetAmount = domain.Round(rec.NetAmount)
	if rec.FeeAmount.IsNegative() || rec.NetAmount.IsNegative() {
		return nil, apperror.ErrInvalidAmount()
	}
	if !rec.NetAmount.Add(rec.FeeAmount).Equal(rec.Amount) {
		return nil, apperror.Validation("net amount and fee must add up to amount").
			With("amount", domain.FormatAmount(rec.Amount)).
			With("net_amount", domain.FormatAmount(rec.NetAmount)).
			With("fee_amount", domain.FormatAmount(rec.FeeAmount))
	}

	deltas := make(map[string]decimal.Decimal, 3)
	addDelta(deltas, rec.FromWalletID, rec.Amount.Neg())
	addDelta(deltas, rec.ToWalletID, rec.NetAmount)
	addDelta(deltas, rec.FeeWalletID, rec.FeeAmount)
	if err := applyDeltas(txn, rec.Pool(), deltas, rec.Timestamp); err != nil {
		return nil, err
	}
	if err := appendRecord(txn, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Contract) processPayroll(txn Txn, cmd domain.ProcessPayroll) (any, error) {
	rec := cmd.Record
	if rec.PayrollDate == "" {
		return nil, apperror.Validation("payroll date is required")
	}
	if len(rec.Recipients) == 0 {
		return nil, apperror.Validation("payroll has no employees")
	}

	ran, err := exists(txn, payrollRunKey(rec.FromWalletID, rec.PayrollDate))
	if err != nil {
		return nil, err
	}
	if ran {
		return nil, apperror.ErrPayrollAlreadyProcessed(rec.FromWalletID, rec.PayrollDate)
	}

	rec.Recipients = append([]domain.Payment(nil), rec.Recipients...)
	total := decimal.Zero
	deltas := make(map[string]decimal.Decimal, len(rec.Recipients)+1)
	for i, p := range rec.Recipients {
		if p.WalletID == rec.FromWalletID {
			return nil, apperror.Validation("employer cannot pay itself").With("wallet_id", p.WalletID)
		}
		found, err := exists(txn, walletKey(p.WalletID))
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, apperror.ErrEmployeeWalletNotFound(p.WalletID)
		}
		amount := domain.Round(p.Amount)
		if !amount.IsPositive() {
			return nil, apperror.ErrInvalidAmount().With("wallet_id", p.WalletID)
		}
		rec.Recipients[i].Amount = amount
		total = total.Add(amount)
		addDelta(deltas, p.WalletID, amount)
	}
	rec.Amount = domain.Round(total)
	rec.NetAmount = rec.Amount
	addDelta(deltas, rec.FromWalletID, rec.Amount.Neg())

	if err := applyDeltas(txn, rec.Pool(), deltas, rec.Timestamp); err != nil {
		return nil, err
	}
	if err := txn.Set(payrollRunKey(rec.FromWalletID, rec.PayrollDate), []byte(rec.ID)); err != nil {
		return nil, err
	}
	if err := appendRecord(txn, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ---- Reconciliation ----

func (c *Contract) recordBalanceDiscrepancy(txn Txn, cmd domain.RecordBalanceDiscrepancy) (any, error) {
	d := cmd.Discrepancy
	if d.ID == "" {
		return nil, apperror.Validation("discrepancy id is required")
	}
	if err := putJSON(txn, timeOrderedKey(discrepancyPrefix, d.DetectedAt, d.ID), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Contract) getBalanceDiscrepancies(txn Txn, q domain.GetBalanceDiscrepancies) (any, error) {
	var keep func(*domain.BalanceDiscrepancy) bool
	if q.Pool != (domain.PoolKey{}) {
		keep = func(d *domain.BalanceDiscrepancy) bool {
			return d.Blockchain == q.Pool.Blockchain && d.PrimaryWalletName == q.Pool.PrimaryWalletName
		}
	}
	return scanJSON(txn, discrepancyPrefix, keep)
}

func (c *Contract) getLedgerTransactions(txn Txn, q domain.GetLedgerTransactions) (any, error) {
	var keep func(*domain.LedgerTransactionRecord) bool
	if q.WalletID != "" {
		keep = func(r *domain.LedgerTransactionRecord) bool { return r.Involves(q.WalletID) }
	}
	return scanJSON(txn, txnPrefix, keep)
}

// ---- Configuration ----

func (c *Contract) getFeeConfiguration(txn Txn, _ domain.GetFeeConfiguration) (any, error) {
	var cfg domain.FeeConfiguration
	if err := getJSON(txn, feeConfigKey, &cfg); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, apperror.ErrConfigurationNotFound("Fee configuration")
		}
		return nil, err
	}
	return &cfg, nil
}

func (c *Contract) updateFeeConfiguration(txn Txn, cmd domain.UpdateFeeConfiguration) (any, error) {
	cfg := cmd.Config
	if err := cfg.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	var current domain.FeeConfiguration
	err := getJSON(txn, feeConfigKey, &current)
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return nil, err
	}
	cfg.Version = current.Version + 1

	if err := putJSON(txn, feeConfigKey, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Contract) getPayrollConfiguration(txn Txn, q domain.GetPayrollConfiguration) (any, error) {
	var cfg domain.PayrollConfiguration
	if err := getJSON(txn, payrollConfigKey(q.EmployerWalletID), &cfg); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, apperror.ErrConfigurationNotFound("Payroll configuration").
				With("employer_wallet_id", q.EmployerWalletID)
		}
		return nil, err
	}
	return &cfg, nil
}

func (c *Contract) updatePayrollConfiguration(txn Txn, cmd domain.UpdatePayrollConfiguration) (any, error) {
	cfg := cmd.Config
	if err := cfg.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if _, err := loadWallet(txn, cfg.EmployerWalletID); err != nil {
		return nil, err
	}

	key := payrollConfigKey(cfg.EmployerWalletID)
	var current domain.PayrollConfiguration
	err := getJSON(txn, key, &current)
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return nil, err
	}
	cfg.Version = current.Version + 1

	if err := putJSON(txn, key, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ---- Helpers ----

func requirePositive(amount decimal.Decimal) error {
	if _, ok := domain.NormalizePositive(amount); !ok {
		return apperror.ErrInvalidAmount().With("amount", amount.String())
	}
	return nil
}

func addDelta(deltas map[string]decimal.Decimal, walletID string, delta decimal.Decimal) {
	deltas[walletID] = deltas[walletID].Add(delta)
}

// applyDeltas loads every wallet once, checks it belongs to pool and that no
// balance goes negative, then writes every wallet once. Nothing is written if
// any check fails.
func applyDeltas(txn Txn, pool domain.PoolKey, deltas map[string]decimal.Decimal, at time.Time) error {
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	wallets := make([]*domain.InternalWallet, 0, len(ids))
	for _, id := range ids {
		w, err := loadWallet(txn, id)
		if err != nil {
			return err
		}
		if w.Blockchain != pool.Blockchain {
			return apperror.ErrCrossChainTransferForbidden(pool.Blockchain, w.Blockchain)
		}
		if w.PrimaryWalletName != pool.PrimaryWalletName {
			return apperror.ErrCrossPrimaryWalletTransferForbidden(pool.PrimaryWalletName, w.PrimaryWalletName)
		}

		delta := domain.Round(deltas[id])
		next := domain.Round(w.Balance.Add(delta))
		if next.IsNegative() {
			return apperror.ErrInsufficientWalletBalance(id, domain.FormatAmount(w.Balance), domain.FormatAmount(delta.Neg()))
		}
		w.Balance = next
		w.UpdatedAt = at
		wallets = append(wallets, w)
	}

	for _, w := range wallets {
		if err := putJSON(txn, walletKey(w.ID), w); err != nil {
			return err
		}
	}
	return nil
}

func appendRecord(txn Txn, rec *domain.LedgerTransactionRecord) error {
	if rec.ID == "" {
		return apperror.Validation("ledger record id is required")
	}
	return putJSON(txn, timeOrderedKey(txnPrefix, rec.Timestamp, rec.ID), rec)
}
