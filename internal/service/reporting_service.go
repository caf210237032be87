package service

import (
	"context"
	"sort"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/shopspring/decimal"
)

// reportingService implements ports.ReportingService on top of the ledger record log.
type reportingService struct {
	store ports.LedgerStore
	now   func() time.Time
}

// NewReportingService creates a new reporting service.
func NewReportingService(store ports.LedgerStore) ports.ReportingService {
	return &reportingService{store: store, now: utcNow}
}

// GetLedgerStats aggregates the records of one primary wallet over period.
func (s *reportingService) GetLedgerStats(ctx context.Context, blockchain, primaryWalletName, period string) (*ports.LedgerStats, error) {
	var since time.Time

	switch period {
	case "day":
		since = s.now().AddDate(0, 0, -1)
	case "week":
		since = s.now().AddDate(0, 0, -7)
	case "month":
		since = s.now().AddDate(0, -1, 0)
	case "all", "":
		// No time filter
	default:
		return nil, apperror.Validation("invalid period: must be day, week, month, or all")
	}

	records, err := evaluate[[]domain.LedgerTransactionRecord](ctx, s.store, domain.GetLedgerTransactions{})
	if err != nil {
		return nil, err
	}

	stats := &ports.LedgerStats{ByType: make(map[domain.LedgerTransactionType]int64)}
	sum := func(dst *decimal.Decimal, v decimal.Decimal) { *dst = domain.Round(dst.Add(v)) }
	for i := range records {
		r := &records[i]
		if r.Blockchain != blockchain || r.PrimaryWalletName != primaryWalletName {
			continue
		}
		if !since.IsZero() && r.Timestamp.Before(since) {
			continue
		}
		stats.TotalTransactions++
		stats.ByType[r.Type]++
		switch r.Type {
		case domain.LedgerTransactionWithdrawal:
			sum(&stats.Withdrawn, r.Amount)
			sum(&stats.WithdrawalFees, r.FeeAmount)
		case domain.LedgerTransactionTransfer:
			sum(&stats.Transferred, r.Amount)
		case domain.LedgerTransactionMerchantPayment:
			sum(&stats.MerchantVolume, r.Amount)
			sum(&stats.MerchantFees, r.FeeAmount)
		case domain.LedgerTransactionPayroll:
			sum(&stats.PayrollPaid, r.Amount)
		}
	}
	return stats, nil
}

// ListLedgerTransactions returns one page of records, newest first, and the total match count.
func (s *reportingService) ListLedgerTransactions(ctx context.Context, params ports.LedgerTransactionListParams) ([]domain.LedgerTransactionRecord, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}

	records, err := evaluate[[]domain.LedgerTransactionRecord](ctx, s.store, domain.GetLedgerTransactions{WalletID: params.WalletID})
	if err != nil {
		return nil, 0, err
	}

	matched := records[:0]
	for _, r := range records {
		if params.Type != nil && r.Type != *params.Type {
			continue
		}
		if params.From != nil && r.Timestamp.Unix() < *params.From {
			continue
		}
		if params.To != nil && r.Timestamp.Unix() > *params.To {
			continue
		}
		matched = append(matched, r)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Timestamp.After(matched[j].Timestamp) })

	total := int64(len(matched))
	// Compare page indexes before multiplying; page comes straight from the query string.
	if len(matched) == 0 || params.Page-1 > (len(matched)-1)/params.PageSize {
		return []domain.LedgerTransactionRecord{}, total, nil
	}
	start := (params.Page - 1) * params.PageSize
	end := start + min(params.PageSize, len(matched)-start)
	return matched[start:end], total, nil
}
