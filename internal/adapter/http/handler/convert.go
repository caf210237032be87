package handler

import (
	"time"

	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/pkg/apperror"

	"github.com/shopspring/decimal"
)

func parseAmount(field, raw string) (decimal.Decimal, error) {
	amt, err := domain.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, apperror.Validation(field + " must be a decimal amount").With(field, raw)
	}
	return amt, nil
}

func parseAmountMap(field string, raw map[string]string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(raw))
	for id, s := range raw {
		amt, err := parseAmount(field, s)
		if err != nil {
			return nil, err
		}
		out[id] = amt
	}
	return out, nil
}

func toWalletResponse(w *domain.InternalWallet) dto.WalletResponse {
	return dto.WalletResponse{
		ID:                w.ID,
		Blockchain:        w.Blockchain,
		PrimaryWalletName: w.PrimaryWalletName,
		Balance:           domain.FormatAmount(w.Balance),
		IsBaseWallet:      w.IsBaseWallet,
		Metadata:          w.Metadata,
		CreatedAt:         w.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         w.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toWalletResponses(wallets []*domain.InternalWallet) []dto.WalletResponse {
	out := make([]dto.WalletResponse, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, toWalletResponse(w))
	}
	return out
}
