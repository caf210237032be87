package ledger

import (
	"encoding/json"
	"errors"
	"fmt"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/pkg/apperror"
)

func getJSON(txn Txn, key string, v any) error {
	raw, err := txn.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func putJSON(txn Txn, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return txn.Set(key, raw)
}

func exists(txn Txn, key string) (bool, error) {
	_, err := txn.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func loadWallet(txn Txn, id string) (*domain.InternalWallet, error) {
	var w domain.InternalWallet
	if err := getJSON(txn, walletKey(id), &w); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, apperror.ErrWalletNotFound(id)
		}
		return nil, err
	}
	return &w, nil
}

func scanJSON[T any](txn Txn, prefix string, keep func(*T) bool) ([]*T, error) {
	out := make([]*T, 0)
	err := txn.Scan(prefix, func(key string, value []byte) error {
		v := new(T)
		if err := json.Unmarshal(value, v); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		if keep == nil || keep(v) {
			out = append(out, v)
		}
		return nil
	})
	return out, err
}
