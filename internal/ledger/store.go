package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// Store executes ledger operations against a Backend. Each call runs exactly one
// contract handler inside exactly one backend transaction.
type Store struct {
	backend  Backend
	contract *Contract
	log      zerolog.Logger
}

// NewStore creates a new Store.
func NewStore(backend Backend, contract *Contract, log zerolog.Logger) *Store {
	return &Store{backend: backend, contract: contract, log: log}
}

// Submit runs a mutating operation and returns its JSON-encoded result.
func (s *Store) Submit(ctx context.Context, cmd domain.Command) ([]byte, error) {
	if cmd == nil {
		return nil, apperror.ErrUnknownLedgerFunction("")
	}
	fn := cmd.Function()
	h, err := s.contract.lookup(fn)
	if err != nil {
		return nil, err
	}

	var result any
	err = s.backend.Update(ctx, func(txn Txn) error {
		var herr error
		result, herr = h(txn, cmd)
		return herr
	})
	if err != nil {
		return nil, wrapStoreError("submit", fn, err)
	}

	s.log.Debug().Str("function", string(fn)).Msg("ledger submit committed")
	return encodeResult(fn, result)
}

// Evaluate runs a read-only operation and returns its JSON-encoded result.
func (s *Store) Evaluate(ctx context.Context, q domain.Query) ([]byte, error) {
	if q == nil {
		return nil, apperror.ErrUnknownLedgerFunction("")
	}
	fn := q.Function()
	h, err := s.contract.lookup(fn)
	if err != nil {
		return nil, err
	}

	var result any
	err = s.backend.View(ctx, func(txn Txn) error {
		var herr error
		result, herr = h(txn, q)
		return herr
	})
	if err != nil {
		return nil, wrapStoreError("evaluate", fn, err)
	}
	return encodeResult(fn, result)
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Typed errors from the contract pass through; backend failures become SYS_001.
func wrapStoreError(op string, fn domain.Function, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.InternalError(fmt.Errorf("%s %s: %w", op, fn, err))
}

func encodeResult(fn domain.Function, result any) ([]byte, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encode %s result: %w", fn, err))
	}
	return raw, nil
}
