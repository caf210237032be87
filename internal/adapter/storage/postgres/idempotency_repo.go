package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// IdempotencyRepo implements ports.IdempotencyCache on PostgreSQL for
// deployments that run without Redis.
type IdempotencyRepo struct {
	pool Pool
	now  func() time.Time
}

// NewIdempotencyRepo creates a new IdempotencyRepo.
func NewIdempotencyRepo(pool Pool) *IdempotencyRepo {
	return &IdempotencyRepo{pool: pool, now: time.Now}
}

// Get fetches an unexpired cached result by key. Returns nil, nil if absent.
func (r *IdempotencyRepo) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT response_json FROM idempotency_logs WHERE key = $1 AND expires_at > $2`

	var body []byte
	err := r.pool.QueryRow(ctx, query, key, r.now().UTC()).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency log: %w", err)
	}
	return body, nil
}

// Set stores a result under key until ttl elapses, replacing any previous value.
func (r *IdempotencyRepo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	query := `INSERT INTO idempotency_logs (key, response_json, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET response_json = EXCLUDED.response_json, expires_at = EXCLUDED.expires_at`

	now := r.now().UTC()
	_, err := r.pool.Exec(ctx, query, key, value, now, now.Add(ttl))
	if err != nil {
		return fmt.Errorf("insert idempotency log: %w", err)
	}
	return nil
}
