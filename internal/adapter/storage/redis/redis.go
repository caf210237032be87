package redis

import (
	"context"
	"fmt"

	"wallet-ledger/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Key namespaces shared by every ledgerd instance pointed at the same Redis.
const (
	LockKeyPrefix        = "ledger:lock:"
	IdempotencyKeyPrefix = "ledger:idempotency:"
	healthKey            = "ledger:health"
)

// NewClient connects the client that carries wallet locks and withdrawal
// idempotency entries. Locks are useless on a replica, so a read-only
// server is rejected here rather than on the first withdrawal.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := checkWritable(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Str("lock_prefix", LockKeyPrefix).
		Str("idempotency_prefix", IdempotencyKeyPrefix).
		Msg("Redis ready for wallet locks and withdrawal idempotency")

	return client, nil
}

func checkWritable(ctx context.Context, client *goredis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	if err := client.Set(ctx, healthKey, "ok", healthKeyTTL).Err(); err != nil {
		return fmt.Errorf("redis rejects ledger writes: %w", err)
	}
	return nil
}
