package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wallet-ledger/config"
	"wallet-ledger/internal/lock"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// releaseScript deletes the lock only if it still carries our token, so a lock
// that expired and was re-acquired by another instance is left alone.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// WalletLocker implements ports.WalletLocker with SET NX PX so that several
// ledgerd instances serialize on the same wallet ids.
type WalletLocker struct {
	client        *goredis.Client
	prefix        string
	ttl           time.Duration
	retryInterval time.Duration
	waitTimeout   time.Duration
	log           zerolog.Logger
}

// NewWalletLocker creates a new Redis-backed wallet locker.
func NewWalletLocker(client *goredis.Client, cfg config.LockingConfig, log zerolog.Logger) *WalletLocker {
	return &WalletLocker{
		client:        client,
		prefix:        LockKeyPrefix,
		ttl:           cfg.TTL,
		retryInterval: cfg.RetryInterval,
		waitTimeout:   cfg.WaitTimeout,
		log:           log,
	}
}

// Lock acquires every key in sorted order, waiting at most waitTimeout.
func (l *WalletLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	if l.waitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.waitTimeout)
		defer cancel()
	}

	token := uuid.NewString()
	keys = lock.Keys(keys...)
	acquired := make([]string, 0, len(keys))
	for _, key := range keys {
		if err := l.acquire(ctx, key, token); err != nil {
			l.releaseAll(acquired, token)
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil, apperror.ErrLockTimeout(fmt.Errorf("lock %s: %w", key, err))
			}
			return nil, apperror.InternalError(fmt.Errorf("redis lock %s: %w", key, err))
		}
		acquired = append(acquired, key)
	}

	var once sync.Once
	return func() { once.Do(func() { l.releaseAll(acquired, token) }) }, nil
}

func (l *WalletLocker) acquire(ctx context.Context, key, token string) error {
	for {
		ok, err := l.client.SetNX(ctx, l.prefix+key, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}
}

// Release runs on a fresh context so a canceled request still frees its locks.
func (l *WalletLocker) releaseAll(keys []string, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := len(keys) - 1; i >= 0; i-- {
		if err := releaseScript.Run(ctx, l.client, []string{l.prefix + keys[i]}, token).Err(); err != nil {
			l.log.Warn().Err(err).Str("key", keys[i]).Msg("Failed to release wallet lock; it will expire after its TTL")
		}
	}
}
