package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const healthKeyTTL = 10 * time.Second

// HealthCheck reports Redis unhealthy when it can no longer take lock writes,
// which would stall every withdrawal and transfer.
type HealthCheck struct {
	client *goredis.Client
}

func NewHealthCheck(client *goredis.Client) *HealthCheck {
	return &HealthCheck{client: client}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	return checkWritable(ctx, h.client)
}

func (h *HealthCheck) Name() string {
	return "redis"
}
