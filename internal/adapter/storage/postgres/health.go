package postgres

import (
	"context"
	"fmt"
)

// HealthCheck reads the ledger_state table, so an unmigrated or
// unreachable database both report unhealthy.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	if _, err := h.pool.Exec(ctx, `SELECT 1 FROM ledger_state LIMIT 1`); err != nil {
		return fmt.Errorf("ledger_state unreachable: %w", err)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}
