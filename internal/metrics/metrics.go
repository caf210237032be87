// Package metrics exposes ledger operation and reconciliation metrics to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/pkg/apperror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wallet_ledger"

// Collector owns a private registry so tests and multiple instances do not collide.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	reconciliations   *prometheus.CounterVec
	discrepancies     *prometheus.CounterVec
	difference        *prometheus.GaugeVec
	strictGate        *prometheus.GaugeVec
}

// NewCollector creates and registers every collector.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "operations",
				Name:      "total",
				Help:      "Ledger operations by outcome; result is success or the error code.",
			},
			[]string{"operation", "result"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "operations",
				Name:      "duration_seconds",
				Help:      "Duration of ledger operations including provider calls.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"operation"},
		),
		reconciliations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "reconciliation",
				Name:      "runs_total",
				Help:      "Per-primary-wallet reconciliation runs.",
			},
			[]string{"trigger", "result"},
		),
		discrepancies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "reconciliation",
				Name:      "discrepancies_total",
				Help:      "Discrepancies beyond the warning threshold.",
			},
			[]string{"blockchain", "primary_wallet"},
		),
		difference: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "reconciliation",
				Name:      "difference",
				Help:      "Last observed on-chain minus aggregate internal balance.",
			},
			[]string{"blockchain", "primary_wallet"},
		),
		strictGate: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "reconciliation",
				Name:      "strict_gate_blocked",
				Help:      "1 while a strict-mode discrepancy blocks mutations on the primary wallet.",
			},
			[]string{"blockchain", "primary_wallet"},
		),
	}

	c.registry.MustRegister(
		c.operations,
		c.operationDuration,
		c.reconciliations,
		c.discrepancies,
		c.difference,
		c.strictGate,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return c
}

// Handler returns an HTTP handler exposing the registered metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordOperation counts one service operation and observes its duration.
func (c *Collector) RecordOperation(operation string, start time.Time, err error) {
	if c == nil {
		return
	}
	c.operations.WithLabelValues(operation, result(err)).Inc()
	c.operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordReconciliation counts one reconciliation run and updates the difference gauge.
func (c *Collector) RecordReconciliation(trigger domain.ReconciliationTrigger, res *domain.ReconciliationResult, err error) {
	if c == nil {
		return
	}
	c.reconciliations.WithLabelValues(string(trigger), result(err)).Inc()
	if err != nil || res == nil {
		return
	}
	c.difference.WithLabelValues(res.Blockchain, res.PrimaryWalletName).Set(res.Difference.InexactFloat64())
	if res.HasDiscrepancy {
		c.discrepancies.WithLabelValues(res.Blockchain, res.PrimaryWalletName).Inc()
	}
}

// SetStrictGate reports whether the primary wallet is blocked by strict mode.
func (c *Collector) SetStrictGate(pool domain.PoolKey, blocked bool) {
	if c == nil {
		return
	}
	v := 0.0
	if blocked {
		v = 1
	}
	c.strictGate.WithLabelValues(pool.Blockchain, pool.PrimaryWalletName).Set(v)
}

func result(err error) string {
	if err == nil {
		return "success"
	}
	if code := apperror.CodeOf(err); code != "" {
		return code
	}
	return "error"
}
