package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper runs one full reconciliation pass.
type Sweeper interface {
	RunScheduled(ctx context.Context) *domain.ReconciliationReport
}

// Scheduler runs a reconciliation sweep every frequency. A tick that is still
// running when the next one fires causes that next one to be skipped.
type Scheduler struct {
	sweeper   Sweeper
	frequency time.Duration
	timeout   time.Duration
	log       zerolog.Logger

	cron     *cron.Cron
	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
	done     context.Context
}

// NewScheduler creates a Scheduler. Each sweep gets a context bounded by frequency.
func NewScheduler(sweeper Sweeper, frequency time.Duration, log zerolog.Logger) *Scheduler {
	cl := cronLogger{log: log}
	return &Scheduler{
		sweeper:   sweeper,
		frequency: frequency,
		timeout:   frequency,
		log:       log,
		cron:      cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
	}
}

// Start schedules the sweep. It is an error to start twice.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("reconciliation scheduler already started")
	}
	if s.frequency <= 0 {
		return fmt.Errorf("reconciliation frequency must be positive, got %s", s.frequency)
	}
	if _, err := s.cron.AddFunc("@every "+s.frequency.String(), s.tick); err != nil {
		return fmt.Errorf("schedule reconciliation: %w", err)
	}
	s.cron.Start()
	s.started = true
	s.log.Info().Dur("frequency", s.frequency).Msg("reconciliation scheduler started")
	return nil
}

// Stop prevents future ticks without interrupting one in flight. The returned
// context is done once the in-flight tick, if any, has finished. Stop is idempotent.
func (s *Scheduler) Stop() context.Context {
	s.stopOnce.Do(func() {
		s.done = s.cron.Stop()
		s.log.Info().Msg("reconciliation scheduler stopped")
	})
	return s.done
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	report := s.sweeper.RunScheduled(ctx)
	if n := report.DiscrepancyCount(); n > 0 {
		s.log.Warn().Int("discrepancies", n).Msg("scheduled reconciliation found discrepancies")
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
