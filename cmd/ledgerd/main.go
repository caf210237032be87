package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet-ledger/config"
	httpHandler "wallet-ledger/internal/adapter/http/handler"
	"wallet-ledger/internal/adapter/provider"
	badgerStorage "wallet-ledger/internal/adapter/storage/badger"
	"wallet-ledger/internal/adapter/storage/memory"
	pgStorage "wallet-ledger/internal/adapter/storage/postgres"
	redisStorage "wallet-ledger/internal/adapter/storage/redis"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/ledger"
	"wallet-ledger/internal/lock"
	"wallet-ledger/internal/metrics"
	"wallet-ledger/internal/service"
	"wallet-ledger/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	cfgPath := ""
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	// Load configuration
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("backend", cfg.Ledger.Backend).
		Str("locking", cfg.Locking.Mode).
		Msg("Starting Wallet Ledger")

	ctx := context.Background()
	var checkers []ports.HealthChecker

	// Ledger backend
	var (
		backend ledger.Backend
		pool    pgStorage.Pool
	)
	switch cfg.Ledger.Backend {
	case "badger":
		b, err := badgerStorage.Open(cfg.Ledger.BadgerPath, log)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Ledger.BadgerPath).Msg("Failed to open badger ledger")
		}
		backend = b
		checkers = append(checkers, b)
	case "postgres":
		p, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		if err := pgStorage.Migrate(ctx, p); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate PostgreSQL schema")
		}
		pool = p
		backend = pgStorage.NewKVBackend(p, log)
		checkers = append(checkers, pgStorage.NewHealthCheck(p))
	default:
		b := memory.NewBackend()
		backend = b
		checkers = append(checkers, b)
	}

	contract, err := ledger.NewContract()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build ledger contract")
	}
	store := ledger.NewStore(backend, contract, log)

	// Locking and withdrawal idempotency
	var (
		rdb        *goredis.Client
		locker     ports.WalletLocker = lock.NewKeyedMutex()
		idempCache ports.IdempotencyCache
	)
	if cfg.Locking.UsesRedis() {
		rdb, err = redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		locker = redisStorage.NewWalletLocker(rdb, cfg.Locking, log)
		idempCache = redisStorage.NewIdempotencyCache(rdb)
		checkers = append(checkers, redisStorage.NewHealthCheck(rdb))
	} else if pool != nil {
		idempCache = pgStorage.NewIdempotencyRepo(pool)
	}

	// Primary wallet providers
	providers, err := provider.NewRegistryFromConfig(cfg.PrimaryWallets, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register primary wallets")
	}
	for _, p := range providers.List() {
		log.Info().Str("blockchain", p.Blockchain()).Str("primary_wallet", p.Name()).Msg("Primary wallet registered")
	}

	collector := metrics.NewCollector()

	// Initialize business services
	strategy := domain.ReconciliationStrategy(cfg.Reconciliation.Strategy)
	reconSvc := service.NewReconciliationService(store, providers, service.ReconciliationOptions{
		Strategy:         strategy,
		WarningThreshold: cfg.Reconciliation.WarningThreshold,
		StrictMode:       cfg.Reconciliation.StrictMode,
		AbsorbSurplus:    cfg.Reconciliation.AbsorbSurplus,
		Concurrency:      cfg.Reconciliation.Concurrency,
	}, collector, log)
	walletSvc := service.NewWalletService(store, providers, locker, cfg.Ledger.BaseWalletPrefix, collector, log)
	transferSvc := service.NewTransferService(store, providers, locker, reconSvc, idempCache, cfg.Withdrawal.IdempotencyTTL, collector, log)
	templateSvc := service.NewTemplateService(store, locker, reconSvc, collector, log)
	baseSvc := service.NewBaseWalletService(store, providers, locker, transferSvc, cfg.Ledger.BaseWalletPrefix, collector, log)
	reconSvc.SetBaseWalletReconciler(baseSvc)
	reportingSvc := service.NewReportingService(store)

	var scheduler *service.Scheduler
	if strategy.Scheduled() {
		scheduler = service.NewScheduler(reconSvc, cfg.Reconciliation.Frequency, log)
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start reconciliation scheduler")
		}
	}

	openAPI, err := os.ReadFile("docs/api/openapi.yaml")
	if err != nil {
		log.Warn().Err(err).Msg("OpenAPI document not found, Swagger UI will be unavailable")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletSvc:         walletSvc,
		BaseWalletSvc:     baseSvc,
		TransferSvc:       transferSvc,
		TemplateSvc:       templateSvc,
		ReconciliationSvc: reconSvc,
		ReportingSvc:      reportingSvc,
		HealthCheckers:    checkers,
		Metrics:           collector.Handler(),
		OpenAPI:           openAPI,
		Mode:              cfg.Server.Mode,
		Logger:            log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if scheduler != nil {
		select {
		case <-scheduler.Stop().Done():
		case <-shutdownCtx.Done():
			log.Warn().Msg("Reconciliation sweep still running at shutdown")
		}
	}

	closeAll(log, store, pool, rdb)
	log.Info().Msg("Server exited")
}

func closeAll(log zerolog.Logger, store *ledger.Store, pool pgStorage.Pool, rdb *goredis.Client) {
	if err := store.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close ledger backend")
	}
	if pool != nil {
		pool.Close()
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis client")
		}
	}
}
