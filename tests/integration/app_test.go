package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-ledger/config"
	httpHandler "wallet-ledger/internal/adapter/http/handler"
	"wallet-ledger/internal/adapter/provider"
	badgerStorage "wallet-ledger/internal/adapter/storage/badger"
	"wallet-ledger/internal/adapter/storage/memory"
	redisStorage "wallet-ledger/internal/adapter/storage/redis"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/ledger"
	"wallet-ledger/internal/metrics"
	"wallet-ledger/internal/service"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	hotAddress  = "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq"
	destAddress = "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"
)

// testApp wires the real ledger store, services, router and Redis stores
// (miniredis) behind an httptest server.
type testApp struct {
	server    *httptest.Server
	redis     *miniredis.Miniredis
	store     *ledger.Store
	providers *provider.Registry
}

type appOptions struct {
	badger        bool
	strict        bool
	absorbSurplus bool
}

func newTestApp(t *testing.T, opts appOptions) *testApp {
	t.Helper()
	log := zerolog.Nop()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	var backend ledger.Backend
	var checkers []ports.HealthChecker
	if opts.badger {
		b, err := badgerStorage.OpenInMemory(log)
		require.NoError(t, err)
		backend = b
		checkers = append(checkers, b)
	} else {
		b := memory.NewBackend()
		backend = b
		checkers = append(checkers, b)
	}
	checkers = append(checkers, redisStorage.NewHealthCheck(rdb))

	contract, err := ledger.NewContract()
	require.NoError(t, err)
	store := ledger.NewStore(backend, contract, log)

	providers, err := provider.NewRegistryFromConfig([]config.PrimaryWalletConfig{
		{Blockchain: "bitcoin", Name: "hot", Address: hotAddress, Network: "mainnet",
			Balance: decimal.RequireFromString("1.5"), Fee: decimal.RequireFromString("0.0001")},
		{Blockchain: "ethereum", Name: "main", Address: "0x52908400098527886E0F7030069857D2E4169EE7",
			Balance: decimal.RequireFromString("10"), Fee: decimal.RequireFromString("0.002")},
	}, log)
	require.NoError(t, err)

	locker := redisStorage.NewWalletLocker(rdb, config.LockingConfig{
		Mode:          "redis",
		TTL:           5 * time.Second,
		RetryInterval: 5 * time.Millisecond,
		WaitTimeout:   5 * time.Second,
	}, log)
	idempCache := redisStorage.NewIdempotencyCache(rdb)
	collector := metrics.NewCollector()

	reconSvc := service.NewReconciliationService(store, providers, service.ReconciliationOptions{
		Strategy:         domain.StrategyAfterTransaction,
		WarningThreshold: decimal.RequireFromString("0.00001"),
		StrictMode:       opts.strict,
		AbsorbSurplus:    opts.absorbSurplus,
		Concurrency:      2,
	}, collector, log)
	walletSvc := service.NewWalletService(store, providers, locker, "base_", collector, log)
	transferSvc := service.NewTransferService(store, providers, locker, reconSvc, idempCache, time.Hour, collector, log)
	templateSvc := service.NewTemplateService(store, locker, reconSvc, collector, log)
	baseSvc := service.NewBaseWalletService(store, providers, locker, transferSvc, "base_", collector, log)
	reconSvc.SetBaseWalletReconciler(baseSvc)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletSvc:         walletSvc,
		BaseWalletSvc:     baseSvc,
		TransferSvc:       transferSvc,
		TemplateSvc:       templateSvc,
		ReconciliationSvc: reconSvc,
		ReportingSvc:      service.NewReportingService(store),
		HealthCheckers:    checkers,
		Metrics:           collector.Handler(),
		Mode:              "test",
		Logger:            log,
	})

	app := &testApp{
		server:    httptest.NewServer(router),
		redis:     mr,
		store:     store,
		providers: providers,
	}
	t.Cleanup(app.close)
	return app
}

func (a *testApp) close() {
	a.server.Close()
	_ = a.store.Close()
	a.redis.Close()
}

// setOnChain simulates a deposit or an unrecorded spend on a primary wallet.
func (a *testApp) setOnChain(t *testing.T, blockchain, name, balance string) {
	t.Helper()
	p, ok := a.providers.Get(blockchain, name)
	require.True(t, ok)
	static, ok := p.(*provider.StaticProvider)
	require.True(t, ok)
	static.SetBalance(decimal.RequireFromString(balance))
}

type envelope struct {
	Data      json.RawMessage   `json:"data"`
	ErrorCode string            `json:"error_code"`
	Details   map[string]string `json:"details"`
}

func (a *testApp) call(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

type walletBody struct {
	ID           string `json:"id"`
	Balance      string `json:"balance"`
	IsBaseWallet bool   `json:"is_base_wallet"`
}

func (a *testApp) createWallet(t *testing.T, blockchain, primary, id, balance string) {
	t.Helper()
	status, env := a.call(t, http.MethodPost, "/api/v1/wallets", map[string]string{
		"id": id, "blockchain": blockchain, "primary_wallet_name": primary,
	})
	require.Equal(t, http.StatusCreated, status, env.ErrorCode)
	if balance != "" {
		status, env = a.call(t, http.MethodPut, "/api/v1/wallets/"+id+"/balance", map[string]string{"balance": balance})
		require.Equal(t, http.StatusOK, status, env.ErrorCode)
	}
}

func (a *testApp) balance(t *testing.T, id string) string {
	t.Helper()
	status, env := a.call(t, http.MethodGet, "/api/v1/wallets/"+id, nil)
	require.Equal(t, http.StatusOK, status, env.ErrorCode)
	return decode[walletBody](t, env).Balance
}
