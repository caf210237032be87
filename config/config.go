package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server         ServerConfig          `mapstructure:"server"`
	Ledger         LedgerConfig          `mapstructure:"ledger"`
	Database       DatabaseConfig        `mapstructure:"database"`
	Redis          RedisConfig           `mapstructure:"redis"`
	Locking        LockingConfig         `mapstructure:"locking"`
	Reconciliation ReconciliationConfig  `mapstructure:"reconciliation"`
	Withdrawal     WithdrawalConfig      `mapstructure:"withdrawal"`
	PrimaryWallets []PrimaryWalletConfig `mapstructure:"primary_wallets"`
	Log            LogConfig             `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// LedgerConfig selects the transactional KV backend behind the ledger store.
type LedgerConfig struct {
	Backend          string `mapstructure:"backend"` // memory, badger, postgres
	BadgerPath       string `mapstructure:"badger_path"`
	BaseWalletPrefix string `mapstructure:"base_wallet_prefix"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LockingConfig controls per-wallet serialization of mutating operations.
type LockingConfig struct {
	Mode          string        `mapstructure:"mode"` // local, redis
	TTL           time.Duration `mapstructure:"ttl"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	WaitTimeout   time.Duration `mapstructure:"wait_timeout"`
}

// UsesRedis reports whether wallet locks and the withdrawal idempotency cache live in Redis.
func (l LockingConfig) UsesRedis() bool {
	return l.Mode == "redis"
}

type ReconciliationConfig struct {
	Strategy         string          `mapstructure:"strategy"` // after_transaction, scheduled, both
	Frequency        time.Duration   `mapstructure:"frequency"`
	WarningThreshold decimal.Decimal `mapstructure:"warning_threshold"`
	StrictMode       bool            `mapstructure:"strict_mode"`
	AbsorbSurplus    bool            `mapstructure:"absorb_surplus"`
	Concurrency      int             `mapstructure:"concurrency"`
}

type WithdrawalConfig struct {
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

// PrimaryWalletConfig declares one on-chain wallet served by the static provider.
type PrimaryWalletConfig struct {
	Blockchain string          `mapstructure:"blockchain"`
	Name       string          `mapstructure:"name"`
	Address    string          `mapstructure:"address"`
	Network    string          `mapstructure:"network"` // mainnet, testnet3, regtest, signet, simnet
	Balance    decimal.Decimal `mapstructure:"balance"`
	Fee        decimal.Decimal `mapstructure:"fee"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: WLD_ (Wallet Ledger Daemon).
// Nested keys use underscore: WLD_LEDGER_BACKEND, WLD_RECONCILIATION_STRICT_MODE, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("ledger.backend", "memory")
	v.SetDefault("ledger.badger_path", "./data/ledger")
	v.SetDefault("ledger.base_wallet_prefix", "base_")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "wallet_ledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("locking.mode", "local")
	v.SetDefault("locking.ttl", "30s")
	v.SetDefault("locking.retry_interval", "50ms")
	v.SetDefault("locking.wait_timeout", "10s")
	v.SetDefault("reconciliation.strategy", "both")
	v.SetDefault("reconciliation.frequency", "5m")
	v.SetDefault("reconciliation.warning_threshold", "0.00001")
	v.SetDefault("reconciliation.strict_mode", false)
	v.SetDefault("reconciliation.absorb_surplus", false)
	v.SetDefault("reconciliation.concurrency", 4)
	v.SetDefault("withdrawal.idempotency_ttl", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: WLD_LEDGER_BACKEND -> ledger.backend
	v.SetEnvPrefix("WLD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		decimalHook(),
	))); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Ledger.Backend {
	case "memory", "badger", "postgres":
	default:
		return fmt.Errorf("invalid ledger.backend %q", c.Ledger.Backend)
	}
	switch c.Locking.Mode {
	case "local", "redis":
	default:
		return fmt.Errorf("invalid locking.mode %q", c.Locking.Mode)
	}
	switch c.Reconciliation.Strategy {
	case "after_transaction", "scheduled", "both":
	default:
		return fmt.Errorf("invalid reconciliation.strategy %q", c.Reconciliation.Strategy)
	}
	if c.Reconciliation.WarningThreshold.IsNegative() {
		return fmt.Errorf("reconciliation.warning_threshold must not be negative")
	}
	if c.Ledger.BaseWalletPrefix == "" {
		return fmt.Errorf("ledger.base_wallet_prefix must not be empty")
	}
	return nil
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// decimalHook decodes YAML numbers and env strings into decimal.Decimal.
func decimalHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != decimalType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			if v == "" {
				return decimal.Zero, nil
			}
			return decimal.NewFromString(v)
		case float64:
			return decimal.NewFromFloat(v), nil
		case float32:
			return decimal.NewFromFloat32(v), nil
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case int64:
			return decimal.NewFromInt(v), nil
		}
		return data, nil
	}
}
