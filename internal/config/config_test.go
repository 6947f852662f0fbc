package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               5000,
			WriteTimeout:       30 * time.Second,
			ReadTimeout:        30 * time.Second,
			IdleTimeout:        2 * time.Minute,
			AllowedOrigins:     []string{"http://localhost:3000"},
			RateLimitPerSecond: 10,
			RateLimitBurst:     20,
		},
		Db: DbConfig{
			Driver:             DbDriverMongo,
			Username:           "test",
			Password:           "test",
			Address:            "mongodb://localhost:27017",
			DbName:             "test",
			MaxPaginationLimit: 100,
		},
		Queue: QueueConfig{
			Enabled:       true,
			QueueUser:     "test",
			QueuePassword: "test",
			Url:           "localhost:5672",
			Exchange:      "wrapsell.ledger",
			MaxRetryTimes: 3,
			RetryInterval: time.Second,
		},
		Poller: PollerConfig{
			StatsPollingInterval: time.Minute,
		},
		Metrics: MetricsConfig{
			Host: "0.0.0.0",
			Port: 2112,
		},
		LedgerClient: &LedgerClientConfig{
			BaseURL:       "http://localhost:5000",
			Timeout:       5 * time.Second,
			MaxRetryTimes: 3,
			RetryInterval: time.Second,
		},
	}
}

func TestConfig_OptionalLedgerClient(t *testing.T) {
	cfg := validConfig()

	err := cfg.Validate()
	require.NoError(t, err)
	assert.NotNil(t, cfg.LedgerClient)

	cfg.LedgerClient = nil
	err = cfg.Validate()
	require.NoError(t, err)
	assert.Nil(t, cfg.LedgerClient)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg *Config)
		contains string
	}{
		{"server port", func(cfg *Config) { cfg.Server.Port = 80 }, "server: port"},
		{"rate burst", func(cfg *Config) { cfg.Server.RateLimitBurst = 1 }, "rate-limit-burst"},
		{"db driver", func(cfg *Config) { cfg.Db.Driver = "sqlite" }, "unknown driver"},
		{"db password", func(cfg *Config) { cfg.Db.Password = "" }, "missing db password"},
		{"db scheme", func(cfg *Config) { cfg.Db.Address = "http://localhost" }, "invalid db address scheme"},
		{"queue url", func(cfg *Config) { cfg.Queue.Url = "" }, "missing queue url"},
		{"metrics host", func(cfg *Config) { cfg.Metrics.Host = "localhost" }, "invalid metrics server host"},
		{"client url", func(cfg *Config) { cfg.LedgerClient.BaseURL = "" }, "base-url must be set"},
		{"price client retries", func(cfg *Config) {
			cfg.PriceClient = &PriceClientConfig{BaseURL: "https://prices.test", Timeout: time.Second}
		}, "price-client: max-retry-times"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	t.Run("memory driver needs no credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.Db = DbConfig{Driver: DbDriverMemory, MaxPaginationLimit: 10}
		require.NoError(t, cfg.Validate())
	})
	t.Run("price client user agent defaults", func(t *testing.T) {
		cfg := validConfig()
		cfg.PriceClient = &PriceClientConfig{
			BaseURL:       "https://prices.test",
			Timeout:       time.Second,
			MaxRetryTimes: 1,
			RetryInterval: time.Millisecond,
		}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, defaultPriceClientUserAgent, cfg.PriceClient.UserAgent)
	})
	t.Run("disabled queue needs no credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.Queue = QueueConfig{}
		require.NoError(t, cfg.Validate())
	})
}

func TestNew(t *testing.T) {
	const content = `
server:
  port: 8080
db:
  driver: mongo
  username: user
  password: from-file
  db-name: wrapsell
  address: mongodb://localhost:27017
ledger-client:
  base-url: http://localhost:8080
  timeout: 5s
  max-retry-times: 2
  retry-interval: 100ms
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("WRAPSELL_DB_PASSWORD", "from-env")

	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, defaultServerHost, cfg.Server.Host)
	assert.Equal(t, defaultAllowedOrigins, cfg.Server.AllowedOrigins)
	assert.Equal(t, "from-env", cfg.Db.Password)
	assert.Equal(t, int64(defaultMaxPaginationLimit), cfg.Db.MaxPaginationLimit)
	assert.False(t, cfg.Queue.Enabled)
	assert.Equal(t, defaultStatsPollingInterval, cfg.Poller.StatsPollingInterval)
	require.NotNil(t, cfg.LedgerClient)
	assert.Equal(t, 100*time.Millisecond, cfg.LedgerClient.RetryInterval)

	t.Run("missing file", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)
	})
}
