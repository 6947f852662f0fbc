package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "WRAPSELL"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Db      DbConfig      `mapstructure:"db"`
	Queue   QueueConfig   `mapstructure:"queue"`
	Poller  PollerConfig  `mapstructure:"poller"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	// LedgerClient is only needed by commands talking to a running server
	LedgerClient *LedgerClientConfig `mapstructure:"ledger-client"`
	// PriceClient enables market price lookups for cards, disabled when unset
	PriceClient *PriceClientConfig `mapstructure:"price-client"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := cfg.Db.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if err := cfg.Queue.Validate(); err != nil {
		return fmt.Errorf("queue: %w", err)
	}
	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("poller: %w", err)
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if cfg.LedgerClient != nil {
		if err := cfg.LedgerClient.Validate(); err != nil {
			return fmt.Errorf("ledger-client: %w", err)
		}
	}
	if cfg.PriceClient != nil {
		if cfg.PriceClient.UserAgent == "" {
			cfg.PriceClient.UserAgent = defaultPriceClientUserAgent
		}
		if err := cfg.PriceClient.Validate(); err != nil {
			return fmt.Errorf("price-client: %w", err)
		}
	}

	return nil
}

// New returns a fully parsed Config object from a given file path.
// Values can be overridden with WRAPSELL_ prefixed environment variables,
// e.g. WRAPSELL_DB_PASSWORD overrides db.password.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", defaultServerHost)
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.write-timeout", defaultServerTimeout)
	v.SetDefault("server.read-timeout", defaultServerTimeout)
	v.SetDefault("server.idle-timeout", defaultServerIdleTimeout)
	v.SetDefault("server.allowed-origins", defaultAllowedOrigins)
	v.SetDefault("server.rate-limit-per-second", defaultRateLimitPerSecond)
	v.SetDefault("server.rate-limit-burst", defaultRateLimitBurst)
	v.SetDefault("db.driver", DbDriverMongo)
	v.SetDefault("db.max-pagination-limit", defaultMaxPaginationLimit)
	v.SetDefault("queue.exchange", defaultQueueExchange)
	v.SetDefault("queue.max-retry-times", defaultQueueMaxRetryTimes)
	v.SetDefault("queue.retry-interval", defaultQueueRetryInterval)
	v.SetDefault("poller.stats-polling-interval", defaultStatsPollingInterval)
	v.SetDefault("metrics.host", defaultMetricsHost)
	v.SetDefault("metrics.port", defaultMetricsPort)
}
