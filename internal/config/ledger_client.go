package config

import (
	"errors"
	"net/url"
	"time"
)

type LedgerClientConfig struct {
	// BaseURL of a running wrapsell-ledger API, e.g. http://localhost:5000
	BaseURL       string        `mapstructure:"base-url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *LedgerClientConfig) Validate() error {
	if cfg.BaseURL == "" {
		return errors.New("base-url must be set")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return errors.New("base-url is not a valid url")
	}
	if cfg.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if cfg.MaxRetryTimes == 0 {
		return errors.New("max-retry-times must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return errors.New("retry-interval must be positive")
	}

	return nil
}
