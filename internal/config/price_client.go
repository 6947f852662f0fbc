package config

import (
	"errors"
	"net/url"
	"time"
)

const (
	defaultPriceClientBaseURL   = "https://www.pricecharting.com"
	defaultPriceClientUserAgent = "Mozilla/5.0 (compatible; wrapsell-ledger)"
)

// PriceClientConfig points at the card market price site used to value
// cards registered by edition, name and number.
type PriceClientConfig struct {
	BaseURL       string        `mapstructure:"base-url"`
	UserAgent     string        `mapstructure:"user-agent"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *PriceClientConfig) Validate() error {
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
