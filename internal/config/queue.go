package config

import (
	"errors"
	"time"
)

const (
	defaultQueueExchange      = "wrapsell.ledger"
	defaultQueueMaxRetryTimes = 3
	defaultQueueRetryInterval = 500 * time.Millisecond
)

type QueueConfig struct {
	// Enabled switches event publishing on; disabled publisher drops events
	Enabled       bool          `mapstructure:"enabled"`
	QueueUser     string        `mapstructure:"queue-user"`
	QueuePassword string        `mapstructure:"queue-password"`
	Url           string        `mapstructure:"url"`
	Exchange      string        `mapstructure:"exchange"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *QueueConfig) Validate() error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.QueueUser == "" {
		return errors.New("missing queue user")
	}
	if cfg.QueuePassword == "" {
		return errors.New("missing queue password")
	}
	if cfg.Url == "" {
		return errors.New("missing queue url")
	}
	if cfg.Exchange == "" {
		return errors.New("missing queue exchange")
	}
	if cfg.MaxRetryTimes == 0 {
		return errors.New("max-retry-times must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return errors.New("retry-interval must be positive")
	}

	return nil
}
