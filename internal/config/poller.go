package config

import (
	"time"
)

const defaultStatsPollingInterval = 5 * time.Minute

type PollerConfig struct {
	StatsPollingInterval time.Duration `mapstructure:"stats-polling-interval"`
}

// Validate falls back to the default interval when none is configured.
func (cfg *PollerConfig) Validate() error {
	if cfg.StatsPollingInterval <= 0 {
		cfg.StatsPollingInterval = defaultStatsPollingInterval
	}

	return nil
}
