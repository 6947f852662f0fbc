package config

import (
	"errors"
	"time"
)

const (
	defaultServerHost         = "0.0.0.0"
	defaultServerPort         = 5000
	defaultServerTimeout      = 30 * time.Second
	defaultServerIdleTimeout  = 120 * time.Second
	defaultRateLimitPerSecond = 50
	defaultRateLimitBurst     = 100
)

var defaultAllowedOrigins = []string{"http://localhost:3000", "https://localhost:3000"}

type ServerConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	WriteTimeout       time.Duration `mapstructure:"write-timeout"`
	ReadTimeout        time.Duration `mapstructure:"read-timeout"`
	IdleTimeout        time.Duration `mapstructure:"idle-timeout"`
	AllowedOrigins     []string      `mapstructure:"allowed-origins"`
	RateLimitPerSecond int           `mapstructure:"rate-limit-per-second"`
	RateLimitBurst     int           `mapstructure:"rate-limit-burst"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Host == "" {
		return errors.New("host cannot be empty")
	}
	if cfg.Port < 1024 || cfg.Port > 65535 {
		return errors.New("port must be between 1024 and 65535")
	}
	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if cfg.RateLimitPerSecond <= 0 {
		return errors.New("rate-limit-per-second must be positive")
	}
	if cfg.RateLimitBurst < cfg.RateLimitPerSecond {
		return errors.New("rate-limit-burst must not be lower than rate-limit-per-second")
	}

	return nil
}
