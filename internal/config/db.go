package config

import (
	"errors"
	"fmt"
	"net/url"
)

const (
	DbDriverMongo  = "mongo"
	DbDriverMemory = "memory"

	defaultMaxPaginationLimit = 100
)

type DbConfig struct {
	// Driver selects the storage backend: "mongo" or "memory" (process local, for development)
	Driver             string `mapstructure:"driver"`
	Username           string `mapstructure:"username"`
	Password           string `mapstructure:"password"`
	DbName             string `mapstructure:"db-name"`
	Address            string `mapstructure:"address"`
	MaxPaginationLimit int64  `mapstructure:"max-pagination-limit"`
}

func (cfg *DbConfig) Validate() error {
	if cfg.MaxPaginationLimit <= 0 {
		return errors.New("max-pagination-limit must be positive")
	}

	switch cfg.Driver {
	case DbDriverMemory:
		return nil
	case DbDriverMongo:
	default:
		return fmt.Errorf("unknown driver %q", cfg.Driver)
	}

	if cfg.Username == "" {
		return errors.New("missing db username")
	}
	if cfg.Password == "" {
		return errors.New("missing db password")
	}
	if cfg.DbName == "" {
		return errors.New("missing db name")
	}
	if cfg.Address == "" {
		return errors.New("missing db address")
	}

	u, err := url.Parse(cfg.Address)
	if err != nil {
		return fmt.Errorf("invalid db address: %w", err)
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return fmt.Errorf("invalid db address scheme %q", u.Scheme)
	}

	return nil
}
