package app

import (
	"errors"
	"fmt"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	StoreDriver   string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SeedFile      string

	LogLevel string
	LogFile  string

	NoColor    bool
	RandomSeed int64
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres store", ErrInvalidConfig)
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: REDIS_ADDR is required for the redis store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.StoreDriver)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("%w: negative redis db", ErrInvalidConfig)
	}
	return nil
}
