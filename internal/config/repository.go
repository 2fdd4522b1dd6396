package config

import (
	"fmt"
	"os"

	"opdash/internal/repository"
	"opdash/internal/repository/redis"
	"opdash/internal/repository/sqlite"
)

// CreateGateway creates the storage gateway selected by the configuration
func CreateGateway(config *Config) (repository.Gateway, error) {
	switch config.Storage.Backend {
	case BackendRedis:
		gw, err := redis.Dial(config.Storage.RedisAddr, config.Storage.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return gw, nil
	default:
		dbPath := config.GetDatabasePath()
		if dbPath != ":memory:" {
			if err := os.MkdirAll(config.Storage.Dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}

		gw, err := sqlite.New(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return gw, nil
	}
}

// CreateTestGateway creates an in-memory sqlite gateway for testing
func CreateTestGateway() (repository.Gateway, error) {
	gw, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return gw, nil
}
