package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	envFiles []string
}

// NewLoader creates a new configuration loader reading ./.env when present
func NewLoader() *Loader {
	return NewLoaderWithEnvFiles(".env")
}

// NewLoaderWithEnvFiles creates a loader that reads the given dotenv files
func NewLoaderWithEnvFiles(files ...string) *Loader {
	return &Loader{
		config:   NewConfig(),
		envFiles: files,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Fill unset environment variables from dotenv files
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadEnvFiles(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadEnvFiles never overrides variables already present in the process
// environment. Missing files are skipped.
func (l *Loader) loadEnvFiles() error {
	existing := make([]string, 0, len(l.envFiles))
	for _, file := range l.envFiles {
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		existing = append(existing, file)
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		ApplyOverrides(config, overrides)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	StorageBackend *string
	DBDir          *string
	DBFilename     *string
	RedisAddr      *string
	StorageTimeout *time.Duration

	// Server overrides
	ServerAddr *string

	// Display overrides
	Theme *string

	// Application overrides
	Timeout   *time.Duration
	Verbose   *bool
	AssumeYes *bool
}

// ApplyOverrides applies command line overrides to the configuration
func ApplyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.StorageBackend != nil {
		config.Storage.Backend = *overrides.StorageBackend
	}
	if overrides.DBDir != nil {
		config.Storage.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Storage.Filename = *overrides.DBFilename
	}
	if overrides.RedisAddr != nil {
		config.Storage.RedisAddr = *overrides.RedisAddr
	}
	if overrides.StorageTimeout != nil {
		config.Storage.Timeout = *overrides.StorageTimeout
	}

	if overrides.ServerAddr != nil {
		config.Server.Addr = *overrides.ServerAddr
	}

	if overrides.Theme != nil {
		config.Display.Theme = *overrides.Theme
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.AssumeYes != nil {
		config.Application.AssumeYes = *overrides.AssumeYes
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}
