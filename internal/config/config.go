package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"opdash/internal/domain"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Theme fallback values
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config holds all configuration options for the dashboard
type Config struct {
	Storage       StorageConfig
	Validation    ValidationConfig
	Notifications NotificationConfig
	Server        ServerConfig
	Display       DisplayConfig
	Application   ApplicationConfig
}

// StorageConfig holds persistence-related configuration
type StorageConfig struct {
	Backend     string        `env:"OPDASH_STORAGE_BACKEND"`
	Dir         string        `env:"OPDASH_DB_DIR"`
	Filename    string        `env:"OPDASH_DB_FILENAME"`
	RedisAddr   string        `env:"OPDASH_REDIS_ADDR"`
	RedisPrefix string        `env:"OPDASH_REDIS_PREFIX"`
	Timeout     time.Duration `env:"OPDASH_STORAGE_TIMEOUT"`
}

// ValidationConfig holds form validation limits
type ValidationConfig struct {
	TaskNameMaxLength int `env:"OPDASH_VALIDATION_TASK_NAME_MAX"`
}

// NotificationConfig controls the live notification list
type NotificationConfig struct {
	Limit int           `env:"OPDASH_NOTIFICATION_LIMIT"`
	TTL   time.Duration `env:"OPDASH_NOTIFICATION_TTL"`
}

// ServerConfig holds the local JSON API configuration
type ServerConfig struct {
	Addr            string        `env:"OPDASH_SERVER_ADDR"`
	ShutdownTimeout time.Duration `env:"OPDASH_SERVER_SHUTDOWN_TIMEOUT"`
}

// DisplayConfig holds display configuration
type DisplayConfig struct {
	Theme string `env:"OPDASH_THEME"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout   time.Duration `env:"OPDASH_APP_TIMEOUT"`
	Verbose   bool          `env:"OPDASH_APP_VERBOSE"`
	AssumeYes bool          `env:"OPDASH_ASSUME_YES"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Storage: StorageConfig{
			Backend:     BackendSQLite,
			Dir:         filepath.Join(homeDir, ".opdash"),
			Filename:    "opdash.db",
			RedisAddr:   "127.0.0.1:6379",
			RedisPrefix: "",
			Timeout:     5 * time.Second,
		},
		Validation: ValidationConfig{
			TaskNameMaxLength: 255,
		},
		Notifications: NotificationConfig{
			Limit: 5,
			TTL:   5 * time.Second,
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Display: DisplayConfig{
			Theme: ThemeAuto,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// GetDatabasePath returns the full path to the sqlite database file
func (c *Config) GetDatabasePath() string {
	if c.Storage.Filename == ":memory:" {
		return c.Storage.Filename
	}
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// SystemTheme resolves the theme used when no preference has been stored.
// With "auto" the terminal background advertised in COLORFGBG decides.
func (c *Config) SystemTheme() domain.Theme {
	switch c.Display.Theme {
	case ThemeLight:
		return domain.ThemeLight
	case ThemeDark:
		return domain.ThemeDark
	}
	return themeFromColorFgBg(os.Getenv("COLORFGBG"))
}

// themeFromColorFgBg reads "fg;bg" (or "fg;default;bg"). Backgrounds 0-6 and
// 8 are dark in the standard 16-color palette.
func themeFromColorFgBg(v string) domain.Theme {
	if v == "" {
		return domain.ThemeLight
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return domain.ThemeLight
	}
	if (bg >= 0 && bg <= 6) || bg == 8 {
		return domain.ThemeDark
	}
	return domain.ThemeLight
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if backend := os.Getenv("OPDASH_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if dir := os.Getenv("OPDASH_DB_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("OPDASH_DB_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if addr := os.Getenv("OPDASH_REDIS_ADDR"); addr != "" {
		c.Storage.RedisAddr = addr
	}
	if prefix := os.Getenv("OPDASH_REDIS_PREFIX"); prefix != "" {
		c.Storage.RedisPrefix = prefix
	}
	if timeout := os.Getenv("OPDASH_STORAGE_TIMEOUT"); timeout != "" {
		c.Storage.Timeout = ParseDurationWithFallback(timeout, c.Storage.Timeout)
	}

	// Validation configuration
	if maxLen := os.Getenv("OPDASH_VALIDATION_TASK_NAME_MAX"); maxLen != "" {
		c.Validation.TaskNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.TaskNameMaxLength)
	}

	// Notification configuration
	if limit := os.Getenv("OPDASH_NOTIFICATION_LIMIT"); limit != "" {
		c.Notifications.Limit = ParseIntWithFallback(limit, c.Notifications.Limit)
	}
	if ttl := os.Getenv("OPDASH_NOTIFICATION_TTL"); ttl != "" {
		c.Notifications.TTL = ParseDurationWithFallback(ttl, c.Notifications.TTL)
	}

	// Server configuration
	if addr := os.Getenv("OPDASH_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if timeout := os.Getenv("OPDASH_SERVER_SHUTDOWN_TIMEOUT"); timeout != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(timeout, c.Server.ShutdownTimeout)
	}

	// Display configuration
	if theme := os.Getenv("OPDASH_THEME"); theme != "" {
		c.Display.Theme = theme
	}

	// Application configuration
	if timeout := os.Getenv("OPDASH_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("OPDASH_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if yes := os.Getenv("OPDASH_ASSUME_YES"); yes != "" {
		c.Application.AssumeYes = ParseBoolWithFallback(yes, c.Application.AssumeYes)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.Filename == "" {
			return &ConfigError{Field: "storage.filename", Message: "database filename cannot be empty"}
		}
		if c.Storage.Dir == "" && c.Storage.Filename != ":memory:" {
			return &ConfigError{Field: "storage.dir", Message: "database directory cannot be empty"}
		}
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			return &ConfigError{Field: "storage.redis_addr", Message: "redis address cannot be empty"}
		}
	default:
		return &ConfigError{Field: "storage.backend", Message: "storage backend must be sqlite or redis"}
	}
	if c.Storage.Timeout <= 0 {
		return &ConfigError{Field: "storage.timeout", Message: "storage timeout must be positive"}
	}

	if c.Validation.TaskNameMaxLength < 1 {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be at least 1"}
	}

	if c.Notifications.Limit < 1 {
		return &ConfigError{Field: "notifications.limit", Message: "notification limit must be at least 1"}
	}
	if c.Notifications.TTL <= 0 {
		return &ConfigError{Field: "notifications.ttl", Message: "notification ttl must be positive"}
	}

	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "server address cannot be empty"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	switch c.Display.Theme {
	case ThemeAuto, ThemeLight, ThemeDark:
	default:
		return &ConfigError{Field: "display.theme", Message: "theme must be auto, light or dark"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
