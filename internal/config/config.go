// Package config holds the storefront configuration, loaded from the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/obafemitayor/user-snack/pkg/config"
)

// Storage backends for the local state store.
const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

// Config is the full application configuration.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// APIBaseURL points at the ordering backend.
	APIBaseURL string `env:"PIZZERIA_API_URL" envDefault:"http://localhost:8000"`

	// StateDir is where the file backend keeps the cart snapshot and the
	// session token. Empty means ~/.pizzeria.
	StateDir       string `env:"PIZZERIA_STATE_DIR"`
	StorageBackend string `env:"PIZZERIA_STORAGE" envDefault:"file"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// DemoUserID is the user the demo token endpoint mints a session for.
	DemoUserID string `env:"PIZZERIA_DEMO_USER" envDefault:"demo-user-123"`

	// PageSize is the default page size for menu and order listings.
	PageSize int `env:"PIZZERIA_PAGE_SIZE" envDefault:"10"`

	// CircuitBreakerEnabled guards read calls to the backend.
	CircuitBreakerEnabled bool `env:"PIZZERIA_CIRCUIT_BREAKER" envDefault:"true"`

	// AdminHTTPPort serves the admin order console and its metrics.
	AdminHTTPPort  int      `env:"ADMIN_HTTP_PORT" envDefault:"8090"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.StateDir = filepath.Join(home, ".pizzeria")
	}

	if cfg.StorageBackend != StorageFile && cfg.StorageBackend != StorageRedis {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("page size must be positive, got %d", cfg.PageSize)
	}
	return cfg, nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
