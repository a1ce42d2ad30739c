// Package config loads service settings from the environment.
//
// Variables are read under the USERS_ prefix, for example USERS_PORT=9000,
// USERS_STORE=sqlite or USERS_LOGLEVEL=debug. An empty USERS_DATABASEURL
// leaves the choice of database to the sqlite package default.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/asecurityteam/settings/v2"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds the runtime settings of the service.
type Config struct {
	Port        int     `description:"TCP port the HTTP server listens on."`
	Store       string  `description:"User store backend: memory or sqlite."`
	DatabaseURL string  `description:"SQLite DSN used when Store is sqlite. Empty selects a shared in-memory database."`
	LogLevel    string  `description:"Minimum log level: debug, info, warn or error."`
	CreateRate  float64 `description:"Sustained POST /users requests per second allowed per client. Zero disables rate limiting."`
	CreateBurst float64 `description:"Burst size for POST /users per client."`
	TrustProxy  bool    `description:"Take client addresses from X-Forwarded-For and X-Real-IP. Enable only behind a proxy that sets them."`
}

// Name is the settings group name and the environment prefix.
func (*Config) Name() string {
	return "users"
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Port:        8000,
		Store:       StoreMemory,
		LogLevel:    "info",
		CreateRate:  5,
		CreateBurst: 10,
	}
}

// Component builds a validated Config from a settings source.
type Component struct{}

// Settings returns the defaults that the source overrides.
func (*Component) Settings() *Config {
	return Default()
}

// New validates the loaded settings.
func (*Component) New(_ context.Context, c *Config) (*Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads settings from src over the defaults.
func Load(ctx context.Context, src settings.Source) (*Config, error) {
	cfg := new(Config)
	if err := settings.NewComponent(ctx, src, &Component{}, cfg); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return cfg, nil
}

// LoadEnv reads settings from env, as returned by os.Environ.
func LoadEnv(ctx context.Context, env []string) (*Config, error) {
	src, err := settings.NewEnvSource(env)
	if err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return Load(ctx, src)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("store must be %q or %q, got %q", StoreMemory, StoreSQLite, c.Store)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.CreateRate < 0 || c.CreateBurst < 0 {
		return fmt.Errorf("rate limit settings must not be negative")
	}
	if c.CreateRate > 0 && c.CreateBurst < 1 {
		return fmt.Errorf("createburst must be at least 1 when rate limiting is enabled")
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
