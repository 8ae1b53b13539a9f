// Package config loads storefront settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"moms-kitchen/storefront/storage"
)

// Config holds all storefront configuration.
type Config struct {
	Temporal   TemporalConfig   `yaml:"temporal"`
	Cart       CartConfig       `yaml:"cart"`
	Logging    LoggingConfig    `yaml:"logging"`
	Connection ConnectionConfig `yaml:"connection"`
}

// TemporalConfig locates the backend.
type TemporalConfig struct {
	HostPort   string `yaml:"host_port"`
	Namespace  string `yaml:"namespace"`
	TaskQueue  string `yaml:"task_queue"`
	WorkflowID string `yaml:"backend_workflow_id"`
}

// CartConfig selects where the cart snapshot lives.
type CartConfig struct {
	Storage string `yaml:"storage"` // file, sqlite, memory
	Path    string `yaml:"path"`
	Key     string `yaml:"key"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`
}

// ConnectionConfig tunes backend calls and the connectivity banner.
type ConnectionConfig struct {
	RequestTimeout time.Duration `yaml:"request_timeout"`
	HealthInterval time.Duration `yaml:"health_interval"`
	BannerDebounce time.Duration `yaml:"banner_debounce"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	dataDir := ".moms-kitchen"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".moms-kitchen")
	}

	return &Config{
		Temporal: TemporalConfig{
			HostPort:   "localhost:7233",
			Namespace:  "default",
			TaskQueue:  "kitchen-task-queue",
			WorkflowID: "moms-kitchen-backend",
		},
		Cart: CartConfig{
			Storage: storage.KindFile,
			Path:    dataDir,
			Key:     "moms-kitchen-cart-v1",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Connection: ConnectionConfig{
			RequestTimeout: 10 * time.Second,
			HealthInterval: 10 * time.Second,
			BannerDebounce: 2 * time.Second,
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnvOverrides() {
	c.Temporal.HostPort = getEnv("TEMPORAL_HOST", c.Temporal.HostPort)
	c.Temporal.Namespace = getEnv("TEMPORAL_NAMESPACE", c.Temporal.Namespace)
	c.Temporal.TaskQueue = getEnv("KITCHEN_TASK_QUEUE", c.Temporal.TaskQueue)
	c.Temporal.WorkflowID = getEnv("KITCHEN_WORKFLOW_ID", c.Temporal.WorkflowID)
	c.Cart.Storage = getEnv("CART_STORAGE", c.Cart.Storage)
	c.Cart.Path = getEnv("CART_PATH", c.Cart.Path)
	c.Cart.Key = getEnv("CART_KEY", c.Cart.Key)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
	c.Logging.File = getEnv("LOG_FILE", c.Logging.File)
}

// Validate checks for settings the storefront cannot run with.
func (c *Config) Validate() error {
	if c.Temporal.HostPort == "" {
		return errors.New("temporal.host_port is required")
	}
	if c.Temporal.WorkflowID == "" {
		return errors.New("temporal.backend_workflow_id is required")
	}
	switch c.Cart.Storage {
	case storage.KindFile, storage.KindSQLite, storage.KindMemory:
	default:
		return fmt.Errorf("unknown cart.storage %q", c.Cart.Storage)
	}
	if c.Connection.RequestTimeout <= 0 || c.Connection.HealthInterval <= 0 || c.Connection.BannerDebounce < 0 {
		return errors.New("connection durations must be positive")
	}
	return nil
}

// CartLocation returns the path handed to the storage slot for the
// configured kind.
func (c *Config) CartLocation() string {
	if c.Cart.Storage == storage.KindSQLite {
		return filepath.Join(c.Cart.Path, "cart.db")
	}
	return c.Cart.Path
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
