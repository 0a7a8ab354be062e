// Package config loads the deployment configuration for a venue device.
// Settings come from an optional YAML file, with environment variables
// (optionally via a .env file) taking precedence over both the file and
// the built-in defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration for one device.
type Config struct {
	Listen  string        `yaml:"listen"`
	Storage StorageConfig `yaml:"storage"`
	Sync    SyncConfig    `yaml:"sync"`
	IDMode  string        `yaml:"id_mode"`
	Org     OrgConfig     `yaml:"org"`
}

// StorageConfig selects where the local snapshot lives.
type StorageConfig struct {
	Driver string `yaml:"driver"` // "file" or "sqlite"
	Path   string `yaml:"path"`
}

// SyncConfig configures the background sync worker. An empty APIBase
// disables synchronization entirely.
type SyncConfig struct {
	APIBase         string `yaml:"api_base"`
	IntervalSeconds int    `yaml:"interval_seconds"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

// OrgConfig is the venue identity printed on receipts and reports.
type OrgConfig struct {
	Name     string `yaml:"name"`
	Subtitle string `yaml:"subtitle"`
	Footer   string `yaml:"footer"`
}

// Interval returns the sync interval as a duration.
func (s SyncConfig) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

// Timeout returns the per-attempt timeout as a duration.
func (s SyncConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	return &Config{
		Listen: ":8080",
		Storage: StorageConfig{
			Driver: "file",
			Path:   "kassa.json",
		},
		Sync: SyncConfig{
			IntervalSeconds: 10,
			TimeoutSeconds:  5,
		},
		IDMode: "uuid",
		Org: OrgConfig{
			Name:   "Касса",
			Footer: "Спасибо за посещение!",
		},
	}
}

// Load reads the configuration. path may be empty, in which case only
// defaults and environment variables apply. A missing file at a non-empty
// path is an error; a missing .env file is not.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Listen = getEnv("KASSA_LISTEN", cfg.Listen)
	cfg.Storage.Driver = getEnv("KASSA_STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.Path = getEnv("KASSA_STORAGE_PATH", cfg.Storage.Path)
	cfg.Sync.APIBase = getEnv("KASSA_SYNC_API_BASE", cfg.Sync.APIBase)
	cfg.Sync.IntervalSeconds = getEnvInt("KASSA_SYNC_INTERVAL_SECONDS", cfg.Sync.IntervalSeconds)
	cfg.Sync.TimeoutSeconds = getEnvInt("KASSA_SYNC_TIMEOUT_SECONDS", cfg.Sync.TimeoutSeconds)
	cfg.IDMode = getEnv("KASSA_ID_MODE", cfg.IDMode)
	cfg.Org.Name = getEnv("KASSA_ORG_NAME", cfg.Org.Name)
	cfg.Org.Subtitle = getEnv("KASSA_ORG_SUBTITLE", cfg.Org.Subtitle)
	cfg.Org.Footer = getEnv("KASSA_ORG_FOOTER", cfg.Org.Footer)
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "file", "sqlite":
	default:
		return fmt.Errorf("unknown storage driver %q (want file or sqlite)", c.Storage.Driver)
	}
	switch c.IDMode {
	case "uuid", "sequential":
	default:
		return fmt.Errorf("unknown id mode %q (want uuid or sequential)", c.IDMode)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path must not be empty")
	}
	if c.Sync.IntervalSeconds <= 0 {
		return fmt.Errorf("sync interval must be positive, got %d", c.Sync.IntervalSeconds)
	}
	if c.Sync.TimeoutSeconds <= 0 {
		return fmt.Errorf("sync timeout must be positive, got %d", c.Sync.TimeoutSeconds)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
