package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults used when the config file or a key is absent.
const (
	DefaultCatalogURL  = "https://www.exercisedb.dev"
	DefaultThrottleMS  = 300
	DefaultShareURL    = "https://webfit.local/workout.html"
	defaultStoreFile   = "webfit.db"
	defaultAddressFile = "location"
)

type Config struct {
	Catalog CatalogConfig `yaml:"catalog" toml:"catalog"`
	Store   StoreConfig   `yaml:"store" toml:"store"`
	Share   ShareConfig   `yaml:"share" toml:"share"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

type CatalogConfig struct {
	BaseURL    string `yaml:"base_url" toml:"base_url"`
	ThrottleMS int    `yaml:"throttle_ms" toml:"throttle_ms"`
}

type StoreConfig struct {
	Path string `yaml:"path" toml:"path"`
}

type ShareConfig struct {
	BaseURL      string `yaml:"base_url" toml:"base_url"`
	LocationPath string `yaml:"location_path" toml:"location_path"`
}

// LogConfig controls logging. File, when set, receives a JSON copy of every
// record in addition to stderr.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

// Throttle returns the pause between sub-fetches of one group.
func (c CatalogConfig) Throttle() time.Duration {
	return time.Duration(c.ThrottleMS) * time.Millisecond
}

// SlogLevel maps the configured level name to a slog level.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the built-in configuration. Local state lives under the
// user config directory.
func Default() *Config {
	dir := "."
	if base, err := os.UserConfigDir(); err == nil {
		dir = filepath.Join(base, "webfit")
	}
	return &Config{
		Catalog: CatalogConfig{BaseURL: DefaultCatalogURL, ThrottleMS: DefaultThrottleMS},
		Store:   StoreConfig{Path: filepath.Join(dir, defaultStoreFile)},
		Share: ShareConfig{
			BaseURL:      DefaultShareURL,
			LocationPath: filepath.Join(dir, defaultAddressFile),
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load starts from Default, overlays the file at path (skipped when path is
// empty), then applies environment variable overrides. Files ending in
// .toml are read as TOML, anything else as YAML.
// Env vars use the prefix WEBFIT_ and underscore-separated paths:
//
//	WEBFIT_CATALOG_BASE_URL, WEBFIT_CATALOG_THROTTLE_MS,
//	WEBFIT_STORE_PATH, WEBFIT_SHARE_BASE_URL,
//	WEBFIT_SHARE_LOCATION_PATH, WEBFIT_LOG_LEVEL, WEBFIT_LOG_FILE
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WEBFIT_CATALOG_BASE_URL"); v != "" {
		cfg.Catalog.BaseURL = v
	}
	if v := os.Getenv("WEBFIT_CATALOG_THROTTLE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.ThrottleMS = ms
		}
	}
	if v := os.Getenv("WEBFIT_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("WEBFIT_SHARE_BASE_URL"); v != "" {
		cfg.Share.BaseURL = v
	}
	if v := os.Getenv("WEBFIT_SHARE_LOCATION_PATH"); v != "" {
		cfg.Share.LocationPath = v
	}
	if v := os.Getenv("WEBFIT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WEBFIT_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func (c *Config) validate() error {
	if err := validURL("catalog.base_url", c.Catalog.BaseURL); err != nil {
		return err
	}
	if c.Catalog.ThrottleMS < 0 {
		return fmt.Errorf("catalog.throttle_ms must not be negative")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if err := validURL("share.base_url", c.Share.BaseURL); err != nil {
		return err
	}
	if c.Share.LocationPath == "" {
		return fmt.Errorf("share.location_path is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

func validURL(key, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s %q is not an absolute URL", key, raw)
	}
	return nil
}
