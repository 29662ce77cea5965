package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv                string
	StateDir              string
	CartStateKey          string
	WishlistStateKey      string
	FreeShippingThreshold int64
	FlatShippingRate      int64
	ShareBaseURL          string
	CatalogCacheTTL       time.Duration
	LogFormat             string
	LogLevel              string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:                valueOrDefault(k.String("APP_ENV"), "development"),
		StateDir:              strings.TrimSpace(k.String("STATE_DIR")),
		CartStateKey:          valueOrDefault(k.String("CART_STATE_KEY"), "cart"),
		WishlistStateKey:      valueOrDefault(k.String("WISHLIST_STATE_KEY"), "wishlist"),
		FreeShippingThreshold: parseMoney(k.String("FREE_SHIPPING_THRESHOLD"), 100_00),
		FlatShippingRate:      parseMoney(k.String("FLAT_SHIPPING_RATE"), 10_00),
		ShareBaseURL:          valueOrDefault(k.String("SHARE_BASE_URL"), "https://toko.example"),
		CatalogCacheTTL:       parseDuration(k.String("CATALOG_CACHE_TTL"), "5m"),
		LogFormat:             valueOrDefault(k.String("OBS_LOG_FORMAT"), "json"),
		LogLevel:              valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
	}

	if cfg.StateDir == "" {
		return nil, errors.New("STATE_DIR is required")
	}
	if cfg.CartStateKey == cfg.WishlistStateKey {
		return nil, errors.New("CART_STATE_KEY and WISHLIST_STATE_KEY must differ")
	}

	return cfg, nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseMoney(value string, fallback int64) int64 {
	base := strings.TrimSpace(value)
	if base == "" {
		return fallback
	}
	v, err := strconv.ParseInt(base, 10, 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
