package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	StoreAPI StoreAPIConfig
	Assets   AssetsConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Payment  PaymentConfig
	CORS     CORSConfig
}

// StoreAPIConfig points at the storefront REST backend.
type StoreAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AssetsConfig contains the static image routes used by the view model assembler.
type AssetsConfig struct {
	StaticBaseURL       string
	PlaceholderImageURL string
}

// RedisConfig contains Redis connection parameters.
// An empty Host disables Redis and the catalog cache stays in process.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host has been configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// CatalogConfig controls catalog caching and the source descriptors.
type CatalogConfig struct {
	CacheTTL        time.Duration
	RefreshInterval time.Duration
	SourcesFile     string
	Sources         []CatalogSource
	// MembershipIdleTTL drops wishlist/cart snapshots of shoppers not seen
	// for that long. 0 keeps them forever.
	MembershipIdleTTL time.Duration
}

// PaymentConfig contains the payment gateway key secret used to verify
// client-side payment confirmations. Empty disables local verification.
type PaymentConfig struct {
	KeySecret string
}

// CORSConfig lists the hosts allowed to call the API from a browser.
type CORSConfig struct {
	AllowedHosts []string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Upstream storefront backend
	cfg.StoreAPI.BaseURL = strings.TrimSuffix(getEnv("STORE_API_BASE_URL", ""), "/")

	// Static assets
	cfg.Assets = AssetsConfig{
		StaticBaseURL:       strings.TrimSuffix(getEnv("STATIC_BASE_URL", cfg.StoreAPI.BaseURL), "/"),
		PlaceholderImageURL: getEnv("PLACEHOLDER_IMAGE_URL", "/static/placeholder.png"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	cfg.Payment.KeySecret = getEnv("PAYMENT_KEY_SECRET", "")
	cfg.CORS.AllowedHosts = splitList(getEnv("CORS_ALLOWED_HOSTS", "localhost:3000,127.0.0.1:3000"))

	// Durations
	var err error
	if cfg.StoreAPI.Timeout, err = parseDurationEnv("STORE_API_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid STORE_API_TIMEOUT: %w", err)
	}
	if cfg.Catalog.CacheTTL, err = parseDurationEnv("CATALOG_CACHE_TTL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL: %w", err)
	}
	if cfg.Catalog.RefreshInterval, err = parseDurationEnv("CATALOG_REFRESH_INTERVAL", "4m"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_REFRESH_INTERVAL: %w", err)
	}
	if cfg.Catalog.MembershipIdleTTL, err = parseDurationEnv("MEMBERSHIP_IDLE_TTL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid MEMBERSHIP_IDLE_TTL: %w", err)
	}

	// Catalog sources
	cfg.Catalog.SourcesFile = getEnv("CATALOG_SOURCES_FILE", "")
	if cfg.Catalog.SourcesFile != "" {
		if cfg.Catalog.Sources, err = LoadSources(cfg.Catalog.SourcesFile); err != nil {
			return nil, fmt.Errorf("invalid CATALOG_SOURCES_FILE: %w", err)
		}
	} else {
		cfg.Catalog.Sources = DefaultSources()
	}

	if cfg.StoreAPI.BaseURL == "" {
		return nil, errors.New("store api configuration incomplete: ensure STORE_API_BASE_URL is set")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
