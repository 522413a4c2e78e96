// Package config reads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/stocklens/stocklens/internal/services/quotes"
)

// Stats provider selection values.
const (
	StatsProviderGoogle = "google"
	StatsProviderStatic = "static"
)

// Config holds everything the process needs to wire itself up.
type Config struct {
	Port          int
	LogLevel      string
	LogPretty     bool
	AllowedOrigin string

	// PriceTTL should equal RefreshInterval: the UI polls on that
	// cadence and the cache window has to match it.
	PriceTTL        time.Duration
	PriceSweep      time.Duration
	StatsTTL        time.Duration
	StatsSweep      time.Duration
	RefreshInterval time.Duration
	ProviderTimeout time.Duration

	YahooBaseURL  string
	GoogleBaseURL string
	StatsProvider string
	StatsDBPath   string
}

// Load reads the environment (and a .env file when present) into a
// validated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvAsInt("PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getEnvAsBool("LOG_PRETTY", false),
		AllowedOrigin:   getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		PriceTTL:        getEnvAsDuration("PRICE_TTL", 15*time.Second),
		PriceSweep:      getEnvAsDuration("PRICE_SWEEP", 5*time.Second),
		StatsTTL:        getEnvAsDuration("STATS_TTL", time.Hour),
		StatsSweep:      getEnvAsDuration("STATS_SWEEP", 10*time.Minute),
		RefreshInterval: getEnvAsDuration("REFRESH_INTERVAL", 15*time.Second),
		ProviderTimeout: getEnvAsDuration("PROVIDER_TIMEOUT", 5*time.Second),
		YahooBaseURL:    getEnv("YAHOO_BASE_URL", quotes.DefaultYahooBaseURL),
		GoogleBaseURL:   getEnv("GOOGLE_BASE_URL", quotes.DefaultGoogleBaseURL),
		StatsProvider:   getEnv("STATS_PROVIDER", StatsProviderGoogle),
		StatsDBPath:     getEnv("STATS_DB_PATH", "./data/stats.db"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	for name, d := range map[string]time.Duration{
		"PRICE_TTL":        c.PriceTTL,
		"STATS_TTL":        c.StatsTTL,
		"REFRESH_INTERVAL": c.RefreshInterval,
		"PROVIDER_TIMEOUT": c.ProviderTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.StatsProvider != StatsProviderGoogle && c.StatsProvider != StatsProviderStatic {
		return fmt.Errorf("STATS_PROVIDER must be %q or %q, got %q", StatsProviderGoogle, StatsProviderStatic, c.StatsProvider)
	}
	if c.StatsProvider == StatsProviderStatic && c.StatsDBPath == "" {
		return fmt.Errorf("STATS_DB_PATH is required with STATS_PROVIDER=static")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
