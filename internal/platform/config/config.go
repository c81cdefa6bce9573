package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	StorageDriver  string
	MigrationsPath string
	Port           string
	IsProduction   bool

	// The hosted auth backend signs tokens with JWTSecret; JWTIssuer is checked when set.
	JWTSecret       string
	JWTIssuer       string
	FrontendBaseURL string

	RatesEndpoint       string
	RatesAPIKey         string
	BaseCurrency        string
	ReferenceCurrency   string
	RateCacheTTL        time.Duration
	RateRefreshSchedule string
	RateSourceTimeout   time.Duration
	RateSourceRetries   int

	// APIRateLimit uses ulule/limiter's formatted rate syntax, e.g. "100-M".
	APIRateLimit  string
	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("STORAGE_DRIVER", StoragePostgres)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("RATES_ENDPOINT", "https://api.fxratesapi.com/latest")
	viper.SetDefault("RATES_API_KEY", "")
	viper.SetDefault("BASE_CURRENCY", "USD")
	viper.SetDefault("REFERENCE_CURRENCY", "INR")
	viper.SetDefault("RATE_CACHE_TTL", "1h")
	viper.SetDefault("RATE_REFRESH_SCHEDULE", "@every 1h")
	viper.SetDefault("RATE_SOURCE_TIMEOUT", "10s")
	viper.SetDefault("RATE_SOURCE_RETRIES", 3)
	viper.SetDefault("API_RATE_LIMIT", "100-M")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:         viper.GetString("PGSQL_URL"),
		StorageDriver:       strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		MigrationsPath:      viper.GetString("MIGRATIONS_PATH"),
		Port:                viper.GetString("PORT"),
		IsProduction:        viper.GetBool("IS_PRODUCTION"),
		JWTSecret:           viper.GetString("JWT_SECRET"),
		JWTIssuer:           viper.GetString("JWT_ISSUER"),
		FrontendBaseURL:     viper.GetString("FRONTEND_BASE_URL"),
		RatesEndpoint:       viper.GetString("RATES_ENDPOINT"),
		RatesAPIKey:         viper.GetString("RATES_API_KEY"),
		BaseCurrency:        strings.ToUpper(viper.GetString("BASE_CURRENCY")),
		ReferenceCurrency:   strings.ToUpper(viper.GetString("REFERENCE_CURRENCY")),
		RateRefreshSchedule: viper.GetString("RATE_REFRESH_SCHEDULE"),
		RateSourceRetries:   viper.GetInt("RATE_SOURCE_RETRIES"),
		APIRateLimit:        viper.GetString("API_RATE_LIMIT"),
		PosthogAPIKey:       viper.GetString("POSTHOG_API_KEY"),
	}

	cfg.RateCacheTTL = durationOrDefault("RATE_CACHE_TTL", time.Hour)
	cfg.RateSourceTimeout = durationOrDefault("RATE_SOURCE_TIMEOUT", 10*time.Second)

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, data is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want %s or %s)", cfg.StorageDriver, StoragePostgres, StorageMemory)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.RatesAPIKey == "" {
		log.Println("Warning: RATES_API_KEY not set. The rate source may reject requests.")
	}

	if cfg.RateSourceRetries < 0 {
		cfg.RateSourceRetries = 0
	}

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
