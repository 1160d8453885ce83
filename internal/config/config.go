package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultDatabaseURL       = "tourpricing.db"
	defaultJWTSecret         = "change-me-jwt-secret"
	defaultJWTTTL            = "12h"
	defaultLogLevel          = "info"
	defaultLogFormat         = "console"
	defaultCurrencyPrecision = "2"
	defaultInsertMaxRetries  = "3"
	defaultMarkupPercent     = "0"
	defaultCORSOrigins       = "http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000,http://127.0.0.1:5173"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	LogLevel  string
	LogFormat string

	// CORSAllowedOrigins are the browser origins allowed to call the API.
	CORSAllowedOrigins []string

	// CurrencyPrecision is the number of minor-unit digits money is rounded to.
	CurrencyPrecision int32
	// RateInsertMaxRetries bounds retries of a rate insert that hit a
	// concurrency conflict.
	RateInsertMaxRetries int
	DefaultMarkupPercent decimal.Decimal
}

// Load reads the runtime configuration from the environment. A .env file in
// the working directory is loaded first when present; real env vars win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", defaultLogFormat)))
	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	precision, err := parseIntEnv("CURRENCY_PRECISION", defaultCurrencyPrecision)
	if err != nil {
		return nil, err
	}
	cfg.CurrencyPrecision = int32(precision)

	cfg.RateInsertMaxRetries, err = parseIntEnv("RATE_INSERT_MAX_RETRIES", defaultInsertMaxRetries)
	if err != nil {
		return nil, err
	}

	markup := strings.TrimSpace(getEnv("DEFAULT_MARKUP_PERCENT", defaultMarkupPercent))
	cfg.DefaultMarkupPercent, err = decimal.NewFromString(markup)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_MARKUP_PERCENT value %q: %w", markup, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.CurrencyPrecision < 1 || cfg.CurrencyPrecision > 4 {
		return fmt.Errorf("CURRENCY_PRECISION must be between 1 and 4")
	}
	if cfg.RateInsertMaxRetries < 1 || cfg.RateInsertMaxRetries > 10 {
		return fmt.Errorf("RATE_INSERT_MAX_RETRIES must be between 1 and 10")
	}
	if cfg.DefaultMarkupPercent.IsNegative() {
		return fmt.Errorf("DEFAULT_MARKUP_PERCENT must be >= 0")
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be one of: console, json")
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
