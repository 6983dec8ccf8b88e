package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	defaultDBPath          = "./dev.db"
	defaultPort            = "8080"
	defaultEnv             = "development"
	defaultLogLevel        = "info"
	defaultRateMultiplier  = "1"
	defaultOverheadPercent = "15"
	defaultMarginPercent   = "20"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath   string
	Port     string
	Env      string
	LogLevel string

	// RateMultiplier scales every award rate, e.g. 1.035 after an annual wage review.
	RateMultiplier         decimal.Decimal
	DefaultOverheadPercent decimal.Decimal
	DefaultMarginPercent   decimal.Decimal
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// A missing .env is fine; production injects real environment variables.
	// godotenv.Load never overwrites variables that are already set.
	_ = godotenv.Load(".env")

	return Config{
		DBPath:                 getenvWithDefault("DB_PATH", defaultDBPath),
		Port:                   getenvWithDefault("PORT", defaultPort),
		Env:                    strings.ToLower(getenvWithDefault("APP_ENV", defaultEnv)),
		LogLevel:               getenvWithDefault("LOG_LEVEL", defaultLogLevel),
		RateMultiplier:         getenvPositiveDecimal("RATE_MULTIPLIER", defaultRateMultiplier),
		DefaultOverheadPercent: getenvDecimal("DEFAULT_OVERHEAD_PERCENT", defaultOverheadPercent),
		DefaultMarginPercent:   getenvDecimal("DEFAULT_MARGIN_PERCENT", defaultMarginPercent),
	}
}

// IsDev reports whether the app runs in the development environment.
func (c Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

func getenvWithDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getenvDecimal(key, fallback string) decimal.Decimal {
	raw := getenvWithDefault(key, fallback)
	value, err := decimal.NewFromString(raw)
	if err != nil || value.IsNegative() {
		log.Printf("warning: %s=%q is not a non-negative number, using %s", key, raw, fallback)
		return decimal.RequireFromString(fallback)
	}
	return value
}

// getenvPositiveDecimal is getenvDecimal that also rejects zero.
func getenvPositiveDecimal(key, fallback string) decimal.Decimal {
	value := getenvDecimal(key, fallback)
	if !value.IsPositive() {
		log.Printf("warning: %s=%s must be greater than 0, using %s", key, value, fallback)
		return decimal.RequireFromString(fallback)
	}
	return value
}
