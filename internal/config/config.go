package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

// Pricing groups the monetary constants shared by the cart quote engine and
// order totals. Both paths must read the same instance so the numbers cannot
// drift apart.
type Pricing struct {
	TaxRate         decimal.Decimal
	FreeShippingMin decimal.Decimal
	ShippingFlatFee decimal.Decimal
	BulkThreshold   int
	BulkRate        decimal.Decimal
	MaxDiscount     decimal.Decimal
	Currency        string
}

// DefaultPricing returns the canonical pricing constants.
func DefaultPricing() Pricing {
	return Pricing{
		TaxRate:         decimal.RequireFromString("0.08"),
		FreeShippingMin: decimal.RequireFromString("50"),
		ShippingFlatFee: decimal.RequireFromString("5.99"),
		BulkThreshold:   5,
		BulkRate:        decimal.RequireFromString("0.10"),
		MaxDiscount:     decimal.RequireFromString("0.30"),
		Currency:        "USD",
	}
}

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	RedisURL           string
	CORSAllowedOrigins []string
	LogFormat          string
	LogLevel           string
	RateLimitPerMin    int
	CacheTTL           time.Duration
	LowStockThreshold  int
	AlertEmail         string
	CatalogSeedPath    string
	Pricing            Pricing
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		RedisURL:           strings.TrimSpace(k.String("REDIS_URL")),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		LogFormat:          valueOrDefault(k.String("LOG_FORMAT"), "json"),
		LogLevel:           valueOrDefault(k.String("LOG_LEVEL"), "info"),
		RateLimitPerMin:    parseInt(k.String("RATE_LIMIT_PER_MINUTE"), 0),
		CacheTTL:           parseDuration(k.String("CACHE_TTL"), "5m"),
		LowStockThreshold:  parseInt(k.String("LOW_STOCK_THRESHOLD"), 10),
		AlertEmail:         strings.TrimSpace(k.String("ALERT_EMAIL")),
		CatalogSeedPath:    strings.TrimSpace(k.String("CATALOG_SEED")),
		Pricing:            loadPricing(k),
	}
	return cfg, nil
}

func loadPricing(k *koanf.Koanf) Pricing {
	p := DefaultPricing()
	p.TaxRate = parseDecimal(k.String("TAX_RATE"), p.TaxRate)
	p.FreeShippingMin = parseDecimal(k.String("FREE_SHIPPING_MIN"), p.FreeShippingMin)
	p.ShippingFlatFee = parseDecimal(k.String("SHIPPING_FLAT_FEE"), p.ShippingFlatFee)
	p.BulkThreshold = parseInt(k.String("BULK_DISCOUNT_THRESHOLD"), p.BulkThreshold)
	p.BulkRate = parseDecimal(k.String("BULK_DISCOUNT_RATE"), p.BulkRate)
	p.MaxDiscount = parseDecimal(k.String("MAX_DISCOUNT"), p.MaxDiscount)
	p.Currency = valueOrDefault(k.String("CURRENCY"), p.Currency)
	return p
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
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

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return n
}

func parseDecimal(value string, fallback decimal.Decimal) decimal.Decimal {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return fallback
	}
	return d
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
