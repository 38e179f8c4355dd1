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
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string
	MigrateOnStart     bool
	DBSlowQuery        time.Duration

	CatalogCacheTTL      time.Duration
	CatalogLookupTimeout time.Duration
	RulesCacheTTL        time.Duration
	RulesDocumentID      string

	CatalogBreakerMinRequests  int
	CatalogBreakerFailureRatio float64
	CatalogBreakerCooldown     time.Duration

	DeliveryShippingDays int
	DeliveryHoursPerDay  float64

	PricingRateLimit  int64
	PricingRateWindow time.Duration
	HTTPMaxBodyBytes  int64
	IdempotencyTTL    time.Duration

	SecurityHeadersEnabled bool
	EnableHSTS             bool

	SyncQueue        string
	SyncConcurrency  int
	SyncMaxRetry     int
	SyncWebhookToken string
	SyncRetryBase    time.Duration
	SyncRetryMax     time.Duration
	LockTTL          time.Duration
	LockRetryBackoff time.Duration

	Obs Observability
}

// Observability groups logging, metrics and tracing switches.
type Observability struct {
	LogFormat        string
	LogLevel         string
	MetricsNamespace string
	MetricsBuckets   []float64
	EnablePrometheus bool
	EnableTracing    bool
	TracingExporter  string
	OTLPEndpoint     string
	SamplingRatio    float64
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
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		MigrateOnStart:     parseBool(k.String("MIGRATE_ON_START"), false),
		DBSlowQuery:        parseDuration(k.String("DB_SLOW_QUERY"), "250ms"),

		CatalogCacheTTL:      parseDuration(k.String("CATALOG_CACHE_TTL"), "10m"),
		CatalogLookupTimeout: parseDuration(k.String("CATALOG_LOOKUP_TIMEOUT"), "2s"),
		RulesCacheTTL:        parseDuration(k.String("RULES_CACHE_TTL"), "1m"),
		RulesDocumentID:      valueOrDefault(k.String("RULES_DOCUMENT_ID"), "business_rules"),

		CatalogBreakerMinRequests:  parseInt(k.String("CATALOG_BREAKER_MIN_REQUESTS"), 10),
		CatalogBreakerFailureRatio: parseFloat(k.String("CATALOG_BREAKER_FAILURE_RATIO"), 0.5),
		CatalogBreakerCooldown:     parseDuration(k.String("CATALOG_BREAKER_COOLDOWN"), "15s"),

		DeliveryShippingDays: parseInt(k.String("DELIVERY_SHIPPING_DAYS"), 3),
		DeliveryHoursPerDay:  parseFloat(k.String("DELIVERY_HOURS_PER_DAY"), 8),

		PricingRateLimit:  int64(parseInt(k.String("PRICING_RATE_LIMIT"), 60)),
		PricingRateWindow: parseDuration(k.String("PRICING_RATE_WINDOW"), "1m"),
		HTTPMaxBodyBytes:  int64(parseInt(k.String("HTTP_MAX_BODY_BYTES"), 64<<10)),
		IdempotencyTTL:    parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),

		SecurityHeadersEnabled: parseBool(k.String("SECURITY_HEADERS_ENABLED"), true),
		EnableHSTS:             parseBool(k.String("SECURITY_ENABLE_HSTS"), false),

		SyncQueue:        valueOrDefault(k.String("SYNC_QUEUE"), "catalog"),
		SyncConcurrency:  parseInt(k.String("SYNC_CONCURRENCY"), 4),
		SyncMaxRetry:     parseInt(k.String("SYNC_MAX_RETRY"), 5),
		SyncWebhookToken: strings.TrimSpace(k.String("SYNC_WEBHOOK_TOKEN")),
		SyncRetryBase:    parseDuration(k.String("SYNC_RETRY_BASE"), "5s"),
		SyncRetryMax:     parseDuration(k.String("SYNC_RETRY_MAX"), "5m"),
		LockTTL:          parseDuration(k.String("LOCK_TTL"), "30s"),
		LockRetryBackoff: parseDuration(k.String("LOCK_RETRY_BACKOFF"), "50ms"),

		Obs: Observability{
			LogFormat:        valueOrDefault(k.String("OBS_LOG_FORMAT"), "json"),
			LogLevel:         valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
			MetricsNamespace: valueOrDefault(k.String("OBS_METRICS_NAMESPACE"), "cetak"),
			MetricsBuckets:   parseBuckets(k.String("OBS_METRICS_BUCKETS_MS")),
			EnablePrometheus: parseBool(k.String("OBS_ENABLE_PROMETHEUS"), true),
			EnableTracing:    parseBool(k.String("OBS_ENABLE_TRACING"), false),
			TracingExporter:  valueOrDefault(k.String("OBS_TRACING_EXPORTER"), "otlp"),
			OTLPEndpoint:     strings.TrimSpace(k.String("OBS_OTLP_ENDPOINT")),
			SamplingRatio:    parseFloat(k.String("OBS_TRACING_SAMPLING_RATIO"), 1.0),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.DeliveryHoursPerDay <= 0 {
		return nil, errors.New("DELIVERY_HOURS_PER_DAY must be positive")
	}
	if cfg.DeliveryShippingDays < 0 {
		return nil, errors.New("DELIVERY_SHIPPING_DAYS cannot be negative")
	}

	return cfg, nil
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

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
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
		return strings.TrimSpace(value)
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

func parseBool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func parseInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloat(value string, fallback float64) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseBuckets(value string) []float64 {
	var out []float64
	for _, part := range splitAndTrim(value) {
		if f, err := strconv.ParseFloat(part, 64); err == nil && f > 0 {
			out = append(out, f)
		}
	}
	return out
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
