package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	DBMaxConns        int
	DBMaxIdleMinutes  int
	DBMaxLifeMinutes  int

	// TrustedProxies are the proxy IPs whose X-Forwarded-For header is honored.
	TrustedProxies []string

	// ConfigsDir holds the commodity and MSP reference tables, loaded once at
	// startup and treated as immutable afterwards.
	ConfigsDir string

	// Mandi price feed settings
	PriceFeedBaseURL string
	PriceFeedTimeout time.Duration
	PriceFeedRetries int

	// Last-known price cache (fallback when the live feed is down)
	PriceCacheSize int
	PriceCacheTTL  time.Duration

	// DefaultTrendDays is the historical window for price trend reports.
	DefaultTrendDays int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "agrosight"),
		Version:     getEnv("VERSION", "dev"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "agrosight"),

		ConfigsDir: getEnv("CONFIGS_DIR", "configs"),

		PriceFeedBaseURL: getEnv("PRICE_FEED_BASE_URL", "https://api.data.gov.in/agmarknet"),
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	timeoutMs, err := getEnvInt("PRICE_FEED_TIMEOUT_MS", DefaultPriceFeedTimeoutMs)
	if err != nil {
		return nil, err
	}
	cfg.PriceFeedTimeout = time.Duration(timeoutMs) * time.Millisecond

	retries, err := getEnvInt("PRICE_FEED_RETRIES", DefaultPriceFeedRetries)
	if err != nil {
		return nil, err
	}
	cfg.PriceFeedRetries = retries

	cacheSize, err := getEnvInt("PRICE_CACHE_SIZE", DefaultPriceCacheSize)
	if err != nil {
		return nil, err
	}
	cfg.PriceCacheSize = cacheSize

	cacheTTLMin, err := getEnvInt("PRICE_CACHE_TTL_MINUTES", DefaultPriceCacheTTLMinutes)
	if err != nil {
		return nil, err
	}
	cfg.PriceCacheTTL = time.Duration(cacheTTLMin) * time.Minute

	trendDays, err := getEnvInt("DEFAULT_TREND_DAYS", DefaultTrendDays)
	if err != nil {
		return nil, err
	}
	cfg.DefaultTrendDays = trendDays

	maxConns, err := getEnvInt("DB_MAX_CONNS", DefaultDBMaxConns)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxConns = maxConns

	maxIdle, err := getEnvInt("DB_MAX_IDLE_MINUTES", DefaultDBMaxIdleMinutes)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxIdleMinutes = maxIdle

	maxLife, err := getEnvInt("DB_MAX_LIFE_MINUTES", DefaultDBMaxLifeMinutes)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxLifeMinutes = maxLife

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
