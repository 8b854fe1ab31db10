package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds the process configuration read from the environment
type Config struct {
	Port string

	MongoURI      string
	MongoDatabase string

	// RedisURL is optional; an empty value disables the storefront cache
	RedisURL string

	ShopifyAPIKey            string
	ShopifyAPISecret         string
	ShopifyAPIVersion        string
	ShopifyStorefrontChannel string
	ShopifyCallTimeout       time.Duration
	ShopifyMaxRetries        int

	GiftWrapProductTitle string
	GiftWrapCacheTTL     time.Duration

	CORSAllowedOrigins []string
	LogLevel           zerolog.Level
}

// Load reads .env when present, then the environment. The returned bool reports whether a
// .env file was loaded.
func Load() (*Config, bool) {
	loaded := godotenv.Load() == nil

	cfg := &Config{
		Port:                     getEnv("PORT", "8080"),
		MongoURI:                 getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:            getEnv("MONGODB_DATABASE", "giftwrap"),
		RedisURL:                 getEnv("REDIS_URL", ""),
		ShopifyAPIKey:            getEnv("SHOPIFY_API_KEY", ""),
		ShopifyAPISecret:         getEnv("SHOPIFY_API_SECRET", ""),
		ShopifyAPIVersion:        getEnv("SHOPIFY_API_VERSION", "2025-01"),
		ShopifyStorefrontChannel: getEnv("SHOPIFY_STOREFRONT_CHANNEL", "Online Store"),
		ShopifyCallTimeout:       getEnvAsDuration("SHOPIFY_CALL_TIMEOUT", 10*time.Second),
		ShopifyMaxRetries:        getEnvAsInt("SHOPIFY_MAX_RETRIES", 3),
		GiftWrapProductTitle:     getEnv("GIFTWRAP_PRODUCT_TITLE", "Gift Wrap"),
		GiftWrapCacheTTL:         getEnvAsDuration("GIFTWRAP_CACHE_TTL", 5*time.Minute),
		CORSAllowedOrigins:       getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:                 getEnvAsLevel("LOG_LEVEL", zerolog.InfoLevel),
	}
	return cfg, loaded
}

// Validate rejects configurations the service cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.ShopifyAPIKey == "" {
		errs = append(errs, errors.New("SHOPIFY_API_KEY is required"))
	}
	if c.ShopifyAPISecret == "" {
		errs = append(errs, errors.New("SHOPIFY_API_SECRET is required"))
	}
	if c.MongoDatabase == "" {
		errs = append(errs, errors.New("MONGODB_DATABASE must not be empty"))
	}
	if c.ShopifyCallTimeout <= 0 {
		errs = append(errs, errors.New("SHOPIFY_CALL_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

func getEnvAsLevel(key string, defaultValue zerolog.Level) zerolog.Level {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if level, err := zerolog.ParseLevel(raw); err == nil {
		return level
	}
	return defaultValue
}
