// Package config loads application configuration from environment variables
// and an optional cache settings file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Graph API configuration
	GraphAPIBaseURL  string
	GraphAPIKey      string
	GraphAPIRetryMax int

	// Insights backend configuration
	InsightsBaseURL  string
	InsightsAPIKey   string
	InsightsRetryMax int
	QueryTimeout     time.Duration

	// Cache configuration
	CacheDefaultTTL    time.Duration
	CacheMaxItems      int
	CacheSweepInterval time.Duration
	CacheSettingsFile  string
	PreloadTimeout     time.Duration
	PreloadDebounce    time.Duration

	// Logging
	LogLevel string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Rate limiting (requests per minute)
	RateLimitPerIP       int
	RateLimitPerCustomer int

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		GraphAPIBaseURL:  getEnv("GRAPH_API_BASE_URL", "http://localhost:9090"),
		GraphAPIKey:      getEnv("GRAPH_API_KEY", ""),
		GraphAPIRetryMax: getEnvInt("GRAPH_API_RETRY_MAX", 2),

		InsightsBaseURL:  getEnv("INSIGHTS_BASE_URL", "http://localhost:9091"),
		InsightsAPIKey:   getEnv("INSIGHTS_API_KEY", ""),
		InsightsRetryMax: getEnvInt("INSIGHTS_RETRY_MAX", 1),
		QueryTimeout:     getEnvDuration("QUERY_TIMEOUT", 30*time.Second),

		CacheDefaultTTL:    getEnvDuration("CACHE_DEFAULT_TTL", 5*time.Minute),
		CacheMaxItems:      getEnvInt("CACHE_MAX_ITEMS", 10000),
		CacheSweepInterval: getEnvDuration("CACHE_SWEEP_INTERVAL", time.Minute),
		CacheSettingsFile:  getEnv("CACHE_SETTINGS_FILE", ""),
		PreloadTimeout:     getEnvDuration("PRELOAD_TIMEOUT", 20*time.Second),
		PreloadDebounce:    getEnvDuration("PRELOAD_DEBOUNCE", 5*time.Minute),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "campaign-backend"),

		LogLevel:             getEnv("LOG_LEVEL", "info"),
		RateLimitPerIP:       getEnvInt("RATE_LIMIT_PER_IP", 300),
		RateLimitPerCustomer: getEnvInt("RATE_LIMIT_PER_CUSTOMER", 120),
		EnableMetrics:        getEnvBool("ENABLE_METRICS", true),
		EnableCORS:           getEnvBool("ENABLE_CORS", true),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.GraphAPIKey == "" {
			return fmt.Errorf("GRAPH_API_KEY is required in production")
		}
		if c.InsightsAPIKey == "" {
			return fmt.Errorf("INSIGHTS_API_KEY is required in production")
		}
	}
	if c.CacheDefaultTTL <= 0 {
		return fmt.Errorf("CACHE_DEFAULT_TTL must be positive")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
