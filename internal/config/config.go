// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront backend
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Redis    RedisConfig
	Store    StoreConfig
	Security SecurityConfig
	WhatsApp WhatsAppConfig
	Business BusinessConfig
	Catalog  CatalogConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// StoreConfig selects the session snapshot backend
type StoreConfig struct {
	Driver     string // "redis" or "memory"
	SessionTTL time.Duration
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// WhatsAppConfig contains the order handoff target.
// Link is a pre-shared wa.me link; Phone is a digits-only number used
// for phone-addressed handoff when Link is empty.
type WhatsAppConfig struct {
	Link           string
	Phone          string
	DefaultMessage string
}

// BusinessConfig contains storefront business information
type BusinessConfig struct {
	Name         string
	Address      string
	Email        string
	WeekdayHours string
	WeekendHours string
}

// CatalogConfig contains catalog data source configuration.
// An empty File means the embedded catalog is used.
type CatalogConfig struct {
	File string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Mano Bakers Storefront"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Store: StoreConfig{
			Driver:     getEnv("STORE_DRIVER", "redis"),
			SessionTTL: getEnvAsDuration("STORE_SESSION_TTL", 24*time.Hour),
		},
		Security: SecurityConfig{
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		WhatsApp: WhatsAppConfig{
			Link:           getEnv("WHATSAPP_LINK", "https://wa.me/message/5U2VP7MILEM3P1?src=qr"),
			Phone:          getEnv("WHATSAPP_PHONE", ""),
			DefaultMessage: getEnv("WHATSAPP_DEFAULT_MESSAGE", "Hi Mano Bakers, I'd like to place an order. Can you help me?"),
		},
		Business: BusinessConfig{
			Name:         getEnv("BUSINESS_NAME", "Mano Bakers"),
			Address:      getEnv("BUSINESS_ADDRESS", "123 Baker Street, Colombo 07, Sri Lanka"),
			Email:        getEnv("BUSINESS_EMAIL", "hello@manobakers.me"),
			WeekdayHours: getEnv("BUSINESS_WEEKDAY_HOURS", "7:00 AM - 8:00 PM"),
			WeekendHours: getEnv("BUSINESS_WEEKEND_HOURS", "8:00 AM - 6:00 PM"),
		},
		Catalog: CatalogConfig{
			File: getEnv("CATALOG_FILE", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	switch c.Store.Driver {
	case "redis":
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required when STORE_DRIVER is redis")
		}
	case "memory":
		// No backing service needed
	default:
		return fmt.Errorf("STORE_DRIVER must be redis or memory, got %q", c.Store.Driver)
	}

	if c.WhatsApp.Link == "" && c.WhatsApp.Phone == "" {
		return fmt.Errorf("WHATSAPP_LINK or WHATSAPP_PHONE is required")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// HandoffTarget returns the base WhatsApp URL orders are handed off to.
// A pre-shared link wins over a phone-addressed one.
func (c *Config) HandoffTarget() string {
	if c.WhatsApp.Link != "" {
		return c.WhatsApp.Link
	}
	return "https://wa.me/" + c.WhatsApp.Phone
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
