package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	CORS     CORSConfig
	Features FeatureFlags
	Security SecurityConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        // Default: "127.0.0.1"
	Port            int           // Default: 8080
	ShutdownTimeout time.Duration // Default: 30s
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // Default: "info" (trace, debug, info, warn, error, fatal, panic)
	Environment string // production|development|staging|test (affects format)
}

// CORSConfig holds CORS middleware settings
type CORSConfig struct {
	AllowAll    bool   // Default: false
	FrontendURL string // Used when AllowAll=false
}

// FeatureFlags holds optional feature toggles
type FeatureFlags struct {
	RequireAPIKey bool // Default: false
	EnableSwagger bool // Default: true
}

// SecurityConfig holds access control settings
type SecurityConfig struct {
	APIKey         string  // Required if RequireAPIKey
	RateLimitRPS   float64 // Default: 0 (disabled)
	RateLimitBurst int     // Default: 10
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Constants for default values
const (
	DefaultServerHost      = "127.0.0.1"
	DefaultServerPort      = 8080
	DefaultShutdownTimeout = 30 * time.Second
	DefaultLogLevel        = "info"
	DefaultEnvironment     = "development"
	DefaultFrontendURL     = "http://localhost:3000"
	DefaultRateLimitBurst  = 10
)

// Load reads configuration from environment variables.
// A .env file in the working directory is applied first when present;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("HOST", DefaultServerHost),
			Port:            getEnvAsInt("PORT", DefaultServerPort),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", DefaultLogLevel),
			Environment: getEnv("APP_ENV", DefaultEnvironment),
		},
		CORS: CORSConfig{
			AllowAll:    getEnvAsBool("CORS_ALLOW_ALL", false),
			FrontendURL: getEnv("FRONTEND_URL", DefaultFrontendURL),
		},
		Features: FeatureFlags{
			RequireAPIKey: getEnvAsBool("REQUIRE_API_KEY", false),
			EnableSwagger: getEnvAsBool("ENABLE_SWAGGER", true),
		},
		Security: SecurityConfig{
			APIKey:         getEnv("API_KEY", ""),
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 0),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", DefaultRateLimitBurst),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration for errors
func (c *Config) Validate() error {
	var errors ValidationErrors

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "PORT",
			Message: fmt.Sprintf("port must be between 0 and 65535, got %d", c.Server.Port),
		})
	}

	if c.Server.ShutdownTimeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "SHUTDOWN_TIMEOUT",
			Message: fmt.Sprintf("shutdown timeout must be positive, got %s", c.Server.ShutdownTimeout),
		})
	}

	validLogLevels := []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}
	if !contains(validLogLevels, strings.ToLower(c.Logger.Level)) {
		errors = append(errors, ValidationError{
			Field:   "LOG_LEVEL",
			Message: fmt.Sprintf("invalid log level %q, must be one of: %v", c.Logger.Level, validLogLevels),
		})
	}

	validEnvs := []string{"production", "development", "staging", "test"}
	if !contains(validEnvs, c.Logger.Environment) {
		errors = append(errors, ValidationError{
			Field:   "APP_ENV",
			Message: fmt.Sprintf("invalid environment %q, must be one of: %v", c.Logger.Environment, validEnvs),
		})
	}

	if c.Features.RequireAPIKey && c.Security.APIKey == "" {
		errors = append(errors, ValidationError{
			Field:   "API_KEY",
			Message: "API key is required when REQUIRE_API_KEY is true",
		})
	}

	if c.Security.RateLimitRPS < 0 {
		errors = append(errors, ValidationError{
			Field:   "RATE_LIMIT_RPS",
			Message: fmt.Sprintf("rate limit must not be negative, got %v", c.Security.RateLimitRPS),
		})
	}

	if c.RateLimitEnabled() && c.Security.RateLimitBurst < 1 {
		errors = append(errors, ValidationError{
			Field:   "RATE_LIMIT_BURST",
			Message: fmt.Sprintf("burst must be at least 1 when rate limiting is enabled, got %d", c.Security.RateLimitBurst),
		})
	}

	if !c.CORS.AllowAll && c.CORS.FrontendURL == "" {
		errors = append(errors, ValidationError{
			Field:   "FRONTEND_URL",
			Message: "frontend URL should be set when CORS_ALLOW_ALL is false",
		})
	}

	if len(errors) > 0 {
		return errors
	}

	return nil
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Logger.Environment == "production"
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Logger.Environment == "development"
}

// RateLimitEnabled returns true if per-client rate limiting is configured
func (c *Config) RateLimitEnabled() bool {
	return c.Security.RateLimitRPS > 0
}

// GetBindAddress returns the server bind address in format "host:port"
func (c *Config) GetBindAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Helper functions for parsing environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// TestConfig creates a test configuration with sensible defaults for testing
func TestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultServerHost,
			Port:            0, // Random port for tests
			ShutdownTimeout: 5 * time.Second,
		},
		Logger: LoggerConfig{
			Level:       "debug",
			Environment: "test",
		},
		CORS: CORSConfig{
			AllowAll:    true,
			FrontendURL: DefaultFrontendURL,
		},
		Features: FeatureFlags{
			RequireAPIKey: false,
			EnableSwagger: false,
		},
		Security: SecurityConfig{
			RateLimitBurst: DefaultRateLimitBurst,
		},
	}
}
