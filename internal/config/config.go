package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Host string
	Port string

	// Database settings
	DBDriver     string // "sqlite" or "postgres"
	DatabasePath string // sqlite file path
	DatabaseURL  string // postgres DSN

	// Logging settings
	LogLevel  string
	LogFormat string

	// Auth settings
	JWTSecret string
	TokenTTL  time.Duration

	// Upload settings
	UploadDir     string
	MaxUploadSize int64

	// Pagination settings
	DefaultPageSize int
	MaxPageSize     int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not an error if .env doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Host:         getEnv("HOST", "0.0.0.0"),
		Port:         getEnv("PORT", "8080"),
		DBDriver:     getEnv("DB_DRIVER", "sqlite"),
		DatabasePath: getEnv("DATABASE_PATH", "./data/case_registry.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("invalid DB_DRIVER %q: must be sqlite or postgres", cfg.DBDriver)
	}
	if cfg.DBDriver == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	tokenTTL, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS: %w", err)
	}
	cfg.TokenTTL = time.Duration(tokenTTL) * time.Hour

	cfg.MaxUploadSize, err = strconv.ParseInt(getEnv("MAX_UPLOAD_SIZE", "10000000"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE: %w", err)
	}

	cfg.DefaultPageSize, err = strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_PAGE_SIZE: %w", err)
	}

	cfg.MaxPageSize, err = strconv.Atoi(getEnv("MAX_PAGE_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_PAGE_SIZE: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
