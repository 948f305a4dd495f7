package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	apperrors "ghostcheck/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// App
	Host     string
	Port     string
	Env      string
	LogLevel string

	// Uploads
	MaxUploadMB int // Largest archive accepted by the HTTP server
	MaxEntryMB  int // Largest single archive entry that is parsed

	// Extraction
	MaxWorkers     int      // Concurrent per-file extractions
	ProfileBaseURL string   // Prefix for profile links when an export omits them
	ListFields     []string // Field names holding per-user list entries
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	cfg := &Config{
		Host:           getEnv("HOST", "127.0.0.1"),
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", ""),
		MaxUploadMB:    getEnvInt("MAX_UPLOAD_MB", 512),
		MaxEntryMB:     getEnvInt("MAX_ENTRY_MB", 64),
		MaxWorkers:     getEnvInt("MAX_WORKERS", 8),
		ProfileBaseURL: getEnv("PROFILE_BASE_URL", "https://www.instagram.com/"),
		ListFields:     getEnvList("LIST_FIELDS", []string{"string_list_data"}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Port == "" {
		return apperrors.NewConfigMissingRequired("PORT")
	}
	if c.MaxUploadMB <= 0 {
		return apperrors.NewConfigValidationFailed("MAX_UPLOAD_MB", "must be positive")
	}
	if c.MaxEntryMB <= 0 {
		return apperrors.NewConfigValidationFailed("MAX_ENTRY_MB", "must be positive")
	}
	if c.MaxWorkers <= 0 {
		return apperrors.NewConfigValidationFailed("MAX_WORKERS", "must be positive")
	}
	if c.ProfileBaseURL == "" {
		return apperrors.NewConfigMissingRequired("PROFILE_BASE_URL")
	}
	if len(c.ListFields) == 0 {
		return apperrors.NewConfigMissingRequired("LIST_FIELDS")
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// MaxUploadBytes converts MaxUploadMB to bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// MaxEntryBytes converts MaxEntryMB to bytes
func (c *Config) MaxEntryBytes() int64 {
	return int64(c.MaxEntryMB) << 20
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping blanks
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
