package config

import (
	"os"
	"strconv"
	"time"

	"pdf-search-server/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	UploadPath     string
	MaxFileSize    int64
	MaxUploadFiles int
	SessionTTL     time.Duration
	ExtractTimeout time.Duration
	SearchWorkers  int
	LogLevel       string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:     getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		UploadPath:     getEnvOrDefault("UPLOAD_PATH", "./uploads"),
		MaxFileSize:    getEnvInt64OrDefault("MAX_FILE_SIZE", 100*1024*1024), // 100MB default
		MaxUploadFiles: getEnvIntOrDefault("MAX_UPLOAD_FILES", 1000),
		SessionTTL:     getEnvDurationOrDefault("SESSION_TTL", time.Hour),
		ExtractTimeout: getEnvDurationOrDefault("EXTRACT_TIMEOUT", 30*time.Second),
		SearchWorkers:  getEnvIntOrDefault("SEARCH_WORKERS", 0), // 0 = one per CPU
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the upload directory path
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetMaxFileSize returns the maximum allowed size of one uploaded file
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetMaxUploadFiles returns the maximum number of files in one batch
func (c *AppConfig) GetMaxUploadFiles() int {
	return c.MaxUploadFiles
}

// GetSessionTTL returns the upload-session time-to-live
func (c *AppConfig) GetSessionTTL() time.Duration {
	return c.SessionTTL
}

// GetExtractTimeout returns the per-document extraction ceiling
func (c *AppConfig) GetExtractTimeout() time.Duration {
	return c.ExtractTimeout
}

// GetSearchWorkers returns the bounded worker pool size (0 = auto)
func (c *AppConfig) GetSearchWorkers() int {
	return c.SearchWorkers
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
