package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"telcochurn/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Model     ModelConfig
	Data      DataConfig
	Database  DatabaseConfig
	Profiling ProfilingConfig
	LogLevel  string
}

// ServerConfig holds the backend and frontend listener settings
type ServerConfig struct {
	BackendPort     string
	FrontendPort    string
	BackendURL      string
	GinMode         string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// ModelConfig locates the inference artifacts
type ModelConfig struct {
	Dir       string
	Threshold float64
}

// DataConfig holds data preparation settings
type DataConfig struct {
	DatasetFile string
	Target      string
	IDColumn    string
	Fold        float64
	MaxUploadMB int
}

// DatabaseConfig holds database connection settings. An empty URL selects
// the in-memory repositories.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			BackendPort:     getEnvOrDefault("BACKEND_PORT", "5000"),
			FrontendPort:    getEnvOrDefault("FRONTEND_PORT", "8501"),
			BackendURL:      getEnvOrDefault("BACKEND_URL", "http://localhost:5000"),
			GinMode:         getEnvOrDefault("GIN_MODE", "debug"),
			RequestTimeout:  getEnvDurationOrDefault("REQUEST_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Model: ModelConfig{
			Dir:       getEnvOrDefault("MODEL_DIR", "models"),
			Threshold: getEnvFloatOrDefault("THRESHOLD", 0.5),
		},
		Data: DataConfig{
			DatasetFile: getEnvOrDefault("DATASET_FILE", ""),
			Target:      getEnvOrDefault("TARGET_COLUMN", "Churn"),
			IDColumn:    getEnvOrDefault("ID_COLUMN", "customerID"),
			Fold:        getEnvFloatOrDefault("FOLD", 1.5),
			MaxUploadMB: getEnvIntOrDefault("MAX_UPLOAD_MB", 32),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		},
		Profiling: ProfilingConfig{
			Port:    getEnvOrDefault("PPROF_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("PPROF_ENABLED", true),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.BackendPort == "" || config.Server.FrontendPort == "" {
		return errors.ConfigInvalid("BACKEND_PORT and FRONTEND_PORT must not be empty")
	}
	if config.Server.BackendPort == config.Server.FrontendPort {
		return errors.ConfigInvalid(fmt.Sprintf("BACKEND_PORT and FRONTEND_PORT both set to %s", config.Server.BackendPort))
	}
	if config.Model.Threshold <= 0 || config.Model.Threshold >= 1 {
		return errors.ConfigInvalid(fmt.Sprintf("THRESHOLD must be in (0, 1), got %v", config.Model.Threshold))
	}
	if config.Data.Fold != 1.5 && config.Data.Fold != 3 {
		return errors.ConfigInvalid(fmt.Sprintf("FOLD must be 1.5 or 3, got %v", config.Data.Fold))
	}
	if config.Data.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
