package config

import (
	"os"
	"strconv"
	"time"

	"benchfuse/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Validation ValidationConfig
	Cache      CacheConfig
	AI         AIConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	OpsPort string
	GinMode string
}

// ValidationConfig holds fusion-engine settings
type ValidationConfig struct {
	MinConfidence   float64
	PassThreshold   float64
	StrictMode      bool
	Parallel        bool
	MaxConcurrent   int
	ScorerTimeout   time.Duration
	RefreshOnBypass bool
}

// CacheConfig holds result-cache settings
type CacheConfig struct {
	Capacity          int
	TTL               time.Duration
	AlignmentCapacity int
	AlignmentTTL      time.Duration
}

// AIConfig holds settings for the LLM-backed literature alignment judge.
// An empty key disables the judge; the scorer falls back to its heuristic.
type AIConfig struct {
	OpenAIKey   string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			OpsPort: getEnvOrDefault("OPS_PORT", "9090"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Validation: ValidationConfig{
			MinConfidence:   getEnvFloatOrDefault("MIN_CONFIDENCE", 0.3),
			PassThreshold:   getEnvFloatOrDefault("PASS_THRESHOLD", 7.0),
			StrictMode:      getEnvBoolOrDefault("STRICT_MODE", false),
			Parallel:        getEnvBoolOrDefault("PARALLEL_SCORERS", true),
			MaxConcurrent:   getEnvIntOrDefault("MAX_CONCURRENT_SCORERS", 5),
			ScorerTimeout:   getEnvDurationOrDefault("SCORER_TIMEOUT", 60*time.Second),
			RefreshOnBypass: getEnvBoolOrDefault("REFRESH_ON_BYPASS", true),
		},
		Cache: CacheConfig{
			Capacity:          getEnvIntOrDefault("CACHE_CAPACITY", 200),
			TTL:               getEnvDurationOrDefault("CACHE_TTL", time.Hour),
			AlignmentCapacity: getEnvIntOrDefault("ALIGNMENT_CACHE_CAPACITY", 500),
			AlignmentTTL:      getEnvDurationOrDefault("ALIGNMENT_CACHE_TTL", 4*time.Hour),
		},
		AI: AIConfig{
			OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
			BaseURL:     os.Getenv("OPENAI_BASE_URL"),
			Model:       getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature: getEnvFloatOrDefault("AI_TEMPERATURE", 0.1),
			Timeout:     getEnvDurationOrDefault("AI_TIMEOUT", 30*time.Second),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Validation.MinConfidence < 0 || config.Validation.MinConfidence > 1 {
		return errors.ConfigInvalid("MIN_CONFIDENCE must be in [0,1]")
	}
	if config.Validation.PassThreshold < 0 || config.Validation.PassThreshold > 10 {
		return errors.ConfigInvalid("PASS_THRESHOLD must be in [0,10]")
	}
	if config.Validation.MaxConcurrent < 1 {
		return errors.ConfigInvalid("MAX_CONCURRENT_SCORERS must be at least 1")
	}
	if config.Cache.Capacity < 1 || config.Cache.AlignmentCapacity < 1 {
		return errors.ConfigInvalid("cache capacities must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
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
