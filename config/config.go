// Package config provides configuration for the session service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration. The Azure OpenAI endpoint values
// deliberately live outside this package: they have no defaults and are
// resolved by azureai.ConfigFromEnv, all-or-nothing.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Completion call timeout, enforced by the HTTP transport
	LLMTimeout time.Duration

	// Optional override for the seed system prompt
	SystemPrompt string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		HTTPPort:     getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:  getEnv("DATABASE_URL", "file:authagent.db?cache=shared&mode=rwc"),
		LLMTimeout:   time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		SystemPrompt: getEnv("SYSTEM_PROMPT", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
