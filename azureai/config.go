package azureai

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables holding the endpoint configuration.
const (
	EnvAPIKey     = "AZURE_OPENAI_API_KEY"
	EnvAPIBase    = "AZURE_OPENAI_API_BASE"
	EnvAPIVersion = "AZURE_OPENAI_API_VERSION"
	EnvDeployment = "AZURE_OPENAI_DEPLOYMENT_NAME"
)

// Config holds the four values required to reach an Azure OpenAI deployment.
// A Config must be fully populated; partial configuration is rejected by
// Validate and never reaches a client.
type Config struct {
	APIKey     string
	APIBase    string
	APIVersion string
	Deployment string
}

// MissingConfigError lists every required configuration value that was
// absent, not just the first.
type MissingConfigError struct {
	Vars []string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s. Please check your .env file", strings.Join(e.Vars, ", "))
}

// ConfigFromEnv reads the endpoint configuration from the environment.
// There are no defaults: if any variable is unset or empty, the returned
// MissingConfigError names all of the missing variables.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		APIKey:     os.Getenv(EnvAPIKey),
		APIBase:    os.Getenv(EnvAPIBase),
		APIVersion: os.Getenv(EnvAPIVersion),
		Deployment: os.Getenv(EnvDeployment),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every required field is populated.
func (c Config) Validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if c.APIBase == "" {
		missing = append(missing, EnvAPIBase)
	}
	if c.APIVersion == "" {
		missing = append(missing, EnvAPIVersion)
	}
	if c.Deployment == "" {
		missing = append(missing, EnvDeployment)
	}
	if len(missing) > 0 {
		return &MissingConfigError{Vars: missing}
	}
	return nil
}
