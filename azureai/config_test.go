package azureai

import (
	"errors"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAPIKey, EnvAPIBase, EnvAPIVersion, EnvDeployment} {
		t.Setenv(key, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "secret")
	t.Setenv(EnvAPIBase, "https://example.openai.azure.com")
	t.Setenv(EnvAPIVersion, "2024-02-01")
	t.Setenv(EnvDeployment, "gpt-4o")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv failed: %v", err)
	}
	if cfg.APIKey != "secret" || cfg.Deployment != "gpt-4o" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestConfigFromEnvAllMissing(t *testing.T) {
	clearEnv(t)

	_, err := ConfigFromEnv()
	if err == nil {
		t.Fatal("expected error")
	}
	var missing *MissingConfigError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingConfigError, got %T", err)
	}
	if len(missing.Vars) != 4 {
		t.Fatalf("expected all 4 variables reported, got %v", missing.Vars)
	}
}

func TestConfigFromEnvOneMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "secret")
	t.Setenv(EnvAPIBase, "https://example.openai.azure.com")
	t.Setenv(EnvDeployment, "gpt-4o")

	_, err := ConfigFromEnv()
	var missing *MissingConfigError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingConfigError, got %v", err)
	}
	if len(missing.Vars) != 1 || missing.Vars[0] != EnvAPIVersion {
		t.Fatalf("expected exactly %s reported, got %v", EnvAPIVersion, missing.Vars)
	}
}

func TestValidatePopulated(t *testing.T) {
	cfg := Config{APIKey: "k", APIBase: "b", APIVersion: "v", Deployment: "d"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}
