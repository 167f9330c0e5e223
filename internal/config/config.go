package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all CLI configuration
type Config struct {
	Decidir DecidirConfig
	Secrets SecretsConfig
	Metrics MetricsConfig
	Logger  LoggerConfig
}

// DecidirConfig holds the connector settings
type DecidirConfig struct {
	Environment string // sandbox, production, qa
	Host        string // Custom installation host; overrides Environment
	Path        string // Payments path of the custom installation (default: /api/v2/)

	PrivateKey  string
	PublicKey   string
	ValidateKey string // API key of the form validation service
	Merchant    string // Consumer username sent with form validations

	Grouper   string // Reported in the X-Source header
	Developer string // Reported in the X-Source header

	Timeout int    // Request timeout in seconds (default: 900)
	Charset string // Request body charset: iso-8859-1 (default) or utf-8
}

// SecretsConfig selects where credentials are read from when they are not
// given in the environment
type SecretsConfig struct {
	Backend string // "", local, aws, vault
	Path    string // Secret name/path of the credentials document

	LocalDir string

	AWSRegion   string
	AWSProfile  string
	AWSEndpoint string

	VaultAddress    string
	VaultAuthMethod string
	VaultToken      string
	VaultRoleID     string
	VaultSecretID   string
	VaultMountPath  string
}

// MetricsConfig holds the Prometheus endpoint configuration
type MetricsConfig struct {
	Port int // 0 disables the endpoint
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// Secret backends
const (
	SecretsBackendNone  = ""
	SecretsBackendLocal = "local"
	SecretsBackendAWS   = "aws"
	SecretsBackendVault = "vault"
)

// LoadEnvFile loads variables from the given .env files (default: ./.env).
// Missing files are ignored; variables already set are not overridden.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Decidir: DecidirConfig{
			Environment: getEnv("DECIDIR_ENVIRONMENT", "sandbox"),
			Host:        getEnv("DECIDIR_HOST", ""),
			Path:        getEnv("DECIDIR_PATH", "/api/v2/"),
			PrivateKey:  getEnv("DECIDIR_PRIVATE_KEY", ""),
			PublicKey:   getEnv("DECIDIR_PUBLIC_KEY", ""),
			ValidateKey: getEnv("DECIDIR_VALIDATE_KEY", ""),
			Merchant:    getEnv("DECIDIR_MERCHANT", ""),
			Grouper:     getEnv("DECIDIR_GROUPER", ""),
			Developer:   getEnv("DECIDIR_DEVELOPER", ""),
			Timeout:     getEnvAsInt("DECIDIR_TIMEOUT", 900),
			Charset:     getEnv("DECIDIR_CHARSET", "iso-8859-1"),
		},
		Secrets: SecretsConfig{
			Backend:         getEnv("SECRETS_BACKEND", SecretsBackendNone),
			Path:            getEnv("SECRETS_PATH", "decidir/credentials"),
			LocalDir:        getEnv("SECRETS_LOCAL_DIR", "./secrets"),
			AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
			AWSProfile:      getEnv("AWS_PROFILE", ""),
			AWSEndpoint:     getEnv("AWS_ENDPOINT", ""),
			VaultAddress:    getEnv("VAULT_ADDR", "http://127.0.0.1:8200"),
			VaultAuthMethod: getEnv("VAULT_AUTH_METHOD", "token"),
			VaultToken:      getEnv("VAULT_TOKEN", ""),
			VaultRoleID:     getEnv("VAULT_ROLE_ID", ""),
			VaultSecretID:   getEnv("VAULT_SECRET_ID", ""),
			VaultMountPath:  getEnv("VAULT_MOUNT_PATH", "secret"),
		},
		Metrics: MetricsConfig{
			Port: getEnvAsInt("METRICS_PORT", 0),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for missing or inconsistent values
func (c *Config) Validate() error {
	switch c.Secrets.Backend {
	case SecretsBackendNone:
		if c.Decidir.PrivateKey == "" {
			return fmt.Errorf("DECIDIR_PRIVATE_KEY is required when SECRETS_BACKEND is not set")
		}
	case SecretsBackendLocal, SecretsBackendAWS, SecretsBackendVault:
	default:
		return fmt.Errorf("unsupported SECRETS_BACKEND: %s", c.Secrets.Backend)
	}

	if c.Decidir.Timeout <= 0 {
		return fmt.Errorf("DECIDIR_TIMEOUT must be positive")
	}

	switch c.Decidir.Charset {
	case "iso-8859-1", "utf-8":
	default:
		return fmt.Errorf("unsupported DECIDIR_CHARSET: %s", c.Decidir.Charset)
	}

	return nil
}

// Helper functions

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
