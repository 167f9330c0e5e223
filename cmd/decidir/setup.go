package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kevin07696/decidir-go/internal/adapters/ports"
	"github.com/kevin07696/decidir-go/internal/adapters/secrets"
	"github.com/kevin07696/decidir-go/internal/config"
	"github.com/kevin07696/decidir-go/pkg/decidir"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// initLogger initializes the logger
func initLogger(cfg config.LoggerConfig) *zap.Logger {
	if cfg.Development {
		logger, _ := zap.NewDevelopment()
		return logger
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// resolveCredentials returns the keys from the environment, or from the
// configured secrets backend when one is set
func resolveCredentials(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*secrets.Credentials, error) {
	if cfg.Secrets.Backend == config.SecretsBackendNone {
		return &secrets.Credentials{
			PrivateKey:  cfg.Decidir.PrivateKey,
			PublicKey:   cfg.Decidir.PublicKey,
			ValidateKey: cfg.Decidir.ValidateKey,
			Merchant:    cfg.Decidir.Merchant,
		}, nil
	}

	store, err := initSecretManager(ctx, cfg.Secrets, logger)
	if err != nil {
		return nil, err
	}

	creds, err := secrets.LoadCredentials(ctx, store, cfg.Secrets.Path)
	if err != nil {
		return nil, err
	}

	// Environment values win over the stored document
	if cfg.Decidir.PrivateKey != "" {
		creds.PrivateKey = cfg.Decidir.PrivateKey
	}
	if cfg.Decidir.PublicKey != "" {
		creds.PublicKey = cfg.Decidir.PublicKey
	}
	if cfg.Decidir.ValidateKey != "" {
		creds.ValidateKey = cfg.Decidir.ValidateKey
	}
	if cfg.Decidir.Merchant != "" {
		creds.Merchant = cfg.Decidir.Merchant
	}
	return creds, nil
}

// initSecretManager initializes the secret manager selected by SECRETS_BACKEND
func initSecretManager(ctx context.Context, cfg config.SecretsConfig, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	switch cfg.Backend {
	case config.SecretsBackendLocal:
		return secrets.NewLocalSecretManager(cfg.LocalDir, logger), nil

	case config.SecretsBackendAWS:
		awsCfg := secrets.DefaultAWSSecretsManagerConfig(cfg.AWSRegion)
		awsCfg.Profile = cfg.AWSProfile
		awsCfg.Endpoint = cfg.AWSEndpoint
		return secrets.NewAWSSecretsManagerAdapter(ctx, awsCfg, logger)

	case config.SecretsBackendVault:
		vaultCfg := secrets.DefaultVaultConfig(cfg.VaultAddress)
		vaultCfg.AuthMethod = cfg.VaultAuthMethod
		vaultCfg.Token = cfg.VaultToken
		vaultCfg.RoleID = cfg.VaultRoleID
		vaultCfg.SecretID = cfg.VaultSecretID
		vaultCfg.MountPath = cfg.VaultMountPath
		return secrets.NewVaultAdapter(ctx, vaultCfg, logger)

	default:
		return nil, fmt.Errorf("unsupported secrets backend: %s", cfg.Backend)
	}
}

// charsetFor maps the configured charset to a body encoding; nil means UTF-8
func charsetFor(name string) encoding.Encoding {
	if name == "utf-8" {
		return nil
	}
	return charmap.ISO8859_1
}

// newConnector builds the Decidir connector from configuration
func newConnector(cfg config.DecidirConfig, creds *secrets.Credentials, logger *zap.Logger, reg prometheus.Registerer) (*decidir.Connector, error) {
	opts := []decidir.Option{
		decidir.WithTimeout(time.Duration(cfg.Timeout) * time.Second),
		decidir.WithCharset(charsetFor(cfg.Charset)),
		decidir.WithSource(cfg.Grouper, cfg.Developer),
		decidir.WithValidateCredentials(creds.ValidateKey, creds.Merchant),
		decidir.WithLogger(logger),
	}
	if reg != nil {
		opts = append(opts, decidir.WithMetrics(reg))
	}

	if cfg.Host != "" {
		opts = append(opts, decidir.WithEndpoint(cfg.Host, cfg.Path))
	} else {
		env, err := decidir.ParseEnvironment(cfg.Environment)
		if err != nil {
			return nil, err
		}
		opts = append(opts, decidir.WithEnvironment(env))
	}

	return decidir.New(creds.PrivateKey, creds.PublicKey, opts...)
}
