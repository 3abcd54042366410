package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"chatpool/internal/adapters/platform/rest"
	tomlrepo "chatpool/internal/adapters/repo/toml"
	chainstore "chatpool/internal/adapters/secrets/chain"
	"chatpool/internal/application"
	"chatpool/internal/ports"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	accounts    ports.AccountRepository
	secretStore ports.SecretStore
	gateway     ports.SessionGateway

	verbose bool
	logger  *zap.Logger
}

func wireApp() (*app, error) {
	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire account repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(filepath.Join(homeDir, ".chatpool", "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	baseURL := envOrDefault("CHATPOOL_BASE_URL", "https://discord.com/api/v9")
	gateway := rest.NewGateway(baseURL, &http.Client{Timeout: 30 * time.Second})

	return &app{
		accounts:    repo,
		secretStore: secretStore,
		gateway:     gateway,
	}, nil
}

// service builds the operation service lazily so flag values (verbosity,
// pacing overrides) are in effect by the time a command runs.
func (a *app) service(cfg application.Config) (*application.Service, error) {
	logger, err := a.buildLogger()
	if err != nil {
		return nil, err
	}

	return application.NewService(a.gateway, a.secretStore, ports.SystemClock{}, logger, cfg), nil
}

func (a *app) buildLogger() (*zap.Logger, error) {
	if a.logger != nil {
		return a.logger, nil
	}

	level := parseLogLevel(envOrDefault("CHATPOOL_LOG_LEVEL", "info"))
	if a.verbose {
		level = zap.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = "console"
	config.EncoderConfig.TimeKey = "ts"

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	a.logger = logger
	return logger, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
