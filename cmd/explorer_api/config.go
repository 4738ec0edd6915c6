package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/ir-explorer/internal/backend"
	"github.com/DjordjeVuckovic/ir-explorer/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type ExplorerConfig struct {
	RunConfigPath string
	Backend       backend.Config
}

func (as *AppConfig) Load() (*ExplorerConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/explorer_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	runConfig := os.Getenv("RUN_CONFIG")
	if runConfig == "" {
		return nil, errors.New("RUN_CONFIG environment variable is not set")
	}

	backendCfg, err := backend.LoadEnv()
	if err != nil {
		slog.Error("Failed to load backend configuration from environment", "error", err)
		return nil, err
	}

	return &ExplorerConfig{
		RunConfigPath: runConfig,
		Backend:       *backendCfg,
	}, nil
}
