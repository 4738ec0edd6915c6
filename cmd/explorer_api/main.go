// Package main IR Explorer API
// @title IR Explorer API
// @version 1.0
// @description Explains kernel-pooling relevance scores of evaluated query/document pairs
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/ir-explorer/internal/backend"
	"github.com/DjordjeVuckovic/ir-explorer/internal/explorer"
	"github.com/DjordjeVuckovic/ir-explorer/internal/router"
	"github.com/DjordjeVuckovic/ir-explorer/internal/runconfig"
	"github.com/DjordjeVuckovic/ir-explorer/internal/server"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	runFile, err := runconfig.LoadFromFile(cfg.RunConfigPath)
	if err != nil {
		slog.Error("Failed to load run configuration", "path", cfg.RunConfigPath, "error", err)
		os.Exit(1)
	}

	backends, err := backend.Open(context.Background(), &cfg.Backend, runFile.MaxDocCharLength)
	if err != nil {
		slog.Error("Failed to open backends", "error", err)
		os.Exit(1)
	}
	defer backends.Close()

	s := server.New(sCfg, backends.Health).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*").
		SetupMetrics("/metrics").
		SetupStatic()

	exp, err := explorer.Load(s.Context(), runFile, backends.Options)
	if err != nil {
		slog.Error("Failed to load runs", "error", err)
		backends.Close()
		os.Exit(1)
	}

	router.NewExplorerRouter(s.Echo, exp).Bind()
	slog.Info("Explorer ready", "runs", exp.RunCount(), "port", sCfg.Port)

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		backends.Close()
		os.Exit(1)
	}
}
