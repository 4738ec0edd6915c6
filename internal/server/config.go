package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/ir-explorer/pkg/config/env"
	"github.com/DjordjeVuckovic/ir-explorer/pkg/utils"
)

const defaultEnvPath = "cmd/explorer_api/.env"

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
	// StaticDir holds index.html and the dist/ bundle of the web UI.
	StaticDir string
}

func LoadConfig() (*Config, error) {
	if err := env.LoadDotEnv(os.Getenv("ENV"), defaultEnvPath); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	useHttp2 := env.GetBool("USE_HTTP2", false)
	port := env.GetOrDefault("PORT", "8080")

	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := utils.SplitList(os.Getenv("CORS_ORIGINS"), ",")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Config{
		Port:        port,
		UseHttp2:    useHttp2,
		CorsOrigins: origins,
		StaticDir:   os.Getenv("STATIC_DIR"),
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
