package env

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file at ENV_PATH, or
// defaultPath when ENV_PATH is unset. A missing file is only an error in
// local mode (env "local" or empty). Variables already set are kept.
func LoadDotEnv(env string, defaultPath string) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
	}

	if err := godotenv.Load(envPath); err != nil {
		if env == "local" || env == "" {
			return err
		}
		slog.Debug("Skipping .env ...", "path", envPath)
	}

	return nil
}

func GetOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetBool parses key with strconv.ParseBool; unset or invalid values yield def.
func GetBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
