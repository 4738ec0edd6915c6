// Package backend selects where run artifacts and collection texts are
// read from, based on the environment.
package backend

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	artifactpg "github.com/DjordjeVuckovic/ir-explorer/internal/artifact/pg"
	"github.com/DjordjeVuckovic/ir-explorer/internal/collection/es"
	"github.com/DjordjeVuckovic/ir-explorer/pkg/utils"
)

type Type string

const (
	File Type = "file"
	PG   Type = "pg"
	ES   Type = "es"
)

type Config struct {
	Artifacts  Type
	Collection Type
	Pg         *artifactpg.PoolConfig
	Es         *es.ClientConfig
}

// LoadEnv reads STORAGE_TYPE (file|pg) and COLLECTION_SOURCE (file|es).
// Both default to file.
func LoadEnv() (*Config, error) {
	artifacts := Type(os.Getenv("STORAGE_TYPE"))
	if artifacts == "" {
		artifacts = File
	}
	if artifacts != File && artifacts != PG {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", artifacts)
		return nil, fmt.Errorf("invalid STORAGE_TYPE value: %s, expected one of %v", artifacts, []Type{File, PG})
	}

	coll := Type(os.Getenv("COLLECTION_SOURCE"))
	if coll == "" {
		coll = File
	}
	if coll != File && coll != ES {
		slog.Error("Invalid COLLECTION_SOURCE environment variable value", "value", coll)
		return nil, fmt.Errorf("invalid COLLECTION_SOURCE value: %s, expected one of %v", coll, []Type{File, ES})
	}

	cfg := &Config{Artifacts: artifacts, Collection: coll}

	if artifacts == PG {
		cfg.Pg = &artifactpg.PoolConfig{ConnStr: os.Getenv("PG_CONNECTION_STRING")}
		if cfg.Pg.ConnStr == "" {
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
		maxConns, err := intEnv("PG_MAX_CONNS")
		if err != nil {
			return nil, err
		}
		cfg.Pg.MaxConns = int32(maxConns)
	}

	if coll == ES {
		esCfg, err := LoadESEnv()
		if err != nil {
			return nil, err
		}
		cfg.Es = esCfg
	}

	return cfg, nil
}

// LoadESEnv reads the Elasticsearch client settings.
func LoadESEnv() (*es.ClientConfig, error) {
	esCfg := &es.ClientConfig{
		Addresses: utils.SplitList(os.Getenv("ES_ADDRESSES"), ","),
		IndexName: os.Getenv("ES_INDEX_NAME"),
		Username:  os.Getenv("ES_USERNAME"),
		Password:  os.Getenv("ES_PASSWORD"),
		APIKey:    os.Getenv("ES_API_KEY"),
	}
	maxRetries, err := intEnv("ES_MAX_RETRIES")
	if err != nil {
		return nil, err
	}
	esCfg.MaxRetries = maxRetries
	if len(esCfg.Addresses) == 0 || esCfg.IndexName == "" {
		slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses, "indexName", esCfg.IndexName)
		return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
	}
	return esCfg, nil
}

// intEnv parses an optional non-negative integer variable; unset is 0.
func intEnv(key string) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s value %q: expected a non-negative integer", key, raw)
	}
	return int(n), nil
}
