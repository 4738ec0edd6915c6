package backend

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/ir-explorer/internal/artifact"
	artifactpg "github.com/DjordjeVuckovic/ir-explorer/internal/artifact/pg"
	"github.com/DjordjeVuckovic/ir-explorer/internal/collection/es"
	"github.com/DjordjeVuckovic/ir-explorer/internal/explorer"
	pkgserver "github.com/DjordjeVuckovic/ir-explorer/pkg/server"
)

// Backends are the opened stores, ready to be passed to explorer.Load.
type Backends struct {
	Options explorer.Options
	Health  *pkgserver.CompositeHealthChecker

	closers []func()
}

func (b *Backends) Close() {
	for _, c := range b.closers {
		c()
	}
}

// Open connects the configured backends. maxDocChars bounds texts read from
// an external collection.
func Open(ctx context.Context, cfg *Config, maxDocChars int) (*Backends, error) {
	b := &Backends{Health: pkgserver.NewCompositeHealthChecker()}

	switch cfg.Artifacts {
	case PG:
		pool, err := artifactpg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		b.closers = append(b.closers, pool.Close)
		b.Options.Artifacts = artifactpg.NewStore(pool)
		b.Health.Add(artifactpg.NewHealthChecker(pool))
	case File, "":
		b.Options.Artifacts = artifact.NewFileStore()
		b.Options.LocalArtifacts = true
	default:
		return nil, fmt.Errorf("unsupported artifact storage: %s", cfg.Artifacts)
	}

	switch cfg.Collection {
	case ES:
		src, err := es.NewSource(*cfg.Es, maxDocChars)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Options.Collection = src
		b.Health.Add(src)
	case File, "":
	default:
		b.Close()
		return nil, fmt.Errorf("unsupported collection source: %s", cfg.Collection)
	}

	return b, nil
}
