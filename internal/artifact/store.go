package artifact

import (
	"context"

	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
)

// Store resolves the artifacts of loaded runs. Implementations return an
// apperr.LookupError for unknown keys.
type Store interface {
	Model(ctx context.Context, run string) (*domain.ModelWeights, error)
	Artifact(ctx context.Context, run, qid, did string) (domain.Artifact, error)
	// Documents returns the artifacts of every document evaluated for qid.
	Documents(ctx context.Context, run, qid string) (map[string]domain.Artifact, error)
	// Queries returns the ids of queries that have at least one artifact.
	Queries(ctx context.Context, run string) ([]string, error)
}

// Loader is implemented by stores that must be told where a run's data lives.
type Loader interface {
	Load(ctx context.Context, run, source string) error
}
