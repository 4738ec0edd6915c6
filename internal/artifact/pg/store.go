// Package pg serves run artifacts from Postgres. A run's secondary output
// names its run_key.
package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/artifact"
	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Store maps route run keys to run_key values and reads artifacts on demand.
// Model weights are read once at load time.
type Store struct {
	pool *ConnectionPool

	mu     sync.RWMutex
	keys   map[string]string
	models map[string]*domain.ModelWeights
}

var _ artifact.Store = (*Store)(nil)

func NewStore(pool *ConnectionPool) *Store {
	return &Store{
		pool:   pool,
		keys:   make(map[string]string),
		models: make(map[string]*domain.ModelWeights),
	}
}

func (s *Store) Load(ctx context.Context, run, runKey string) error {
	model, err := s.readModel(ctx, runKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.keys[run] = runKey
	s.models[run] = model
	s.mu.Unlock()

	slog.Info("Artifacts attached", "run", run, "run_key", runKey, "groups", len(model.Weights))
	return nil
}

func (s *Store) readModel(ctx context.Context, runKey string) (*domain.ModelWeights, error) {
	rows, err := s.pool.GetConn().Query(ctx,
		`SELECT group_name, weights, bias FROM run_models WHERE run_key = $1`, runKey)
	if err != nil {
		return nil, fmt.Errorf("query model %s: %w", runKey, err)
	}
	defer rows.Close()

	model := &domain.ModelWeights{
		Weights: make(map[string][]float64),
		Biases:  make(map[string]float64),
	}
	for rows.Next() {
		var (
			group   string
			weights []float64
			bias    *float64
		)
		if err := rows.Scan(&group, &weights, &bias); err != nil {
			return nil, fmt.Errorf("scan model %s: %w", runKey, err)
		}
		model.Weights[group] = weights
		if bias != nil {
			model.Biases[group] = *bias
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read model %s: %w", runKey, err)
	}
	if len(model.Weights) == 0 {
		return nil, apperr.NewLookup("run key", runKey)
	}
	return model, nil
}

func (s *Store) runKey(run string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.keys[run]
	if !ok {
		return "", apperr.NewLookup("run", run)
	}
	return key, nil
}

func (s *Store) Model(_ context.Context, run string) (*domain.ModelWeights, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.models[run]
	if !ok {
		return nil, apperr.NewLookup("run", run)
	}
	return m, nil
}

const artifactColumns = `did, score, similarity, per_kernel, per_kernel_mean`

func scanArtifact(row pgx.Row) (string, domain.Artifact, error) {
	var (
		did string
		a   domain.Artifact
	)
	err := row.Scan(&did, &a.Score, &a.Similarity, &a.PerKernel, &a.PerKernelMean)
	return did, a, err
}

func (s *Store) Artifact(ctx context.Context, run, qid, did string) (domain.Artifact, error) {
	key, err := s.runKey(run)
	if err != nil {
		return domain.Artifact{}, err
	}

	row := s.pool.GetConn().QueryRow(ctx,
		`SELECT `+artifactColumns+` FROM qd_artifacts WHERE run_key = $1 AND qid = $2 AND did = $3`,
		key, qid, did)
	_, a, err := scanArtifact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, qerr := s.Documents(ctx, run, qid); qerr != nil {
			return domain.Artifact{}, qerr
		}
		return domain.Artifact{}, apperr.NewLookup("document", did)
	}
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("query artifact: %w", err)
	}
	return a, nil
}

func (s *Store) Documents(ctx context.Context, run, qid string) (map[string]domain.Artifact, error) {
	key, err := s.runKey(run)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.GetConn().Query(ctx,
		`SELECT `+artifactColumns+` FROM qd_artifacts WHERE run_key = $1 AND qid = $2`, key, qid)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := make(map[string]domain.Artifact)
	for rows.Next() {
		did, a, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		docs[did] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, apperr.NewLookup("query", qid)
	}
	return docs, nil
}

func (s *Store) Queries(ctx context.Context, run string) ([]string, error) {
	key, err := s.runKey(run)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.GetConn().Query(ctx,
		`SELECT DISTINCT qid FROM qd_artifacts WHERE run_key = $1 ORDER BY qid`, key)
	if err != nil {
		return nil, fmt.Errorf("query evaluated queries: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("read evaluated queries: %w", err)
	}
	return ids, nil
}

// Import writes an archive under runKey, replacing existing rows.
func (s *Store) Import(ctx context.Context, runKey string, a *artifact.Archive) error {
	tx, err := s.pool.GetConn().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range []string{
		`DELETE FROM run_models WHERE run_key = $1`,
		`DELETE FROM qd_artifacts WHERE run_key = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, runKey); err != nil {
			return fmt.Errorf("clear run %s: %w", runKey, err)
		}
	}

	for group, weights := range a.Model.Weights {
		if _, err := tx.Exec(ctx,
			`INSERT INTO run_models (run_key, group_name, weights, bias) VALUES ($1, $2, $3, $4)`,
			runKey, group, weights, a.Model.Bias(group)); err != nil {
			return fmt.Errorf("insert weights %s: %w", group, err)
		}
	}

	var rows [][]any
	for qid, docs := range a.QD {
		for did, art := range docs {
			rows = append(rows, []any{runKey, qid, did, art.Score, art.Similarity, art.PerKernel, art.PerKernelMean})
		}
	}
	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"qd_artifacts"},
		[]string{"run_key", "qid", "did", "score", "similarity", "per_kernel", "per_kernel_mean"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy artifacts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	slog.Info("Artifacts imported", "run_key", runKey, "pairs", n)
	return nil
}
