//go:build integration

package pg

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/artifact"
	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
	pkgtesting "github.com/DjordjeVuckovic/ir-explorer/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var (
	testCtx  context.Context
	testPool *ConnectionPool
)

func TestMain(m *testing.M) {
	testCtx = context.Background()

	pg, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.DefaultPGConfig)
	if err != nil {
		panic(err)
	}

	testPool, err = NewConnectionPool(testCtx, PoolConfig{ConnStr: pg.ConnString})
	if err != nil {
		_ = testcontainers.TerminateContainer(pg.Container)
		panic(err)
	}

	code := m.Run()

	testPool.Close()
	_ = testcontainers.TerminateContainer(pg.Container)
	os.Exit(code)
}

func importSample(t *testing.T, runKey string) *Store {
	t.Helper()

	a := &artifact.Archive{
		Model: domain.ModelWeights{
			Weights: map[string][]float64{
				domain.WeightDenseLog:  {0.5, 1.5},
				domain.WeightDenseMean: {2, 3},
			},
			Biases: map[string]float64{domain.WeightDenseLog: -0.5},
		},
		QD: map[string]map[string]domain.Artifact{
			"q1": {
				"d1": {Score: 3.25, Similarity: [][]float64{{0.9, 0.1}}, PerKernel: []float64{1, 2}, PerKernelMean: []float64{0.1, 0.2}},
				"d2": {Score: 1.5, Similarity: [][]float64{{0.2}}, PerKernel: []float64{0, 1}},
			},
		},
	}

	s := NewStore(testPool)
	require.NoError(t, s.Import(testCtx, runKey, a))
	require.NoError(t, s.Load(testCtx, "0", runKey))
	return s
}

func TestStore_Model(t *testing.T) {
	s := importSample(t, "model-run")

	m, err := s.Model(testCtx, "0")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5}, m.Weights[domain.WeightDenseLog])
	assert.Equal(t, -0.5, *m.Bias(domain.WeightDenseLog))
	assert.Nil(t, m.Bias(domain.WeightDenseMean))
}

func TestStore_Artifacts(t *testing.T) {
	s := importSample(t, "artifact-run")

	a, err := s.Artifact(testCtx, "0", "q1", "d1")
	require.NoError(t, err)
	assert.Equal(t, 3.25, a.Score)
	assert.Equal(t, [][]float64{{0.9, 0.1}}, a.Similarity)
	assert.Equal(t, []float64{0.1, 0.2}, a.PerKernelMean)

	docs, err := s.Documents(testCtx, "0", "q1")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Nil(t, docs["d2"].PerKernelMean)

	ids, err := s.Queries(testCtx, "0")
	require.NoError(t, err)
	assert.Equal(t, []string{"q1"}, ids)
}

func TestStore_Lookups(t *testing.T) {
	s := importSample(t, "lookup-run")

	tests := []struct {
		name string
		err  error
		kind string
	}{
		{"unknown document", func() error { _, err := s.Artifact(testCtx, "0", "q1", "dx"); return err }(), "document"},
		{"unknown query", func() error { _, err := s.Artifact(testCtx, "0", "qx", "d1"); return err }(), "query"},
		{"unknown run", func() error { _, err := s.Documents(testCtx, "7", "q1"); return err }(), "run"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var le *apperr.LookupError
			require.True(t, errors.As(tt.err, &le), "got %v", tt.err)
			assert.Equal(t, tt.kind, le.Kind)
		})
	}

	err := NewStore(testPool).Load(testCtx, "1", "missing-run")
	var le *apperr.LookupError
	assert.True(t, errors.As(err, &le))
}

func TestHealthChecker(t *testing.T) {
	assert.True(t, NewHealthChecker(testPool).Healthy(testCtx))
	assert.False(t, NewHealthChecker(nil).Healthy(testCtx))
}
