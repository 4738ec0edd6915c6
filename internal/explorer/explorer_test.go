package explorer

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/artifact"
	"github.com/DjordjeVuckovic/ir-explorer/internal/collection"
	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
	"github.com/DjordjeVuckovic/ir-explorer/internal/explorer/explorertest"
	"github.com/DjordjeVuckovic/ir-explorer/internal/runconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, path string, opts Options) (*Explorer, error) {
	t.Helper()
	f, err := runconfig.LoadFromFile(path)
	require.NoError(t, err)
	if opts.Artifacts == nil {
		opts.Artifacts = artifact.NewFileStore()
		opts.LocalArtifacts = true
	}
	return Load(context.Background(), f, opts)
}

func mustLoad(t *testing.T) *Explorer {
	t.Helper()
	e, err := load(t, explorertest.WriteRuns(t), Options{})
	require.NoError(t, err)
	return e
}

func TestLoad(t *testing.T) {
	e := mustLoad(t)

	require.Equal(t, 2, e.RunCount())
	infos := e.RunInfos()
	assert.Equal(t, "classic", infos[0].Name)
	assert.Equal(t, "msmarco", infos[0].Extra["dataset"])
	assert.Nil(t, infos[0].LogLenMix)
	assert.Equal(t, []float64{0.7, 0.3}, infos[1].LogLenMix)

	// runs share the parsed judgments
	assert.Same(t, e.byKey["0"].judgments, e.byKey["1"].judgments)
	assert.Same(t, e.byKey["0"].queries, e.byKey["1"].queries)
}

func TestLoad_ConfigurationErrors(t *testing.T) {
	t.Run("weight vector length differs from kernel count", func(t *testing.T) {
		path := explorertest.WriteRuns(t)
		a := explorertest.ClassicArchive()
		a.Model.Weights[domain.WeightKernel] = []float64{1, 2}
		require.NoError(t, artifact.WriteArchive(filepath.Join(filepath.Dir(path), "classic.cbor.zst"), a))

		_, err := load(t, path, Options{})
		var ce *apperr.ConfigurationError
		require.True(t, errors.As(err, &ce), "got %v", err)
		assert.Equal(t, 0, ce.Run)
		assert.Equal(t, "kernels_mus", ce.Field)
	})

	t.Run("dense run without mean weights", func(t *testing.T) {
		path := explorertest.WriteRuns(t)
		a := explorertest.DenseArchive()
		delete(a.Model.Weights, domain.WeightDenseMean)
		require.NoError(t, artifact.WriteArchive(filepath.Join(filepath.Dir(path), "dense.cbor"), a))

		_, err := load(t, path, Options{})
		var ce *apperr.ConfigurationError
		require.True(t, errors.As(err, &ce), "got %v", err)
		assert.Equal(t, 1, ce.Run)
		assert.Equal(t, "secondary-output", ce.Field)
	})

	t.Run("malformed qrels", func(t *testing.T) {
		path := explorertest.WriteRuns(t)
		explorertest.Overwrite(t, path, "qrels.txt", "q1 0 d1 1\nq1 d2\n")

		_, err := load(t, path, Options{})
		var mi *apperr.MalformedInputError
		require.True(t, errors.As(err, &mi), "got %v", err)
		assert.Equal(t, 2, mi.Line)
	})

	t.Run("store without loader", func(t *testing.T) {
		_, err := load(t, explorertest.WriteRuns(t), Options{Artifacts: storeOnly{}})
		assert.Error(t, err)
	})
}

func TestLoad_ExternalCollection(t *testing.T) {
	docs := collection.Passages{"d1": "replaced text", "d2": "x", "d3": "y"}
	e, err := load(t, explorertest.WriteRuns(t), Options{Collection: docs})
	require.NoError(t, err)

	info, err := e.DocumentInfo(context.Background(), "0", "q1", "d1")
	require.NoError(t, err)
	assert.Equal(t, []string{"replaced", "text"}, info.TokenizedDocument)
}

func TestExplorer_Clusters(t *testing.T) {
	e := mustLoad(t)

	clusters, err := e.Clusters("0")
	require.NoError(t, err)
	require.Len(t, clusters, 2)

	c1 := clusters["c1"]
	require.Len(t, c1.Queries, 2)
	assert.Equal(t, "q1", c1.Queries[0].ID)
	assert.Equal(t, "2", c1.Row["size"])
	assert.Empty(t, clusters["c2"].Queries)

	_, err = e.Clusters("5")
	var le *apperr.LookupError
	assert.True(t, errors.As(err, &le))
}

func TestExplorer_QueryDocuments(t *testing.T) {
	e := mustLoad(t)

	res, err := e.QueryDocuments(context.Background(), "0", "q1")
	require.NoError(t, err)

	require.Len(t, res.Documents, 2)
	assert.Equal(t, "d2", res.Documents[0].ID)
	assert.False(t, res.Documents[0].JudgedRelevant)
	assert.Equal(t, "d1", res.Documents[1].ID)
	assert.True(t, res.Documents[1].JudgedRelevant)

	assert.Equal(t, 0.5, res.Metrics.RR)
	assert.Equal(t, 0.5, res.Metrics.AP)
}

func TestExplorer_QueryDocuments_Metrics(t *testing.T) {
	e := mustLoad(t)
	ctx := context.Background()

	// q1 ranks d2 above d1, the only relevant document.
	res, err := e.QueryDocuments(ctx, "1", "q1")
	require.NoError(t, err)

	m := res.Metrics
	assert.InDelta(t, 0.5, m.RR, 1e-9)
	assert.InDelta(t, 0.5, m.AP, 1e-9)

	discounted := 1 / math.Log2(3)
	assert.InDelta(t, 0.0, m.NDCG[1], 1e-9)
	assert.InDelta(t, discounted, m.NDCG[5], 1e-9)
	assert.InDelta(t, discounted, m.NDCG[10], 1e-9)

	assert.InDelta(t, 0.0, m.Precision[1], 1e-9)
	assert.InDelta(t, 0.2, m.Precision[5], 1e-9)
	assert.InDelta(t, 0.1, m.Precision[10], 1e-9)

	assert.InDelta(t, 0.0, m.Recall[1], 1e-9)
	assert.InDelta(t, 1.0, m.Recall[5], 1e-9)
	assert.InDelta(t, 1.0, m.Recall[10], 1e-9)

	// q2 is judged but has no relevant documents.
	res, err = e.QueryDocuments(ctx, "1", "q2")
	require.NoError(t, err)
	require.Len(t, res.Documents, 1)
	assert.Zero(t, res.Metrics.RR)
	assert.Zero(t, res.Metrics.AP)
	for _, k := range []int{1, 5, 10} {
		assert.Zero(t, res.Metrics.NDCG[k], "ndcg@%d", k)
		assert.Zero(t, res.Metrics.Recall[k], "recall@%d", k)
	}
}

func TestExplorer_DocumentInfo(t *testing.T) {
	e := mustLoad(t)
	ctx := context.Background()

	t.Run("classic", func(t *testing.T) {
		info, err := e.DocumentInfo(ctx, "0", "q1", "d1")
		require.NoError(t, err)
		assert.Equal(t, 6.0, info.ValLog.Total)
		assert.Equal(t, 3.0, info.ValLog.TailTotal)
		assert.Nil(t, info.ValLen)
		assert.Equal(t, []string{"kernel", "pooling"}, info.TokenizedQuery)
		assert.Equal(t, []string{"kernel", "pooling", "works"}, info.TokenizedDocument)
		assert.Equal(t, [][]float64{{0.9, 0.2}, {0.5, 1}, {0.1, 0}}, info.Matches)
	})

	t.Run("dense", func(t *testing.T) {
		info, err := e.DocumentInfo(ctx, "1", "q1", "d1")
		require.NoError(t, err)
		assert.Equal(t, 3.25, info.ValLog.Total)
		assert.Equal(t, 1.25, info.ValLog.TailTotal)
		require.NotNil(t, info.ValLen)
		assert.Equal(t, 0.3, info.ValLen.Total)
	})

	t.Run("judged query without relevant documents", func(t *testing.T) {
		info, err := e.DocumentInfo(ctx, "0", "q2", "d3")
		require.NoError(t, err)
		assert.False(t, info.JudgedRelevant)
	})

	lookups := []struct {
		name, run, qid, did, kind string
	}{
		{"unknown run", "9", "q1", "d1", "run"},
		{"unknown query", "0", "q9", "d1", "query"},
		{"unknown document", "0", "q1", "d9", "document"},
	}
	for _, tt := range lookups {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.DocumentInfo(ctx, tt.run, tt.qid, tt.did)
			var le *apperr.LookupError
			require.True(t, errors.As(err, &le), "got %v", err)
			assert.Equal(t, tt.kind, le.Kind)
		})
	}
}

type storeOnly struct{ artifact.Store }
