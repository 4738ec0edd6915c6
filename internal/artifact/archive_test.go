package artifact

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleArchive() *Archive {
	return &Archive{
		Model: domain.ModelWeights{
			Weights: map[string][]float64{
				domain.WeightKernel: {0.5, -0.25},
			},
			Biases: map[string]float64{domain.WeightKernel: 0.1},
		},
		QD: map[string]map[string]domain.Artifact{
			"q1": {
				"d1": {
					Score:      1.5,
					Similarity: [][]float64{{1, 0.5, 0}, {0.2, 0.3, 0}},
					PerKernel:  []float64{2, 1},
				},
				"d2": {Score: 0.5, Similarity: [][]float64{{0.1}}, PerKernel: []float64{0, 0}},
			},
			"q2": {},
		},
	}
}

func TestArchive_RoundTripFiles(t *testing.T) {
	for _, name := range []string{"run.cbor", "run.cbor.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			want := sampleArchive()

			require.NoError(t, WriteArchive(path, want))

			got, err := ReadArchive(path)
			require.NoError(t, err)
			assert.Equal(t, want.Model, got.Model)
			assert.Equal(t, want.QD["q1"], got.QD["q1"])
			assert.Equal(t, 2, got.PairCount())
		})
	}
}

func TestArchive_CompressedIsSmaller(t *testing.T) {
	a := sampleArchive()
	docs := a.QD["q1"]
	for i := 0; i < 200; i++ {
		docs[strings.Repeat("d", i+3)] = docs["d1"]
	}

	dir := t.TempDir()
	plain := filepath.Join(dir, "run.cbor")
	packed := filepath.Join(dir, "run.cbor.zst")
	require.NoError(t, WriteArchive(plain, a))
	require.NoError(t, WriteArchive(packed, a))

	ps, err := os.Stat(plain)
	require.NoError(t, err)
	zs, err := os.Stat(packed)
	require.NoError(t, err)
	assert.Less(t, zs.Size(), ps.Size())
}

func TestReadArchive_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.cbor")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0x00, 0x13}, 0644))

	_, err := ReadArchive(path)

	var mi *apperr.MalformedInputError
	require.True(t, errors.As(err, &mi))
	assert.Equal(t, path, mi.Source)
}

func TestDecodeArchive_RequiresModel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeArchive(&buf, &Archive{}))

	_, err := DecodeArchive(&buf)
	assert.ErrorIs(t, err, ErrEmptyArchive)
}

func TestReadJSONArchive(t *testing.T) {
	input := `{
		"model_data": {"weights": {"dense_weight": [1, 2], "dense_mean_weight": [3, 4]}},
		"qd_data": {"q1": {"d1": {"score": 2.5, "cosine_matrix_masked": [[0.9]], "per_kernel": [1, 0], "per_kernel_mean": [0.5, 0]}}}
	}`

	a, err := ReadJSONArchive(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, a.Model.Weights[domain.WeightDenseLog])
	assert.Equal(t, []float64{0.5, 0}, a.QD["q1"]["d1"].PerKernelMean)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "run.cbor")
	require.NoError(t, WriteArchive(path, sampleArchive()))

	s := NewFileStore()
	require.NoError(t, s.Load(ctx, "0", path))

	t.Run("model", func(t *testing.T) {
		m, err := s.Model(ctx, "0")
		require.NoError(t, err)
		assert.Equal(t, 0.1, *m.Bias(domain.WeightKernel))
	})

	t.Run("artifact", func(t *testing.T) {
		a, err := s.Artifact(ctx, "0", "q1", "d1")
		require.NoError(t, err)
		assert.Equal(t, 1.5, a.Score)
	})

	t.Run("queries with artifacts only", func(t *testing.T) {
		ids, err := s.Queries(ctx, "0")
		require.NoError(t, err)
		assert.Equal(t, []string{"q1"}, ids)
	})

	t.Run("documents", func(t *testing.T) {
		docs, err := s.Documents(ctx, "0", "q1")
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	lookups := []struct {
		name string
		call func() error
		kind string
	}{
		{"unknown run", func() error { _, err := s.Model(ctx, "9"); return err }, "run"},
		{"unknown query", func() error { _, err := s.Artifact(ctx, "0", "qx", "d1"); return err }, "query"},
		{"unknown document", func() error { _, err := s.Artifact(ctx, "0", "q1", "dx"); return err }, "document"},
		{"documents of unknown query", func() error { _, err := s.Documents(ctx, "0", "qx"); return err }, "query"},
	}
	for _, tt := range lookups {
		t.Run(tt.name, func(t *testing.T) {
			var le *apperr.LookupError
			require.True(t, errors.As(tt.call(), &le))
			assert.Equal(t, tt.kind, le.Kind)
		})
	}
}
