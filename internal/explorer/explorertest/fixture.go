// Package explorertest writes a small two-run workspace for tests.
package explorertest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/ir-explorer/internal/artifact"
	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
)

// Run 0 is a classic model, run 1 a dense one. Both share qrels, queries
// and collection. Query q1 has d2 (score 3) ranked above the relevant d1
// (score 2). q2 is judged without relevant documents, q3 has no artifacts.
const runFile = `
max-doc-char-length: 1000
runs:
  - run-info:
      name: classic
      score_type: knrm
      kernels_mus: [1.0, 0.5, 0.0]
      rest-kernels-last: 1
      dataset: msmarco
    qrels: qrels.txt
    cluster-stats: clusters.csv
    queries: queries.csv
    collection: collection.tsv
    secondary-output: classic.cbor.zst
  - run-info:
      name: dense
      score_type: tk
      kernels_mus: [1.0, 0.5, 0.0]
      rest-kernels-last: 1
    qrels: qrels.txt
    cluster-stats: clusters.csv
    queries: queries.csv
    collection: collection.tsv
    secondary-output: dense.cbor
`

var files = map[string]string{
	"qrels.txt":      "q1 0 d1 1\nq1 0 d2 0\nq2 0 d3 0\n",
	"clusters.csv":   "cluster,size\nc1,2\nc2,1\n",
	"queries.csv":    "qid,text,cluster,difficulty\nq1,kernel pooling,c1,easy\nq2,neural ranking,c1,hard\nq3,unseen query,c2,hard\n",
	"collection.tsv": "0\td1\t-\tkernel pooling works\n1\td2\t-\tpooling\n2\td3\t-\tranking models\n",
}

func pairs() map[string]map[string]domain.Artifact {
	sim := [][]float64{{0.9, 0.5, 0.1}, {0.2, 1, 0}}
	return map[string]map[string]domain.Artifact{
		"q1": {
			"d1": {Score: 2, Similarity: sim, PerKernel: []float64{1, 1, 1}, PerKernelMean: []float64{0.2, 0.2, 0.2}},
			"d2": {Score: 3, Similarity: sim, PerKernel: []float64{2, 0, 1}, PerKernelMean: []float64{0.4, 0, 0.2}},
		},
		"q2": {
			"d3": {Score: 1, Similarity: sim, PerKernel: []float64{0, 1, 0}, PerKernelMean: []float64{0, 0.5, 0}},
		},
	}
}

// ClassicArchive is the artifact archive of run 0.
func ClassicArchive() *artifact.Archive {
	return &artifact.Archive{
		Model: domain.ModelWeights{
			Weights: map[string][]float64{domain.WeightKernel: {1, 2, 3}},
		},
		QD: pairs(),
	}
}

// DenseArchive is the artifact archive of run 1.
func DenseArchive() *artifact.Archive {
	return &artifact.Archive{
		Model: domain.ModelWeights{
			Weights: map[string][]float64{
				domain.WeightDenseLog:   {1, 1, 1},
				domain.WeightDenseMean:  {0.5, 0.5, 0.5},
				domain.WeightLogLenMix: {0.7, 0.3},
			},
			Biases: map[string]float64{domain.WeightDenseLog: 0.25},
		},
		QD: pairs(),
	}
}

// WriteRuns creates the workspace in a temp dir and returns the run file path.
func WriteRuns(tb testing.TB) string {
	tb.Helper()
	dir := tb.TempDir()

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			tb.Fatalf("write %s: %v", name, err)
		}
	}
	if err := artifact.WriteArchive(filepath.Join(dir, "classic.cbor.zst"), ClassicArchive()); err != nil {
		tb.Fatalf("write classic archive: %v", err)
	}
	if err := artifact.WriteArchive(filepath.Join(dir, "dense.cbor"), DenseArchive()); err != nil {
		tb.Fatalf("write dense archive: %v", err)
	}

	path := filepath.Join(dir, "runs.yaml")
	if err := os.WriteFile(path, []byte(runFile), 0644); err != nil {
		tb.Fatalf("write run file: %v", err)
	}
	return path
}

// Overwrite replaces one file of the workspace next to the run file.
func Overwrite(tb testing.TB, runFilePath, name, content string) {
	tb.Helper()
	if err := os.WriteFile(filepath.Join(filepath.Dir(runFilePath), name), []byte(content), 0644); err != nil {
		tb.Fatalf("write %s: %v", name, err)
	}
}
