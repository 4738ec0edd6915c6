package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNDCGAtK(t *testing.T) {
	tests := []struct {
		name      string
		ranked    []string
		judgments map[string]int
		k         int
		want      float64
	}{
		{name: "empty ranked list", ranked: nil, judgments: map[string]int{"a": 1}, k: 5, want: 0},
		{name: "empty judgments", ranked: []string{"a", "b"}, judgments: map[string]int{}, k: 5, want: 0},
		{name: "k=0", ranked: []string{"a"}, judgments: map[string]int{"a": 1}, k: 0, want: 0},
		{name: "relevant at top", ranked: []string{"a", "b", "c"}, judgments: map[string]int{"a": 1}, k: 3, want: 1},
		{name: "relevant second", ranked: []string{"b", "a"}, judgments: map[string]int{"a": 1}, k: 2, want: 1 / 1.584962500721156},
		{name: "graded swapped", ranked: []string{"b", "a"}, judgments: map[string]int{"a": 2, "b": 1}, k: 2, want: (1 + 3/1.584962500721156) / (3 + 1/1.584962500721156)},
		{name: "k beyond ranking", ranked: []string{"a"}, judgments: map[string]int{"a": 1, "b": 1}, k: 10, want: 1 / (1 + 1/1.584962500721156)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NDCGAtK(tt.ranked, tt.judgments, tt.k), 1e-9)
		})
	}
}

func TestPrecisionAndRecallAtK(t *testing.T) {
	ranked := []string{"a", "b", "c", "d"}
	judgments := map[string]int{"a": 1, "c": 1, "z": 1}

	assert.InDelta(t, 0.5, PrecisionAtK(ranked, judgments, 4, RelevanceThreshold), 1e-9)
	assert.InDelta(t, 2.0/3.0, RecallAtK(ranked, judgments, 4, RelevanceThreshold), 1e-9)
	// divided by k, not by the shorter ranking
	assert.InDelta(t, 0.2, PrecisionAtK(ranked[:2], judgments, 5, RelevanceThreshold), 1e-9)
	assert.Zero(t, RecallAtK(ranked, map[string]int{}, 4, RelevanceThreshold))
}

func TestAveragePrecision(t *testing.T) {
	ranked := []string{"a", "x", "b"}
	judgments := map[string]int{"a": 1, "b": 1}

	// precision at relevant positions: 1/1 and 2/3
	assert.InDelta(t, (1.0+2.0/3.0)/2.0, AveragePrecision(ranked, judgments, RelevanceThreshold), 1e-9)
	assert.Zero(t, AveragePrecision(nil, judgments, RelevanceThreshold))
}

func TestReciprocalRank(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, ReciprocalRank([]string{"x", "y", "a"}, map[string]int{"a": 1}, RelevanceThreshold), 1e-9)
	assert.Zero(t, ReciprocalRank([]string{"x"}, map[string]int{}, RelevanceThreshold))
}

func TestComputeAll(t *testing.T) {
	ranked := []string{"a", "b", "c"}
	judgments := map[string]int{"a": 1, "b": 1, "c": 1}

	scores := ComputeAll(ranked, judgments, DefaultKValues, RelevanceThreshold)

	assert.InDelta(t, 1.0, scores.NDCG[1], 1e-9)
	assert.InDelta(t, 1.0, scores.Precision[1], 1e-9)
	assert.InDelta(t, 1.0, scores.Recall[10], 1e-9)
	assert.InDelta(t, 1.0, scores.AP, 1e-9)
	assert.InDelta(t, 1.0, scores.RR, 1e-9)
	assert.Contains(t, scores.NDCG, 5)
}
