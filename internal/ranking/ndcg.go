package ranking

import (
	"math"
	"slices"
)

// NDCGAtK divides the DCG of the first k ranked documents by the DCG of the
// ideal ordering of the judged grades. A grade g contributes 2^g - 1.
func NDCGAtK(ranked []string, judgments map[string]int, k int) float64 {
	if k <= 0 || len(ranked) == 0 || len(judgments) == 0 {
		return 0
	}

	top := ranked[:min(k, len(ranked))]
	grades := make([]int, len(top))
	for i, did := range top {
		grades[i] = judgments[did]
	}

	ideal := make([]int, 0, len(judgments))
	for _, g := range judgments {
		if g > 0 {
			ideal = append(ideal, g)
		}
	}
	slices.SortFunc(ideal, func(a, b int) int { return b - a })
	ideal = ideal[:min(k, len(ideal))]

	idcg := discountedGain(ideal)
	if idcg == 0 {
		return 0
	}
	return discountedGain(grades) / idcg
}

// discountedGain sums the gains of grades discounted by log2(rank+1).
// Unjudged and non-positive grades add nothing.
func discountedGain(grades []int) float64 {
	var sum float64
	for i, g := range grades {
		if g <= 0 {
			continue
		}
		sum += (math.Exp2(float64(g)) - 1) / math.Log2(float64(i+2))
	}
	return sum
}
