package ranking

// hitRanks returns the 1-based positions of the relevant documents in ranked.
func hitRanks(ranked []string, judgments map[string]int, relevanceThreshold int) []int {
	var hits []int
	for i, did := range ranked {
		if judgments[did] >= relevanceThreshold {
			hits = append(hits, i+1)
		}
	}
	return hits
}

// AveragePrecision averages the precision at every relevant position over
// all relevant documents, retrieved or not.
func AveragePrecision(ranked []string, judgments map[string]int, relevanceThreshold int) float64 {
	total := countRelevant(judgments, relevanceThreshold)
	if total == 0 {
		return 0
	}

	var sum float64
	for seen, rank := range hitRanks(ranked, judgments, relevanceThreshold) {
		sum += float64(seen+1) / float64(rank)
	}
	return sum / float64(total)
}

// ReciprocalRank is 1/rank of the first relevant document, 0 when none is ranked.
func ReciprocalRank(ranked []string, judgments map[string]int, relevanceThreshold int) float64 {
	hits := hitRanks(ranked, judgments, relevanceThreshold)
	if len(hits) == 0 {
		return 0
	}
	return 1 / float64(hits[0])
}
