package ranking

// hitsWithin counts the relevant documents among the first k ranked.
func hitsWithin(ranked []string, judgments map[string]int, k, relevanceThreshold int) int {
	return len(hitRanks(ranked[:min(k, len(ranked))], judgments, relevanceThreshold))
}

// PrecisionAtK is the share of relevant documents in the top k. The
// denominator stays k when fewer than k documents are ranked.
func PrecisionAtK(ranked []string, judgments map[string]int, k int, relevanceThreshold int) float64 {
	if k <= 0 || len(ranked) == 0 {
		return 0
	}
	return float64(hitsWithin(ranked, judgments, k, relevanceThreshold)) / float64(k)
}

// RecallAtK is the share of all relevant documents found in the top k.
func RecallAtK(ranked []string, judgments map[string]int, k int, relevanceThreshold int) float64 {
	if k <= 0 || len(ranked) == 0 {
		return 0
	}
	total := countRelevant(judgments, relevanceThreshold)
	if total == 0 {
		return 0
	}
	return float64(hitsWithin(ranked, judgments, k, relevanceThreshold)) / float64(total)
}

func countRelevant(judgments map[string]int, relevanceThreshold int) int {
	var n int
	for _, grade := range judgments {
		if grade >= relevanceThreshold {
			n++
		}
	}
	return n
}
