package ranking

// RelevanceThreshold is the grade from which a judged document counts as relevant.
const RelevanceThreshold = 1

var DefaultKValues = []int{1, 5, 10}

type ScoreSet struct {
	NDCG      map[int]float64 `json:"ndcg"`
	Precision map[int]float64 `json:"precision"`
	Recall    map[int]float64 `json:"recall"`
	AP        float64         `json:"ap"`
	RR        float64         `json:"rr"`
}

func ComputeAll(ranked []string, judgments map[string]int, kValues []int, relevanceThreshold int) ScoreSet {
	s := ScoreSet{
		NDCG:      make(map[int]float64, len(kValues)),
		Precision: make(map[int]float64, len(kValues)),
		Recall:    make(map[int]float64, len(kValues)),
	}

	for _, k := range kValues {
		s.NDCG[k] = NDCGAtK(ranked, judgments, k)
		s.Precision[k] = PrecisionAtK(ranked, judgments, k, relevanceThreshold)
		s.Recall[k] = RecallAtK(ranked, judgments, k, relevanceThreshold)
	}

	s.AP = AveragePrecision(ranked, judgments, relevanceThreshold)
	s.RR = ReciprocalRank(ranked, judgments, relevanceThreshold)

	return s
}
