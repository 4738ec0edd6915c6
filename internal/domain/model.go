package domain

// Weight group names as written by the offline scoring process.
const (
	WeightDenseLog  = "dense_weight"
	WeightDenseMean = "dense_mean_weight"
	WeightKernel    = "kernel_weight"
	WeightLogLenMix = "dense_comb_weight"
)

// ModelWeights holds the learned weight vectors of one run, indexed like
// the run's kernel centers.
type ModelWeights struct {
	Weights map[string][]float64 `cbor:"weights" json:"weights"`
	Biases  map[string]float64   `cbor:"biases,omitempty" json:"biases,omitempty"`
}

func (m *ModelWeights) Vector(group string) ([]float64, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.Weights[group]
	return v, ok
}

// Bias returns nil when the group has no bias term.
func (m *ModelWeights) Bias(group string) *float64 {
	if m == nil {
		return nil
	}
	b, ok := m.Biases[group]
	if !ok {
		return nil
	}
	return &b
}

// RequiredGroups lists the weight vectors a score type decomposes against.
func RequiredGroups(t ScoreType) []string {
	if t.Dense() {
		return []string{WeightDenseLog, WeightDenseMean}
	}
	return []string{WeightKernel}
}
