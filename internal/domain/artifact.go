package domain

// Artifact is the precomputed output of the offline scorer for one
// (query, document) pair.
//
// Similarity is stored query-major and padded to the scorer's maximum
// lengths: Similarity[q][d] is the masked cosine similarity of query token q
// and document token d.
type Artifact struct {
	Score         float64     `cbor:"score" json:"score"`
	Similarity    [][]float64 `cbor:"cosine_matrix_masked" json:"cosine_matrix_masked"`
	PerKernel     []float64   `cbor:"per_kernel" json:"per_kernel"`
	PerKernelMean []float64   `cbor:"per_kernel_mean,omitempty" json:"per_kernel_mean,omitempty"`
}
