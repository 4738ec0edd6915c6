// Package kernel re-derives the Gaussian kernel activations of a
// kernel-pooling ranker from its stored token similarity matrix.
package kernel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoKernels   = errors.New("kernel bank has no kernels")
	ErrBandwidth   = errors.New("kernel bandwidth must be positive")
	ErrEmptyRegion = errors.New("similarity region is empty")
)

// Bank is an ordered set of Gaussian kernels sharing one bandwidth.
type Bank struct {
	mus   []float64
	denom float64
}

func NewBank(mus []float64, sigma float64) (Bank, error) {
	if len(mus) == 0 {
		return Bank{}, ErrNoKernels
	}
	if sigma <= 0 || math.IsNaN(sigma) {
		return Bank{}, fmt.Errorf("%w: got %v", ErrBandwidth, sigma)
	}
	return Bank{
		mus:   mus,
		denom: 2 * sigma * sigma,
	}, nil
}

func (b Bank) Size() int {
	return len(b.mus)
}

// Activate returns the response of every kernel to the similarity x.
func (b Bank) Activate(x float64) []float64 {
	out := make([]float64, len(b.mus))
	b.activate(x, out)
	return out
}

func (b Bank) activate(x float64, dst []float64) {
	for i, mu := range b.mus {
		d := x - mu
		dst[i] = math.Exp(-(d * d) / b.denom)
	}
}

// Crop turns a stored similarity matrix (query-major, padded to the
// scorer's maximum lengths) into a document-major matrix limited to the
// actual token counts. Counts larger than the stored matrix are clamped.
func Crop(stored [][]float64, queryLen, docLen int) (*mat.Dense, error) {
	rows := min(queryLen, len(stored))
	if rows <= 0 {
		return nil, ErrEmptyRegion
	}

	width := len(stored[0])
	for _, row := range stored[:rows] {
		width = min(width, len(row))
	}
	cols := min(docLen, width)
	if cols <= 0 {
		return nil, ErrEmptyRegion
	}

	view := mat.NewDense(rows, cols, nil)
	for q := 0; q < rows; q++ {
		view.SetRow(q, stored[q][:cols])
	}

	return mat.DenseCopyOf(view.T()), nil
}

// Activations is the kernel view of one document-major similarity matrix.
//
//	Matches[d][q]         raw similarity
//	PerKernel[d][q][i]    response of kernel i
//	PerKernelMax[d][i]    max over q of PerKernel[d][q][i]
type Activations struct {
	Matches      [][]float64
	PerKernel    [][][]float64
	PerKernelMax [][]float64
}

// Reconstruct applies the bank to every cell of m, a documents x query
// tokens matrix, and max-pools over the query axis.
func (b Bank) Reconstruct(m mat.Matrix) Activations {
	docs, queries := m.Dims()
	k := len(b.mus)

	act := Activations{
		Matches:      make([][]float64, docs),
		PerKernel:    make([][][]float64, docs),
		PerKernelMax: make([][]float64, docs),
	}

	for d := 0; d < docs; d++ {
		matches := make([]float64, queries)
		perQuery := make([][]float64, queries)
		pooled := make([]float64, k)

		for q := 0; q < queries; q++ {
			x := m.At(d, q)
			matches[q] = x

			responses := make([]float64, k)
			b.activate(x, responses)
			perQuery[q] = responses

			for i, r := range responses {
				if q == 0 || r > pooled[i] {
					pooled[i] = r
				}
			}
		}

		act.Matches[d] = matches
		act.PerKernel[d] = perQuery
		act.PerKernelMax[d] = pooled
	}

	return act
}
