// Package decompose splits a linear kernel score into per-kernel
// contributions and a collapsed tail window.
package decompose

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/DjordjeVuckovic/ir-explorer/pkg/utils"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrEmpty          = errors.New("no values to decompose")
	ErrLengthMismatch = errors.New("values and weights differ in length")
	ErrTailWindow     = errors.New("tail window out of range")
)

// Contribution is one kernel's pooled value and learned weight.
type Contribution struct {
	Value  float64
	Weight float64
}

func (c Contribution) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Value, c.Weight})
}

// Result is serialized as [inspection, total, tail_total].
type Result struct {
	// Inspection holds the kernels before the tail window, keyed by kernel index.
	Inspection map[int]Contribution
	Total      float64
	TailTotal  float64
}

// Weighted computes the weighted sum of values with an optional bias and
// separately sums the last tail entries. The bias is added to both sums.
func Weighted(values, weights []float64, bias *float64, tail int) (Result, error) {
	n := len(values)
	if n == 0 {
		return Result{}, ErrEmpty
	}
	if len(weights) != n {
		return Result{}, fmt.Errorf("%w: %d values, %d weights", ErrLengthMismatch, n, len(weights))
	}
	if tail < 0 || tail > n {
		return Result{}, fmt.Errorf("%w: %d not in [0, %d]", ErrTailWindow, tail, n)
	}

	split := n - tail
	res := Result{
		Inspection: make(map[int]Contribution, split),
		Total:      floats.Dot(values, weights),
		TailTotal:  floats.Dot(values[split:], weights[split:]),
	}
	for i := 0; i < split; i++ {
		res.Inspection[i] = Contribution{Value: values[i], Weight: weights[i]}
	}

	if bias != nil {
		res.Total += *bias
		res.TailTotal += *bias
	}

	return res, nil
}

func (r Result) Round(decimals int) Result {
	out := Result{
		Inspection: make(map[int]Contribution, len(r.Inspection)),
		Total:      utils.RoundDecimal(r.Total, decimals),
		TailTotal:  utils.RoundDecimal(r.TailTotal, decimals),
	}
	for i, c := range r.Inspection {
		out.Inspection[i] = Contribution{
			Value:  utils.RoundDecimal(c.Value, decimals),
			Weight: utils.RoundDecimal(c.Weight, decimals),
		}
	}
	return out
}

func (r Result) MarshalJSON() ([]byte, error) {
	inspection := make(map[string]Contribution, len(r.Inspection))
	for i, c := range r.Inspection {
		inspection[strconv.Itoa(i)] = c
	}
	return json.Marshal([]any{inspection, r.Total, r.TailTotal})
}

func (r Result) indices() []int {
	idx := make([]int, 0, len(r.Inspection))
	for i := range r.Inspection {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}
