package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultKernelSigma is the bandwidth shared by all kernels of a run unless configured.
const DefaultKernelSigma = 0.1

// ScoreType is the closed set of kernel-pooling score models a run can replay.
type ScoreType string

const (
	// ScoreTypeDense combines log-sum and mean-normalized pooled kernels with dense weights.
	ScoreTypeDense ScoreType = "kernel-pooling-dense"
	// ScoreTypeTailSplit is the dense variant whose last kernels model a separate signal.
	ScoreTypeTailSplit ScoreType = "kernel-pooling-tail-split"
	// ScoreTypeClassic is the single weight vector kernel-pooling model.
	ScoreTypeClassic ScoreType = "classic-kernel-pooling"
)

var scoreTypeAliases = map[string]ScoreType{
	"tk":   ScoreTypeDense,
	"fk":   ScoreTypeTailSplit,
	"knrm": ScoreTypeClassic,
}

func ParseScoreType(s string) (ScoreType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch st := ScoreType(v); st {
	case ScoreTypeDense, ScoreTypeTailSplit, ScoreTypeClassic:
		return st, nil
	}
	if st, ok := scoreTypeAliases[v]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown score type %q", s)
}

// Dense reports whether the model scores with both log and length-normalized kernels.
func (t ScoreType) Dense() bool {
	return t == ScoreTypeDense || t == ScoreTypeTailSplit
}

// RunInfo is the descriptive part of a run as configured. Keys the
// explorer does not interpret are kept in Extra and passed through.
type RunInfo struct {
	Name        string         `yaml:"name"`
	ScoreType   string         `yaml:"score_type"`
	KernelMus   []float64      `yaml:"kernels_mus"`
	TailKernels int            `yaml:"rest-kernels-last"`
	Sigma       float64        `yaml:"kernels_sigma"`
	LogLenMix   []float64      `yaml:"-"`
	Extra       map[string]any `yaml:",inline"`
}

func (ri RunInfo) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(ri.Extra)+6)
	for k, v := range ri.Extra {
		out[k] = v
	}
	out["name"] = ri.Name
	out["score_type"] = ri.ScoreType
	out["kernels_mus"] = ri.KernelMus
	out["rest-kernels-last"] = ri.TailKernels
	out["kernels_sigma"] = ri.Sigma
	if ri.LogLenMix != nil {
		out["model_weights_log_len_mix"] = ri.LogLenMix
	}
	return json.Marshal(out)
}

// Run is a loaded evaluation run. It is immutable once loading finished
// and shared by reference between requests.
type Run struct {
	Index int
	Kind  ScoreType
	Info  RunInfo
	Model *ModelWeights
}

// Key is the identifier used in routes.
func (r *Run) Key() string {
	return strconv.Itoa(r.Index)
}
