// Package explain assembles the per-document explanation of a kernel
// pooling score: score decomposition, tokenizations and the reconstructed
// kernel activations.
package explain

import (
	"fmt"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/decompose"
	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
	"github.com/DjordjeVuckovic/ir-explorer/internal/kernel"
	"github.com/DjordjeVuckovic/ir-explorer/internal/token"
	"github.com/DjordjeVuckovic/ir-explorer/pkg/utils"
)

// Decimals is the precision of every number in a DocumentInfo.
const Decimals = 3

// DocumentInfo is the explanation of one (query, document) pair.
//
// ValLog decomposes the log-pooled features. ValLen is set for dense
// models only and decomposes the length-normalized features.
type DocumentInfo struct {
	ID                  string            `json:"id"`
	Score               float64           `json:"score"`
	JudgedRelevant      bool              `json:"judged_relevant"`
	ValLog              decompose.Result  `json:"val_log"`
	ValLen              *decompose.Result `json:"val_len,omitempty"`
	TokenizedQuery      []string          `json:"tokenized_query"`
	TokenizedDocument   []string          `json:"tokenized_document"`
	Matches             [][]float64       `json:"matches"`
	MatchesPerKernel    [][][]float64     `json:"matches_per_kernel"`
	MatchesPerKernelMax [][]float64       `json:"matches_per_kernel_max"`
}

// Input carries everything needed to explain one pair. All of it is
// read-only and may be shared with concurrent calls.
type Input struct {
	Run       *domain.Run
	Bank      kernel.Bank
	QueryID   string
	DocID     string
	Artifact  domain.Artifact
	Relevant  bool
	QueryText string
	DocText   string
}

type Assembler struct {
	tokenizer token.Tokenizer
}

func NewAssembler(tokenizer token.Tokenizer) *Assembler {
	return &Assembler{tokenizer: tokenizer}
}

func (a *Assembler) Assemble(in Input) (DocumentInfo, error) {
	info := DocumentInfo{
		ID:             in.DocID,
		Score:          utils.RoundDecimal(in.Artifact.Score, Decimals),
		JudgedRelevant: in.Relevant,
	}

	if err := decomposeScore(&info, in); err != nil {
		return DocumentInfo{}, err
	}

	queryTokens, err := a.tokenizer.Tokenize(in.QueryText)
	if err != nil {
		return DocumentInfo{}, fmt.Errorf("tokenize query %s: %w", in.QueryID, err)
	}
	docTokens, err := a.tokenizer.Tokenize(in.DocText)
	if err != nil {
		return DocumentInfo{}, fmt.Errorf("tokenize document %s: %w", in.DocID, err)
	}
	info.TokenizedQuery = token.Values(queryTokens)
	info.TokenizedDocument = token.Values(docTokens)

	m, err := kernel.Crop(in.Artifact.Similarity, len(queryTokens), len(docTokens))
	if err != nil {
		return DocumentInfo{}, apperr.NewMalformedInput(pairKey(in), 0, "", err)
	}
	act := in.Bank.Reconstruct(m)

	info.Matches = utils.RoundMatrix(act.Matches, Decimals)
	info.MatchesPerKernel = make([][][]float64, len(act.PerKernel))
	for d, perQuery := range act.PerKernel {
		info.MatchesPerKernel[d] = utils.RoundMatrix(perQuery, Decimals)
	}
	info.MatchesPerKernelMax = utils.RoundMatrix(act.PerKernelMax, Decimals)

	return info, nil
}

func decomposeScore(info *DocumentInfo, in Input) error {
	model := in.Run.Model
	tail := in.Run.Info.TailKernels

	switch in.Run.Kind {
	case domain.ScoreTypeDense, domain.ScoreTypeTailSplit:
		valLog, err := weighted(model, domain.WeightDenseLog, in.Artifact.PerKernel, tail, in, "per_kernel")
		if err != nil {
			return err
		}
		valLen, err := weighted(model, domain.WeightDenseMean, in.Artifact.PerKernelMean, tail, in, "per_kernel_mean")
		if err != nil {
			return err
		}
		info.ValLog = valLog
		info.ValLen = &valLen
	case domain.ScoreTypeClassic:
		valLog, err := weighted(model, domain.WeightKernel, in.Artifact.PerKernel, tail, in, "per_kernel")
		if err != nil {
			return err
		}
		info.ValLog = valLog
	default:
		return fmt.Errorf("unsupported score type %q", in.Run.Kind)
	}
	return nil
}

func weighted(model *domain.ModelWeights, group string, values []float64, tail int, in Input, field string) (decompose.Result, error) {
	if len(values) == 0 {
		return decompose.Result{}, apperr.NewLookup("artifact field "+field, pairKey(in))
	}
	weights, ok := model.Vector(group)
	if !ok {
		return decompose.Result{}, apperr.NewLookup("weight group", group)
	}
	res, err := decompose.Weighted(values, weights, model.Bias(group), tail)
	if err != nil {
		return decompose.Result{}, apperr.NewMalformedInput("artifact "+pairKey(in), 0, field,
			fmt.Errorf("decompose %s: %w", group, err))
	}
	return res.Round(Decimals), nil
}

func pairKey(in Input) string {
	return in.QueryID + "/" + in.DocID
}
