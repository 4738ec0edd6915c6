// Package explorer serves the loaded runs: run listings, evaluated query
// clusters, per-query rankings and per-document explanations.
package explorer

import (
	"context"
	"fmt"
	"sort"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/artifact"
	"github.com/DjordjeVuckovic/ir-explorer/internal/collection"
	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
	"github.com/DjordjeVuckovic/ir-explorer/internal/explain"
	"github.com/DjordjeVuckovic/ir-explorer/internal/judgment"
	"github.com/DjordjeVuckovic/ir-explorer/internal/kernel"
	"github.com/DjordjeVuckovic/ir-explorer/internal/metrics"
	"github.com/DjordjeVuckovic/ir-explorer/internal/ranking"
)

// runState is everything loaded for one run. It is never modified after
// Load returns.
type runState struct {
	run       *domain.Run
	bank      kernel.Bank
	judgments *judgment.Set
	queries   *collection.QuerySet
	docs      collection.Source
	evaluated map[string]struct{}
}

func (rs *runState) isEvaluated(qid string) bool {
	_, ok := rs.evaluated[qid]
	return ok
}

type Explorer struct {
	runs      []*runState
	byKey     map[string]*runState
	artifacts artifact.Store
	assembler *explain.Assembler
}

func newExplorer(runs []*runState, store artifact.Store, assembler *explain.Assembler) *Explorer {
	byKey := make(map[string]*runState, len(runs))
	for _, rs := range runs {
		byKey[rs.run.Key()] = rs
	}
	metrics.RunsLoaded.Set(float64(len(runs)))
	return &Explorer{
		runs:      runs,
		byKey:     byKey,
		artifacts: store,
		assembler: assembler,
	}
}

// QueryResult is the ranking of one query with its evaluation metrics.
type QueryResult struct {
	Documents []explain.DocumentInfo `json:"documents"`
	Metrics   ranking.ScoreSet       `json:"metrics"`
}

func (e *Explorer) RunCount() int {
	return len(e.runs)
}

func (e *Explorer) run(key string) (*runState, error) {
	rs, ok := e.byKey[key]
	if !ok {
		return nil, apperr.NewLookup("run", key)
	}
	return rs, nil
}

// RunInfos lists the runs in configuration order.
func (e *Explorer) RunInfos() []domain.RunInfo {
	infos := make([]domain.RunInfo, len(e.runs))
	for i, rs := range e.runs {
		infos[i] = rs.run.Info
	}
	return infos
}

// Clusters returns the query clusters of a run, keeping only queries
// that have artifacts.
func (e *Explorer) Clusters(run string) (map[string]domain.Cluster, error) {
	rs, err := e.run(run)
	if err != nil {
		return nil, err
	}
	return rs.queries.Clusters(rs.isEvaluated), nil
}

// QueryDocuments explains every evaluated document of qid, best score first.
func (e *Explorer) QueryDocuments(ctx context.Context, run, qid string) (QueryResult, error) {
	rs, err := e.run(run)
	if err != nil {
		return QueryResult{}, err
	}

	artifacts, err := e.artifacts.Documents(ctx, run, qid)
	if err != nil {
		return QueryResult{}, err
	}
	judged, err := rs.judgments.Judgments(qid)
	if err != nil {
		return QueryResult{}, err
	}

	ranked := make([]string, 0, len(artifacts))
	for did := range artifacts {
		ranked = append(ranked, did)
	}
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := artifacts[ranked[i]].Score, artifacts[ranked[j]].Score
		if si != sj {
			return si > sj
		}
		return ranked[i] < ranked[j]
	})

	res := QueryResult{
		Documents: make([]explain.DocumentInfo, 0, len(ranked)),
		Metrics:   ranking.ComputeAll(ranked, judged, ranking.DefaultKValues, ranking.RelevanceThreshold),
	}
	for _, did := range ranked {
		info, err := e.explain(ctx, rs, qid, did, artifacts[did])
		if err != nil {
			return QueryResult{}, err
		}
		res.Documents = append(res.Documents, info)
	}
	return res, nil
}

// DocumentInfo explains a single (query, document) pair of a run.
func (e *Explorer) DocumentInfo(ctx context.Context, run, qid, did string) (explain.DocumentInfo, error) {
	rs, err := e.run(run)
	if err != nil {
		return explain.DocumentInfo{}, err
	}
	a, err := e.artifacts.Artifact(ctx, run, qid, did)
	if err != nil {
		return explain.DocumentInfo{}, err
	}
	return e.explain(ctx, rs, qid, did, a)
}

func (e *Explorer) explain(ctx context.Context, rs *runState, qid, did string, a domain.Artifact) (info explain.DocumentInfo, err error) {
	defer func() {
		metrics.ObserveDocumentInfo(string(rs.run.Kind), err)
	}()

	relevant, err := rs.judgments.IsRelevant(qid, did)
	if err != nil {
		return explain.DocumentInfo{}, err
	}
	queryText, err := rs.queries.Text(qid)
	if err != nil {
		return explain.DocumentInfo{}, err
	}
	docText, err := rs.docs.Text(ctx, did)
	if err != nil {
		return explain.DocumentInfo{}, fmt.Errorf("text of document %s: %w", did, err)
	}

	return e.assembler.Assemble(explain.Input{
		Run:       rs.run,
		Bank:      rs.bank,
		QueryID:   qid,
		DocID:     did,
		Artifact:  a,
		Relevant:  relevant,
		QueryText: queryText,
		DocText:   docText,
	})
}
