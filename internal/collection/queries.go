package collection

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
)

const (
	queryIDColumn      = "qid"
	queryTextColumn    = "text"
	queryClusterColumn = "cluster"
)

// QuerySet is the evaluated query sample of a run with its cluster grouping.
type QuerySet struct {
	queries      map[string]domain.Query
	clusterRows  map[string]domain.Record
	clusterOrder []string
	queryOrder   []string
}

// LoadQuerySet reads the cluster statistics file and the queries file.
// Every query must belong to a cluster listed in the statistics file.
func LoadQuerySet(queriesPath, clustersPath string) (*QuerySet, error) {
	clusterRows, err := readCSV(clustersPath)
	if err != nil {
		return nil, err
	}
	queryRows, err := readCSV(queriesPath)
	if err != nil {
		return nil, err
	}
	return NewQuerySet(queryRows, clusterRows, queriesPath, clustersPath)
}

func NewQuerySet(queryRows, clusterRows []domain.Record, queriesSource, clustersSource string) (*QuerySet, error) {
	qs := &QuerySet{
		queries:     make(map[string]domain.Query, len(queryRows)),
		clusterRows: make(map[string]domain.Record, len(clusterRows)),
	}

	for i, row := range clusterRows {
		id, ok := row[queryClusterColumn]
		if !ok {
			return nil, apperr.NewMalformedInput(clustersSource, i+2, "", fmt.Errorf("missing %q column", queryClusterColumn))
		}
		if _, dup := qs.clusterRows[id]; !dup {
			qs.clusterOrder = append(qs.clusterOrder, id)
		}
		qs.clusterRows[id] = row
	}

	for i, row := range queryRows {
		line := i + 2
		qid, hasID := row[queryIDColumn]
		text, hasText := row[queryTextColumn]
		cluster, hasCluster := row[queryClusterColumn]
		if !hasID || !hasText || !hasCluster {
			return nil, apperr.NewMalformedInput(queriesSource, line, "",
				fmt.Errorf("expected columns %q, %q and %q", queryIDColumn, queryTextColumn, queryClusterColumn))
		}
		if _, ok := qs.clusterRows[cluster]; !ok {
			return nil, apperr.NewMalformedInput(queriesSource, line, qid, fmt.Errorf("unknown cluster %q", cluster))
		}
		if _, dup := qs.queries[qid]; !dup {
			qs.queryOrder = append(qs.queryOrder, qid)
		}
		qs.queries[qid] = domain.Query{ID: qid, Text: text, ClusterID: cluster, Row: row}
	}

	return qs, nil
}

func (qs *QuerySet) Text(qid string) (string, error) {
	q, ok := qs.queries[qid]
	if !ok {
		return "", apperr.NewLookup("query", qid)
	}
	return q.Text, nil
}

func (qs *QuerySet) Len() int {
	return len(qs.queries)
}

// Clusters groups the queries accepted by keep under their clusters,
// preserving file order. Clusters left without queries are still listed.
func (qs *QuerySet) Clusters(keep func(qid string) bool) map[string]domain.Cluster {
	out := make(map[string]domain.Cluster, len(qs.clusterRows))
	for _, id := range qs.clusterOrder {
		out[id] = domain.Cluster{ID: id, Row: qs.clusterRows[id], Queries: []domain.Query{}}
	}
	for _, qid := range qs.queryOrder {
		q := qs.queries[qid]
		if keep != nil && !keep(qid) {
			continue
		}
		c := out[q.ClusterID]
		c.Queries = append(c.Queries, q)
		out[q.ClusterID] = c
	}
	return out
}

func readCSV(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return NewCSVReader(f, path).Read()
}
