package domain

import "encoding/json"

// Record is one row of a statistics CSV keyed by header.
type Record map[string]string

// Query is a row of the queries file. ID, Text and ClusterID come from the
// qid, text and cluster columns.
type Query struct {
	ID        string
	Text      string
	ClusterID string
	Row       Record
}

func (q Query) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Row)
}

// Cluster groups queries with the statistics row of the cluster file.
type Cluster struct {
	ID      string
	Row     Record
	Queries []Query
}

func (c Cluster) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Row)+1)
	for k, v := range c.Row {
		out[k] = v
	}
	queries := c.Queries
	if queries == nil {
		queries = []Query{}
	}
	out["queries"] = queries
	return json.Marshal(out)
}
