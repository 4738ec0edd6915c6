package es

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/collection"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// Source fetches passage text from an Elasticsearch index, truncated to
// maxChars runes like the file collections.
type Source struct {
	client    *elasticsearch.TypedClient
	indexName string
	maxChars  int
}

func NewSource(config ClientConfig, maxChars int) (*Source, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &Source{
		client:    client,
		indexName: config.IndexName,
		maxChars:  maxChars,
	}, nil
}

func (s *Source) Text(ctx context.Context, did string) (string, error) {
	res, err := s.client.Get(s.indexName, did).Do(ctx)
	if err != nil {
		var esErr *types.ElasticsearchError
		if errors.As(err, &esErr) && esErr.Status == http.StatusNotFound {
			return "", apperr.NewLookup("document", did)
		}
		slog.Error("Elasticsearch get failed", "error", err, "id", did, "index", s.indexName)
		return "", fmt.Errorf("failed to get document %s: %w", did, err)
	}
	if !res.Found {
		return "", apperr.NewLookup("document", did)
	}

	var doc passageDoc
	if err := json.Unmarshal(res.Source_, &doc); err != nil {
		return "", fmt.Errorf("failed to unmarshal document %s: %w", did, err)
	}

	return collection.Truncate(doc.Text, s.maxChars), nil
}

func (s *Source) Healthy(ctx context.Context) bool {
	ok, err := s.client.Ping().Do(ctx)
	return err == nil && ok
}
