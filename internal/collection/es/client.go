package es

import (
	"errors"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
	// APIKey takes precedence over basic auth.
	APIKey     string
	MaxRetries int
}

// passageDoc is the stored form of a collection passage; _id is the document id.
type passageDoc struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	if len(config.Addresses) == 0 {
		return nil, errors.New("no Elasticsearch addresses configured")
	}

	cfg := elasticsearch.Config{
		Addresses:  config.Addresses,
		MaxRetries: config.MaxRetries,
		RetryOnStatus: []int{
			http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
	switch {
	case config.APIKey != "":
		cfg.APIKey = config.APIKey
	case config.Username != "" && config.Password != "":
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}
