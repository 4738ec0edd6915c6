//go:build integration

package es

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/collection"
	pkgtesting "github.com/DjordjeVuckovic/ir-explorer/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_IndexAndFetch(t *testing.T) {
	ctx := context.Background()
	container := pkgtesting.NewESContainer(ctx, t)

	cfg := ClientConfig{
		Addresses: []string{container.Address},
		IndexName: "passages_test",
	}

	indexer, err := NewIndexer(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, indexer.IndexPassages(ctx, collection.Passages{
		"d1": "the quick brown fox",
		"d2": strings.Repeat("x", 50),
	}))

	src, err := NewSource(cfg, 10)
	require.NoError(t, err)
	assert.True(t, src.Healthy(ctx))

	text, err := src.Text(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "the quick ", text)

	text, err = src.Text(ctx, "d2")
	require.NoError(t, err)
	assert.Len(t, text, 10)

	_, err = src.Text(ctx, "missing")
	var le *apperr.LookupError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "document", le.Kind)
}
