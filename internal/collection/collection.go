package collection

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
)

// DefaultMaxDocChars bounds the text kept per passage before tokenization.
const DefaultMaxDocChars = 100_000

// Source resolves document ids to their raw text.
type Source interface {
	Text(ctx context.Context, did string) (string, error)
}

// Passages is an in-memory collection. It is read-only after loading.
type Passages map[string]string

func (p Passages) Text(_ context.Context, did string) (string, error) {
	text, ok := p[did]
	if !ok {
		return "", apperr.NewLookup("document", did)
	}
	return text, nil
}

// LoadTSV reads a whole collection file. When an id occurs more than
// once, the later line wins.
func LoadTSV(ctx context.Context, path string, maxChars int) (Passages, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}
	defer f.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reader := NewTSVReader(f, path, maxChars)
	passages := make(Passages)
	lines := make(map[string]int)

	results := reader.ReadParallel(ctx, runtime.NumCPU())
	defer func() {
		cancel()
		for range results {
		}
	}()

	for res := range results {
		if res.Err != nil {
			return nil, res.Err
		}
		p := res.Passage
		if prev, ok := lines[p.ID]; ok && prev > p.Line {
			continue
		}
		lines[p.ID] = p.Line
		passages[p.ID] = p.Text
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load collection %s: %w", path, err)
	}

	slog.Info("Collection loaded", "path", path, "passages", len(passages))
	return passages, nil
}
