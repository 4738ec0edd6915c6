package collection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
)

// Column layout of collection files: <?>\t<id>\t<?>\t<text>[\t...]
const (
	idColumn   = 1
	textColumn = 3
)

type Passage struct {
	Line int
	ID   string
	Text string
}

type ParallelReaderResult struct {
	Passage Passage
	Err     error
}

// TSVReader parses collection lines into passages whose text is right
// trimmed and truncated to maxChars runes.
type TSVReader struct {
	reader   io.Reader
	source   string
	maxChars int
}

func NewTSVReader(reader io.Reader, source string, maxChars int) *TSVReader {
	return &TSVReader{
		reader:   reader,
		source:   source,
		maxChars: maxChars,
	}
}

func (tr *TSVReader) parse(line int, raw string) (Passage, error) {
	fields := strings.Split(raw, "\t")
	if len(fields) <= textColumn {
		return Passage{}, apperr.NewMalformedInput(tr.source, line, Truncate(raw, 80),
			fmt.Errorf("expected at least %d columns, got %d", textColumn+1, len(fields)))
	}
	text := strings.TrimRightFunc(fields[textColumn], unicode.IsSpace)
	return Passage{
		Line: line,
		ID:   fields[idColumn],
		Text: Truncate(text, tr.maxChars),
	}, nil
}

// ReadParallel streams parsed passages. Lines are read sequentially and
// parsed by workerCount goroutines, so results arrive out of order.
// The channel is closed once the reader and every worker have returned,
// so draining it guarantees tr.reader is no longer in use.
func (tr *TSVReader) ReadParallel(ctx context.Context, workerCount int) <-chan ParallelReaderResult {
	type job struct {
		line int
		raw  string
	}

	out := make(chan ParallelReaderResult)
	jobs := make(chan job, workerCount*2)
	var wg sync.WaitGroup

	wg.Add(workerCount + 1)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					p, err := tr.parse(j.line, j.raw)
					select {
					case out <- ParallelReaderResult{Passage: p, Err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	go func() {
		defer wg.Done()
		defer close(jobs)

		br := bufio.NewReaderSize(tr.reader, 1<<20)
		line := 0
		for {
			raw, err := br.ReadString('\n')
			if len(raw) > 0 {
				line++
				raw = strings.TrimRight(raw, "\r\n")
				if raw != "" {
					select {
					case jobs <- job{line: line, raw: raw}:
					case <-ctx.Done():
						slog.Info("Context cancelled, stopping collection read...", "source", tr.source)
						return
					}
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Error("Error reading collection", "source", tr.source, "error", err)
				select {
				case out <- ParallelReaderResult{Err: fmt.Errorf("read %s: %w", tr.source, err)}:
				case <-ctx.Done():
				}
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// Truncate keeps the first maxChars runes of s. maxChars <= 0 keeps everything.
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 || len(s) <= maxChars {
		return s
	}
	n := 0
	for i := range s {
		if n == maxChars {
			return s[:i]
		}
		n++
	}
	return s
}
