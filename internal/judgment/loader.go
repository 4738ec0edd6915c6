package judgment

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"gopkg.in/yaml.v3"
)

const notRelevant = "0"

// LoadFromFile reads TREC qrels, or a YAML judgment file when the
// extension is .yaml or .yml.
func LoadFromFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open judgments: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParseQrels(f, path)
	}
}

// ParseQrels reads whitespace separated "qid iteration did grade" lines.
// Any grade other than the literal "0" counts as relevant.
func ParseQrels(r io.Reader, source string) (*Set, error) {
	set := NewSet()
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		fields := strings.Fields(raw)
		if len(fields) < 4 {
			return nil, apperr.NewMalformedInput(source, line, raw,
				fmt.Errorf("expected 4 fields, got %d", len(fields)))
		}
		set.add(fields[0], fields[2], fields[3] != notRelevant)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read qrels: %w", err)
	}

	return set, nil
}

func ParseYAML(r io.Reader) (*Set, error) {
	var jf JudgmentFile
	if err := yaml.NewDecoder(r).Decode(&jf); err != nil {
		return nil, fmt.Errorf("parse judgment file: %w", err)
	}

	set := NewSet()
	for i, entry := range jf.Queries {
		if entry.QueryID == "" {
			return nil, apperr.NewMalformedInput("judgment file", 0,
				fmt.Sprintf("queries[%d]", i), fmt.Errorf("missing query_id"))
		}
		set.addQuery(entry.QueryID)
		for j, d := range entry.Docs {
			if d.DocID == "" {
				return nil, apperr.NewMalformedInput("judgment file", 0,
					fmt.Sprintf("queries[%d].docs[%d]", i, j), fmt.Errorf("missing doc_id"))
			}
			set.add(entry.QueryID, d.DocID, d.Grade > 0)
		}
	}
	return set, nil
}
