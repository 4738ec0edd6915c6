package judgment

import (
	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
)

// Set maps judged query ids to their relevant document ids. A query that
// was judged but has no relevant document is present with an empty set.
type Set struct {
	relevant map[string]map[string]struct{}
}

func NewSet() *Set {
	return &Set{relevant: make(map[string]map[string]struct{})}
}

func (s *Set) addQuery(qid string) map[string]struct{} {
	docs, ok := s.relevant[qid]
	if !ok {
		docs = make(map[string]struct{})
		s.relevant[qid] = docs
	}
	return docs
}

func (s *Set) add(qid, did string, relevant bool) {
	docs := s.addQuery(qid)
	if relevant {
		docs[did] = struct{}{}
	}
}

// IsRelevant fails with a LookupError when qid was never judged.
func (s *Set) IsRelevant(qid, did string) (bool, error) {
	docs, ok := s.relevant[qid]
	if !ok {
		return false, apperr.NewLookup("judged query", qid)
	}
	_, rel := docs[did]
	return rel, nil
}

// Judgments returns binary grades (1 = relevant) for the relevant documents of qid.
func (s *Set) Judgments(qid string) (map[string]int, error) {
	docs, ok := s.relevant[qid]
	if !ok {
		return nil, apperr.NewLookup("judged query", qid)
	}
	out := make(map[string]int, len(docs))
	for did := range docs {
		out[did] = 1
	}
	return out, nil
}

func (s *Set) QueryCount() int {
	return len(s.relevant)
}
