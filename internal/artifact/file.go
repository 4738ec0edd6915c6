package artifact

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
)

// FileStore keeps decoded archives in memory. Loading is guarded by a
// mutex, reads after loading see immutable archives.
type FileStore struct {
	mu       sync.RWMutex
	archives map[string]*Archive
}

func NewFileStore() *FileStore {
	return &FileStore{archives: make(map[string]*Archive)}
}

// Load reads the archive at source and registers it under run.
func (s *FileStore) Load(_ context.Context, run, source string) error {
	a, err := ReadArchive(source)
	if err != nil {
		return err
	}
	s.Put(run, a)
	slog.Info("Artifacts loaded", "run", run, "path", source, "queries", len(a.QD), "pairs", a.PairCount())
	return nil
}

func (s *FileStore) Put(run string, a *Archive) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archives[run] = a
}

func (s *FileStore) archive(run string) (*Archive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.archives[run]
	if !ok {
		return nil, apperr.NewLookup("run", run)
	}
	return a, nil
}

func (s *FileStore) Model(_ context.Context, run string) (*domain.ModelWeights, error) {
	a, err := s.archive(run)
	if err != nil {
		return nil, err
	}
	return &a.Model, nil
}

func (s *FileStore) Artifact(_ context.Context, run, qid, did string) (domain.Artifact, error) {
	a, err := s.archive(run)
	if err != nil {
		return domain.Artifact{}, err
	}
	docs, ok := a.QD[qid]
	if !ok {
		return domain.Artifact{}, apperr.NewLookup("query", qid)
	}
	art, ok := docs[did]
	if !ok {
		return domain.Artifact{}, apperr.NewLookup("document", did)
	}
	return art, nil
}

func (s *FileStore) Documents(_ context.Context, run, qid string) (map[string]domain.Artifact, error) {
	a, err := s.archive(run)
	if err != nil {
		return nil, err
	}
	docs, ok := a.QD[qid]
	if !ok {
		return nil, apperr.NewLookup("query", qid)
	}
	return docs, nil
}

func (s *FileStore) Queries(_ context.Context, run string) ([]string, error) {
	a, err := s.archive(run)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(a.QD))
	for qid, docs := range a.QD {
		if len(docs) > 0 {
			ids = append(ids, qid)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
