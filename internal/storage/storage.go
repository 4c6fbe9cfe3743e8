package storage

import (
	"sort"
	"sync"

	"github.com/lehigh-university-libraries/tropy-archive/internal/models"
)

type RunStore struct {
	runs map[string]*models.ExportRun
	mu   sync.RWMutex
}

func New() *RunStore {
	return &RunStore{
		runs: make(map[string]*models.ExportRun),
	}
}

func (s *RunStore) Get(runID string) (*models.ExportRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, exists := s.runs[runID]
	return run, exists
}

func (s *RunStore) Set(runID string, run *models.ExportRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[runID] = run
}

// List returns all runs, newest first.
func (s *RunStore) List() []*models.ExportRun {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.ExportRun, 0, len(s.runs))
	for _, v := range s.runs {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *RunStore) Delete(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, runID)
}
