package pending

import (
	"context"
	"sync"

	"calorie-tracker-bot/internal/features/diary/models"
)

// MemoryStore is the in-process Store. Candidates never expire and are lost
// on restart.
type MemoryStore struct {
	mu         sync.RWMutex
	candidates map[int64]models.PendingCandidate
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{candidates: make(map[int64]models.PendingCandidate)}
}

func (s *MemoryStore) Set(_ context.Context, userID int64, candidate *models.PendingCandidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[userID] = *candidate
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (*models.PendingCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &candidate, nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.candidates, userID)
	return nil
}
