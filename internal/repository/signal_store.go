package repository

import (
	"sync"

	"Traxor/internal/domain/models"
	"Traxor/internal/domain/repository"
)

// MemorySignalStore keeps a bounded, newest-first history of signals for the
// life of the process.
type MemorySignalStore struct {
	mu    sync.RWMutex
	order []*models.SignalResponse // newest first
	byID  map[string]*models.SignalResponse
	limit int
}

var _ repository.SignalStore = (*MemorySignalStore)(nil)

func NewMemorySignalStore(limit int) *MemorySignalStore {
	if limit <= 0 {
		limit = 200
	}
	return &MemorySignalStore{
		byID:  make(map[string]*models.SignalResponse),
		limit: limit,
	}
}

// Save stores a copy of s and returns another. Saving an existing id
// replaces it and moves it to the front.
func (s *MemorySignalStore) Save(sig *models.SignalResponse) *models.SignalResponse {
	stored := sig.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[stored.ID]; ok {
		s.removeLocked(stored.ID)
	}
	s.order = append([]*models.SignalResponse{stored}, s.order...)
	s.byID[stored.ID] = stored

	for len(s.order) > s.limit {
		oldest := s.order[len(s.order)-1]
		s.order = s.order[:len(s.order)-1]
		delete(s.byID, oldest.ID)
	}
	return stored.Clone()
}

func (s *MemorySignalStore) Get(id string) (*models.SignalResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sig, ok := s.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return sig.Clone(), nil
}

func (s *MemorySignalStore) List() []*models.SignalResponse {
	return s.filter(func(*models.SignalResponse) bool { return true })
}

func (s *MemorySignalStore) Bookmarked() []*models.SignalResponse {
	return s.filter(func(sig *models.SignalResponse) bool { return sig.Bookmarked })
}

// ToggleBookmark flips the bookmark flag and returns the updated signal.
func (s *MemorySignalStore) ToggleBookmark(id string) (*models.SignalResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sig, ok := s.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	sig.Bookmarked = !sig.Bookmarked
	return sig.Clone(), nil
}

func (s *MemorySignalStore) filter(keep func(*models.SignalResponse) bool) []*models.SignalResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.SignalResponse, 0, len(s.order))
	for _, sig := range s.order {
		if keep(sig) {
			out = append(out, sig.Clone())
		}
	}
	return out
}

func (s *MemorySignalStore) removeLocked(id string) {
	for i, sig := range s.order {
		if sig.ID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	delete(s.byID, id)
}
