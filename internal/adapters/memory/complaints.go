package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/randomtoy/moonblock-go/internal/domain"
)

// ComplaintStore keeps complaints in process memory. Nothing survives a
// restart.
type ComplaintStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.Complaint
}

func NewComplaintStore() *ComplaintStore {
	return &ComplaintStore{byID: make(map[string]domain.Complaint)}
}

func (s *ComplaintStore) Add(_ context.Context, c domain.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[c.ID]; !ok {
		s.order = append(s.order, c.ID)
	}
	s.byID[c.ID] = c
	return nil
}

func (s *ComplaintStore) Get(_ context.Context, id string) (domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return domain.Complaint{}, domain.ErrComplaintNotFound
	}
	return c, nil
}

func (s *ComplaintStore) SetStatus(_ context.Context, id string, status domain.ComplaintStatus) (domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return domain.Complaint{}, domain.ErrComplaintNotFound
	}
	c.Status = status
	s.byID[id] = c
	return c, nil
}

func (s *ComplaintStore) List(_ context.Context) ([]domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Complaint, 0, len(s.order))
	for _, id := range slices.Backward(s.order) {
		out = append(out, s.byID[id])
	}
	return out, nil
}
