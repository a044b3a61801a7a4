package memory

import (
	"context"
	"sync"

	"networth/internal/core"
	"networth/internal/ledger"
)

var _ ledger.Store = (*Store)(nil)

// Store keeps deals in process memory. IDs come from a counter that only
// grows, so a deleted ID is never handed out again.
type Store struct {
	mu     sync.Mutex
	lastID int64
	items  []core.Deal
}

func New(seed ...core.Deal) *Store {
	s := &Store{}
	for _, d := range seed {
		_, _ = s.Add(context.Background(), d)
	}
	return s
}

// Add stores the deal under the next ID.
func (s *Store) Add(_ context.Context, d core.Deal) (core.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	d.ID = s.lastID
	s.items = append(s.items, d)
	return d, nil
}

// ListAll returns a copy of all deals in insertion order.
func (s *Store) ListAll(_ context.Context) ([]core.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Deal(nil), s.items...), nil
}

func (s *Store) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.items {
		if d.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}
