package memory

import (
	"context"
	"sync"

	"github.com/ayushkanha/VoxHire/internal/store"
)

// Store keeps the interview trail in memory. Used for development and
// tests; everything is lost when the process exits.
type Store struct {
	mu      sync.RWMutex
	records []store.Record
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Append(ctx context.Context, rec store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	return nil
}

func (s *Store) Query(ctx context.Context, sessionID string) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []store.Record
	for _, r := range s.records {
		if r.SessionID == sessionID {
			result = append(result, r)
		}
	}

	return result, nil
}

func (s *Store) Close() error {
	return nil
}
