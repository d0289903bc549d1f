// Package memory is an in-memory row writer used by tests and dry runs.
package memory

import (
	"context"
	"sync"

	"cardsheets/internal/core"
)

type Store struct {
	mu   sync.Mutex
	rows []core.Row
}

func New() *Store {
	return &Store{}
}

// AppendRows stores the rows in arrival order.
func (s *Store) AppendRows(_ context.Context, rows []core.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []core.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Row, len(s.rows))
	copy(out, s.rows)
	return out
}
