package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type storeEntry struct {
	mu    sync.Mutex
	table *Table
}

// Store holds live tables. Every operation on a table goes through With, which
// serialises access to that table; different tables proceed in parallel.
type Store struct {
	mu     sync.Mutex
	tables map[uuid.UUID]*storeEntry
}

func NewStore() *Store {
	return &Store{
		tables: make(map[uuid.UUID]*storeEntry),
	}
}

func (s *Store) Add(t *Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.ID] = &storeEntry{table: t}
}

// With runs fn while holding the table's lock and returns fn's error.
func (s *Store) With(id uuid.UUID, fn func(*Table) error) error {
	s.mu.Lock()
	e, exists := s.tables[id]
	s.mu.Unlock()
	if !exists {
		return fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.table)
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, id)
}

// IDs lists the stored tables in no particular order.
func (s *Store) IDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(s.tables))
	for id := range s.tables {
		ids = append(ids, id)
	}
	return ids
}
