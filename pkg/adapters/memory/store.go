package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/nodegraph/pkg/domain"
)

// Store implements ports.GraphStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Document
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Document),
	}
}

// NewFromDocuments creates a store seeded with docs, keyed by document name.
func NewFromDocuments(docs ...*domain.Document) (*Store, error) {
	s := NewStore()
	for _, doc := range docs {
		if doc == nil || doc.Name == "" {
			return nil, fmt.Errorf("document missing name")
		}
		s.data[doc.Name] = doc.Clone()
	}
	return s, nil
}

// SaveGraph persists a copy of doc.
func (s *Store) SaveGraph(ctx context.Context, name string, doc *domain.Document) error {
	if name == "" {
		return fmt.Errorf("graph name cannot be empty")
	}
	// Deep copy to ensure isolation, similar to serialization
	copied := doc.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// LoadGraph returns a copy so callers can't mutate the store through it.
func (s *Store) LoadGraph(ctx context.Context, name string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, name)
	}
	return doc.Clone(), nil
}

// DeleteGraph removes the graph.
func (s *Store) DeleteGraph(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// ListGraphs returns the stored graph names in order.
func (s *Store) ListGraphs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}
