package client

import (
	"sync"

	"docvault/internal/model"
)

// Store owns the client-side document list. The only mutation entry
// point is Replace, which swaps the whole list on refresh; readers get
// an independent copy so projections cannot alias store internals.
type Store struct {
	mu   sync.RWMutex
	docs []model.Document
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps the stored list with the authoritative server list.
func (s *Store) Replace(docs []model.Document) {
	cp := make([]model.Document, len(docs))
	copy(cp, docs)

	s.mu.Lock()
	s.docs = cp
	s.mu.Unlock()
}

// Snapshot returns a copy of the current list.
func (s *Store) Snapshot() []model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make([]model.Document, len(s.docs))
	copy(cp, s.docs)
	return cp
}

// Len reports the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
