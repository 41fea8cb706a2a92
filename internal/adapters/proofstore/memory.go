// Package proofstore - memory.go is a map-backed store for tests and
// ephemeral runs. Swappable with the SQLite adapter without touching
// usecases.
package proofstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leanaid/leanaid-go/internal/domain/entities"
	"github.com/leanaid/leanaid-go/internal/domain/ports"
)

// InMemoryStore implements ports.ProofStore in memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	proofs map[string]entities.Proof
}

// NewInMemoryStore creates a new in-memory proof store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{proofs: make(map[string]entities.Proof)}
}

// Create stores a new proof, assigning an id and timestamps when absent.
func (s *InMemoryStore) Create(ctx context.Context, proof *entities.Proof) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if proof.ID == "" {
		proof.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if proof.CreatedAt.IsZero() {
		proof.CreatedAt = now
	}
	proof.UpdatedAt = now
	s.proofs[proof.ID] = *proof
	return nil
}

// Get fetches a proof by id.
func (s *InMemoryStore) Get(ctx context.Context, id string) (*entities.Proof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.proofs[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &p, nil
}

// GetByPath fetches the proof ingested from the given workspace path.
func (s *InMemoryStore) GetByPath(ctx context.Context, path string) (*entities.Proof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.proofs {
		if p.Path == path {
			cp := p
			return &cp, nil
		}
	}
	return nil, ports.ErrNotFound
}

// Update rewrites an existing proof.
func (s *InMemoryStore) Update(ctx context.Context, proof *entities.Proof) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.proofs[proof.ID]; !ok {
		return ports.ErrNotFound
	}
	proof.UpdatedAt = time.Now().UTC()
	s.proofs[proof.ID] = *proof
	return nil
}

// Delete removes a proof by id.
func (s *InMemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.proofs[id]; !ok {
		return ports.ErrNotFound
	}
	delete(s.proofs, id)
	return nil
}

// List returns all proofs, most recently updated first.
func (s *InMemoryStore) List(ctx context.Context) ([]entities.Proof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Proof, 0, len(s.proofs))
	for _, p := range s.proofs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}
