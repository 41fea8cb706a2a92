// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"
	"errors"

	"github.com/leanaid/leanaid-go/internal/domain/entities"
)

// ErrNotFound is returned by ProofStore lookups for unknown ids or paths.
var ErrNotFound = errors.New("proof not found")

// ProofParser turns raw proof source text into a structured model.
// Implementations must be pure: same input, same output, and they never fail -
// malformed source degrades to an empty model, not an error.
type ProofParser interface {
	Parse(source string) entities.ParsedProof
}

// InferenceService produces suggestions from an external inference backend.
// Optional collaborator: the engine must work fully without one.
type InferenceService interface {
	// Available probes the backend. Any failure means unavailable; no retries.
	Available(ctx context.Context) bool

	// Infer asks the backend for suggestions. An error here is advisory -
	// callers fall back to rule-based suggestions and never surface it.
	Infer(ctx context.Context, req entities.SuggestRequest) ([]entities.Suggestion, error)
}

// ProofStore persists proofs keyed by opaque id.
type ProofStore interface {
	Create(ctx context.Context, proof *entities.Proof) error
	Get(ctx context.Context, id string) (*entities.Proof, error)
	GetByPath(ctx context.Context, path string) (*entities.Proof, error)
	Update(ctx context.Context, proof *entities.Proof) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entities.Proof, error)
}

// ProofLoader reads a proof document from disk.
type ProofLoader interface {
	Load(ctx context.Context, path string) (*entities.Proof, error)

	// SupportedExtensions returns file extensions this loader handles.
	SupportedExtensions() []string
}

// FileWatcher monitors a directory for changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
