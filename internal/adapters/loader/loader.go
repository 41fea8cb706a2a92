// Package loader provides proof document loading adapters.
// Clean Architecture: Adapter implementing ports.ProofLoader.
package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/leanaid/leanaid-go/internal/domain/entities"
)

// LeanLoader loads plain-text proof source files (.lean).
type LeanLoader struct{}

// NewLeanLoader creates a new proof file loader.
func NewLeanLoader() *LeanLoader {
	return &LeanLoader{}
}

// Load reads a proof source file from the given path.
// The id is deterministic in the path, so re-loading the same file always
// addresses the same stored proof.
func (l *LeanLoader) Load(ctx context.Context, path string) (*entities.Proof, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	created := time.Now()
	if info, err := os.Stat(path); err == nil {
		created = info.ModTime()
	}

	base := filepath.Base(path)
	return &entities.Proof{
		ID:        generateProofID(path),
		Title:     strings.TrimSuffix(base, filepath.Ext(base)),
		Path:      path,
		Source:    string(content),
		CreatedAt: created,
		UpdatedAt: time.Now(),
	}, nil
}

// SupportedExtensions returns file extensions this loader handles.
func (l *LeanLoader) SupportedExtensions() []string {
	return []string{".lean"}
}

// generateProofID creates a deterministic id for a workspace file.
func generateProofID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}
