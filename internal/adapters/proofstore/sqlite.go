// Package proofstore provides proof persistence adapters.
// Clean Architecture: Adapter implementing ports.ProofStore.
// SQLite keeps the store a single local file, in keeping with the
// local-first design.
package proofstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/leanaid/leanaid-go/internal/domain/entities"
	"github.com/leanaid/leanaid-go/internal/domain/ports"
)

// SQLiteStore implements ports.ProofStore with SQLite-based persistence.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore creates a new persistent proof store under dataPath.
func NewSQLiteStore(dataPath string) (*SQLiteStore, error) {
	if dataPath == "" {
		dataPath = "./data"
	}
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataPath, "proofs.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

// initSchema creates the necessary tables.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS proofs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		path TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_proofs_path ON proofs(path);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Create stores a new proof, assigning an id and timestamps when absent.
func (s *SQLiteStore) Create(ctx context.Context, proof *entities.Proof) error {
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

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO proofs (id, title, path, source, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		proof.ID, proof.Title, proof.Path, proof.Source, proof.CreatedAt, proof.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting proof: %w", err)
	}
	return nil
}

// Get fetches a proof by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*entities.Proof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, title, path, source, created_at, updated_at FROM proofs WHERE id = ?`, id))
}

// GetByPath fetches the proof ingested from the given workspace path.
func (s *SQLiteStore) GetByPath(ctx context.Context, path string) (*entities.Proof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, title, path, source, created_at, updated_at FROM proofs WHERE path = ? LIMIT 1`, path))
}

// Update rewrites an existing proof.
func (s *SQLiteStore) Update(ctx context.Context, proof *entities.Proof) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	proof.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE proofs SET title = ?, path = ?, source = ?, updated_at = ? WHERE id = ?`,
		proof.Title, proof.Path, proof.Source, proof.UpdatedAt, proof.ID)
	if err != nil {
		return fmt.Errorf("updating proof: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Delete removes a proof by id.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM proofs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting proof: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all proofs, most recently updated first.
func (s *SQLiteStore) List(ctx context.Context) ([]entities.Proof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, path, source, created_at, updated_at FROM proofs ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing proofs: %w", err)
	}
	defer rows.Close()

	var out []entities.Proof
	for rows.Next() {
		var p entities.Proof
		if err := rows.Scan(&p.ID, &p.Title, &p.Path, &p.Source, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning proof: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) scanOne(row *sql.Row) (*entities.Proof, error) {
	var p entities.Proof
	err := row.Scan(&p.ID, &p.Title, &p.Path, &p.Source, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
