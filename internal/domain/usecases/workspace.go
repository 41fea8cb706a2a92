// Package usecases - workspace.go keeps the proof store in sync with proof
// files on disk, so the API can serve pre-parsed models for the workspace.
package usecases

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/leanaid/leanaid-go/internal/domain/ports"
)

// WorkspaceUseCase ingests proof files as they change on disk.
type WorkspaceUseCase struct {
	watcher ports.FileWatcher
	loader  ports.ProofLoader
	parser  ports.ProofParser
	store   ports.ProofStore
	logger  *zap.Logger
}

// NewWorkspaceUseCase creates a WorkspaceUseCase with injected dependencies.
func NewWorkspaceUseCase(
	watcher ports.FileWatcher,
	loader ports.ProofLoader,
	parser ports.ProofParser,
	store ports.ProofStore,
	logger *zap.Logger,
) *WorkspaceUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkspaceUseCase{
		watcher: watcher,
		loader:  loader,
		parser:  parser,
		store:   store,
		logger:  logger,
	}
}

// Run blocks until ctx is cancelled, ingesting changed files as they appear.
// A failing event is logged and skipped; the loop keeps serving later events.
func (uc *WorkspaceUseCase) Run(ctx context.Context, dir string) error {
	events, err := uc.watcher.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	uc.logger.Info("watching workspace", zap.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := uc.handle(ctx, ev); err != nil {
				uc.logger.Warn("workspace event failed",
					zap.String("path", ev.Path), zap.Error(err))
			}
		}
	}
}

func (uc *WorkspaceUseCase) handle(ctx context.Context, ev ports.FileEvent) error {
	switch ev.Operation {
	case ports.FileCreated, ports.FileModified:
		return uc.ingest(ctx, ev.Path)
	case ports.FileDeleted:
		existing, err := uc.store.GetByPath(ctx, ev.Path)
		if errors.Is(err, ports.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return uc.store.Delete(ctx, existing.ID)
	}
	return nil
}

// ingest loads and parses one file, then upserts it keyed by path.
func (uc *WorkspaceUseCase) ingest(ctx context.Context, path string) error {
	proof, err := uc.loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	parsed := uc.parser.Parse(proof.Source)
	uc.logger.Debug("parsed workspace proof",
		zap.String("path", path),
		zap.Int("theorems", len(parsed.Theorems)),
		zap.Int("lemmas", len(parsed.Lemmas)),
		zap.Int("dependencies", len(parsed.Dependencies)))

	existing, err := uc.store.GetByPath(ctx, path)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return uc.store.Create(ctx, proof)
	case err != nil:
		return err
	default:
		existing.Title = proof.Title
		existing.Source = proof.Source
		return uc.store.Update(ctx, existing)
	}
}
