// Package usecases - suggest.go orchestrates the suggestion pipeline:
// parse, analyze, optionally infer externally, then merge and rank.
package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/leanaid/leanaid-go/internal/domain/analyzer"
	"github.com/leanaid/leanaid-go/internal/domain/entities"
	"github.com/leanaid/leanaid-go/internal/domain/ports"
)

// ErrEmptyProof is the only error Suggest surfaces to callers: the request
// carried no proof source. Everything else degrades to rule-based output.
var ErrEmptyProof = errors.New("proofCode is required")

const defaultInferTimeout = 10 * time.Second

// SuggestUseCase produces ranked suggestions for a proof-in-progress.
// Rule-based analysis always runs; an external inference backend, when
// configured, runs concurrently and its results are merged in front.
type SuggestUseCase struct {
	parser       ports.ProofParser
	inference    ports.InferenceService // nil when no backend is configured
	limit        int
	inferTimeout time.Duration
	logger       *zap.Logger
}

// NewSuggestUseCase creates a SuggestUseCase with injected dependencies.
// inference may be nil; the usecase then runs purely rule-based.
func NewSuggestUseCase(
	parser ports.ProofParser,
	inference ports.InferenceService,
	limit int,
	inferTimeout time.Duration,
	logger *zap.Logger,
) *SuggestUseCase {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	if inferTimeout <= 0 {
		inferTimeout = defaultInferTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestUseCase{
		parser:       parser,
		inference:    inference,
		limit:        limit,
		inferTimeout: inferTimeout,
		logger:       logger,
	}
}

// Suggest runs the full pipeline for one request. For a non-empty proof it
// always returns a non-empty, confidence-ordered, bounded list: external
// inference failing or timing out only removes its contribution.
func (uc *SuggestUseCase) Suggest(ctx context.Context, req entities.SuggestRequest) ([]entities.Suggestion, error) {
	if strings.TrimSpace(req.ProofCode) == "" {
		return nil, ErrEmptyProof
	}

	parsed := uc.parser.Parse(req.ProofCode)

	if uc.inference == nil {
		return Merge(nil, analyzer.Analyze(parsed, req), uc.limit), nil
	}

	ictx, cancel := context.WithTimeout(ctx, uc.inferTimeout)
	defer cancel()

	resultCh := make(chan []entities.Suggestion, 1)
	go func() {
		inferred, err := uc.inference.Infer(ictx, req)
		if err != nil {
			uc.logger.Debug("external inference failed, falling back to rules", zap.Error(err))
			resultCh <- nil
			return
		}
		resultCh <- inferred
	}()

	// Rule-based analysis runs while the inference round-trips are in flight.
	analyzed := analyzer.Analyze(parsed, req)

	var external []entities.Suggestion
	select {
	case external = <-resultCh:
	case <-ictx.Done():
		uc.logger.Debug("external inference timed out", zap.Duration("timeout", uc.inferTimeout))
	}

	return Merge(external, analyzed, uc.limit), nil
}

// Parse exposes the structured model directly, for the parse endpoint and
// dependency graph consumers.
func (uc *SuggestUseCase) Parse(source string) entities.ParsedProof {
	return uc.parser.Parse(source)
}
