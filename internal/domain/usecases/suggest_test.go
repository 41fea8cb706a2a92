package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leanaid/leanaid-go/internal/domain/entities"
)

// mockParser implements ports.ProofParser for testing.
type mockParser struct {
	result entities.ParsedProof
}

func (m *mockParser) Parse(source string) entities.ParsedProof {
	return m.result
}

// mockInference implements ports.InferenceService for testing.
type mockInference struct {
	available   bool
	suggestions []entities.Suggestion
	err         error
	delay       time.Duration
}

func (m *mockInference) Available(ctx context.Context) bool {
	return m.available
}

func (m *mockInference) Infer(ctx context.Context, req entities.SuggestRequest) ([]entities.Suggestion, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.suggestions, nil
}

func TestSuggestUseCase_EmptyProofRejected(t *testing.T) {
	uc := NewSuggestUseCase(&mockParser{}, nil, 0, 0, nil)

	_, err := uc.Suggest(context.Background(), entities.SuggestRequest{ProofCode: "   "})

	if !errors.Is(err, ErrEmptyProof) {
		t.Fatalf("expected ErrEmptyProof, got %v", err)
	}
}

func TestSuggestUseCase_RuleBasedOnlyWithoutInference(t *testing.T) {
	uc := NewSuggestUseCase(&mockParser{}, nil, 0, 0, nil)

	out, err := uc.Suggest(context.Background(), entities.SuggestRequest{
		ProofCode: "theorem t : True := by trivial",
	})

	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("rule-based analysis alone must still produce suggestions")
	}
}

func TestSuggestUseCase_FallbackWhenInferenceFails(t *testing.T) {
	inference := &mockInference{err: errors.New("connection refused")}
	uc := NewSuggestUseCase(&mockParser{}, inference, 0, 0, nil)

	out, err := uc.Suggest(context.Background(), entities.SuggestRequest{
		ProofCode: "theorem t : True := by trivial",
	})

	if err != nil {
		t.Fatalf("inference failure must not surface: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected rule-based suggestions despite inference failure")
	}
}

func TestSuggestUseCase_FallbackWhenInferenceSlow(t *testing.T) {
	inference := &mockInference{
		delay:       500 * time.Millisecond,
		suggestions: []entities.Suggestion{{ID: "ext", Content: "never arrives", Confidence: 0.99}},
	}
	uc := NewSuggestUseCase(&mockParser{}, inference, 0, 20*time.Millisecond, nil)

	start := time.Now()
	out, err := uc.Suggest(context.Background(), entities.SuggestRequest{
		ProofCode: "theorem t : True := by trivial",
	})

	if err != nil {
		t.Fatalf("timeout must not surface: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected rule-based suggestions despite timeout")
	}
	for _, s := range out {
		if s.ID == "ext" {
			t.Error("slow inference result should not be included")
		}
	}
	if time.Since(start) > 400*time.Millisecond {
		t.Error("suggest must not block for the full inference delay")
	}
}

func TestSuggestUseCase_ExternalResultsMergedFirst(t *testing.T) {
	inference := &mockInference{
		available: true,
		suggestions: []entities.Suggestion{
			{ID: "ext-1", Type: entities.SuggestionTactic, Content: "simp", Confidence: 0.9},
		},
	}
	uc := NewSuggestUseCase(&mockParser{}, inference, 0, 0, nil)

	out, err := uc.Suggest(context.Background(), entities.SuggestRequest{
		ProofCode: "theorem t : True := by trivial",
	})

	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}

	simpCount := 0
	for _, s := range out {
		if s.Content == "simp" {
			simpCount++
			if s.ID != "ext-1" {
				t.Error("external suggestion should win content deduplication")
			}
		}
	}
	if simpCount != 1 {
		t.Errorf("expected exactly one simp suggestion, got %d", simpCount)
	}
}

func TestSuggestUseCase_RankingAndBoundInvariants(t *testing.T) {
	inference := &mockInference{
		suggestions: []entities.Suggestion{
			{ID: "a", Content: "alpha", Confidence: 0.2},
			{ID: "b", Content: "beta", Confidence: 0.95},
			{ID: "c", Content: "gamma", Confidence: 0.5},
		},
	}
	limit := 3
	uc := NewSuggestUseCase(&mockParser{}, inference, limit, 0, nil)

	out, err := uc.Suggest(context.Background(), entities.SuggestRequest{
		ProofCode:    "theorem add : a + b = b + a := by sorry",
		CurrentGoal:  "arithmetic equality",
		ErrorMessage: "type mismatch",
	})

	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if len(out) == 0 || len(out) > limit {
		t.Fatalf("result size %d violates limit %d", len(out), limit)
	}
	for i := 0; i+1 < len(out); i++ {
		if out[i].Confidence < out[i+1].Confidence {
			t.Errorf("ranking invariant violated at %d: %f < %f", i, out[i].Confidence, out[i+1].Confidence)
		}
	}
}

func TestSuggestUseCase_ParsePassthrough(t *testing.T) {
	parsed := entities.ParsedProof{Dependencies: []string{"Nat.add_comm"}}
	uc := NewSuggestUseCase(&mockParser{result: parsed}, nil, 0, 0, nil)

	got := uc.Parse("whatever")

	if len(got.Dependencies) != 1 || got.Dependencies[0] != "Nat.add_comm" {
		t.Errorf("unexpected parse result: %+v", got)
	}
}
