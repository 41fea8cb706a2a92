// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

import "time"

// ParsedProof is the structured model extracted from raw proof source.
// Immutable result of one parse call: slices are populated once and only read afterwards.
type ParsedProof struct {
	Theorems     []DeclarationInfo `json:"theorems"`
	Lemmas       []DeclarationInfo `json:"lemmas"`
	Definitions  []DefinitionInfo  `json:"definitions"`
	Dependencies []string          `json:"dependencies"` // identifiers referenced by proof steps, first-seen order, deduplicated
	Errors       []ParseError      `json:"errors"`
}

// DeclarationInfo describes one theorem or lemma found in the source.
type DeclarationInfo struct {
	Name      string `json:"name"`
	Statement string `json:"statement"` // text between the name and the proof body
	Proof     string `json:"proof"`     // raw proof body, may be empty
	LineStart int    `json:"lineStart"` // 0-based, inclusive
	LineEnd   int    `json:"lineEnd"`   // 0-based, inclusive
}

// DefinitionInfo describes one def found in the source.
// Definitions are single-line in this model - no proof body tracking.
type DefinitionInfo struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Value     string `json:"value,omitempty"` // text after :=, optional
	LineStart int    `json:"lineStart"`
	LineEnd   int    `json:"lineEnd"`
}

// ParseError records the parser's own structural confusion.
// It does not report language errors - the parser is not a proof checker.
type ParseError struct {
	Message string `json:"message"`
	Line    int    `json:"line"`   // 1-based
	Column  int    `json:"column"` // 1-based
}

// SuggestionType classifies what kind of action a suggestion proposes.
type SuggestionType string

const (
	SuggestionLemma  SuggestionType = "lemma"
	SuggestionTactic SuggestionType = "tactic"
	SuggestionFix    SuggestionType = "fix"
	SuggestionStep   SuggestionType = "step"
)

// Suggestion is one ranked, explainable proposal for the user.
// Created fresh per request and never mutated afterwards; merging only
// reorders and filters.
type Suggestion struct {
	ID          string         `json:"id"` // unique within one response only
	Type        SuggestionType `json:"type"`
	Content     string         `json:"content"`     // literal snippet or name to insert/apply
	Explanation string         `json:"explanation"` // human-readable rationale
	Confidence  float64        `json:"confidence"`  // [0,1], ranking score, not a calibrated probability
	Context     string         `json:"context"`     // echo of the originating source text, may be empty
}

// SuggestRequest is the input of one suggestion call. Stateless across calls.
type SuggestRequest struct {
	ProofCode    string `json:"proofCode"`
	CurrentGoal  string `json:"currentGoal,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Proof is a stored proof document, keyed by an opaque id.
type Proof struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Path      string    `json:"path,omitempty"` // source file path when ingested from the workspace
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
