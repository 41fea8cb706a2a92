// Package analyzer produces rule-based suggestion candidates from a parsed
// proof and the caller-supplied context. Every function here is pure apart
// from id generation, and Analyze never fails: each heuristic is isolated so
// one misbehaving strategy degrades to fewer suggestions, not an error.
package analyzer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/leanaid/leanaid-go/internal/domain/entities"
	"github.com/leanaid/leanaid-go/internal/domain/knowledge"
)

// Confidence bands used by the individual heuristics.
const (
	patternBaseConfidence = 0.75
	patternStep           = 0.07
	lemmaBaseConfidence   = 0.65
	commNudge             = 0.1
	goalNudge             = 0.2
	genericConfidence     = 0.45
	fallbackConfidence    = 0.3
)

// Analyze runs every heuristic against the parsed proof and request context
// and returns their combined candidates, unranked. For a non-empty proof it
// never returns an empty list: a generic fallback always fires last.
func Analyze(parsed entities.ParsedProof, req entities.SuggestRequest) []entities.Suggestion {
	var out []entities.Suggestion
	out = append(out, guard(func() []entities.Suggestion { return classifyError(req) })...)
	out = append(out, guard(func() []entities.Suggestion { return matchPatterns(req) })...)
	out = append(out, guard(func() []entities.Suggestion { return relevantLemmas(req) })...)
	out = append(out, guard(func() []entities.Suggestion { return relevantTactics(req) })...)
	out = append(out, guard(func() []entities.Suggestion { return incompleteProofs(parsed) })...)

	if len(out) == 0 && strings.TrimSpace(req.ProofCode) != "" {
		out = fallback()
	}
	return out
}

// guard isolates one heuristic so a panic inside it (unexpected indexing,
// pathological input) suppresses only that heuristic's candidates.
func guard(strategy func() []entities.Suggestion) (out []entities.Suggestion) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
		}
	}()
	return strategy()
}

// classifyError maps known substrings of the caller-supplied error message
// to fix suggestions. Categories are not mutually exclusive: every matching
// category contributes.
func classifyError(req entities.SuggestRequest) []entities.Suggestion {
	if req.ErrorMessage == "" {
		return nil
	}
	msg := strings.ToLower(req.ErrorMessage)
	var out []entities.Suggestion

	if strings.Contains(msg, "type") || strings.Contains(msg, "mismatch") {
		out = append(out,
			newSuggestion(entities.SuggestionFix, "show _",
				"State the expected type explicitly with show to surface where the mismatch happens", 0.8, req.ErrorMessage),
			newSuggestion(entities.SuggestionFix, "norm_cast",
				"Reconcile numeric coercions that often cause type mismatches", 0.75, req.ErrorMessage),
		)
	}
	if strings.Contains(msg, "unknown") || strings.Contains(msg, "not found") {
		out = append(out,
			newSuggestion(entities.SuggestionFix, "import Mathlib",
				"Add the import that provides the missing identifier, or check it for typos - it may be undefined", 0.85, req.ErrorMessage),
			newSuggestion(entities.SuggestionFix, "open Nat",
				"Open the namespace the identifier lives in so it resolves without a prefix", 0.8, req.ErrorMessage),
		)
	}
	if strings.Contains(msg, "syntax") || strings.Contains(msg, "parse") {
		out = append(out,
			newSuggestion(entities.SuggestionFix, ":= by",
				"Check that the statement and the tactic proof are separated by := by", 0.8, req.ErrorMessage),
			newSuggestion(entities.SuggestionFix, "·",
				"Check focus dots and indentation inside the tactic block", 0.7, req.ErrorMessage),
		)
	}
	if strings.Contains(msg, "goal") || strings.Contains(msg, "not proved") {
		out = append(out,
			newSuggestion(entities.SuggestionFix, "apply?",
				"Search the library for a lemma that closes the remaining goal", 0.75, req.ErrorMessage),
			newSuggestion(entities.SuggestionFix, "simp",
				"Simplification may discharge the remaining goal", 0.7, req.ErrorMessage),
		)
	}
	return out
}

// matchPatterns evaluates every knowledge pattern rule against the proof
// source. Each listed snippet becomes one suggestion, with confidence
// stepping down so the rule's first snippet ranks highest.
func matchPatterns(req entities.SuggestRequest) []entities.Suggestion {
	var out []entities.Suggestion
	for _, rule := range knowledge.PatternRules() {
		if !rule.Pattern.MatchString(req.ProofCode) {
			continue
		}
		matched := rule.Pattern.FindString(req.ProofCode)
		for i, snippet := range rule.Snippets {
			conf := patternBaseConfidence - patternStep*float64(i)
			out = append(out, newSuggestion(rule.Type, snippet, rule.Explanation, conf, matched))
		}
	}
	return out
}

// relevantLemmas selects one topic category from cheap operator heuristics
// on the raw source and proposes a bounded number of its lemmas.
func relevantLemmas(req entities.SuggestRequest) []entities.Suggestion {
	code := req.ProofCode
	var category string
	switch {
	case strings.Contains(code, "+"):
		category = knowledge.CategoryArithmetic
	case strings.Contains(code, "*"):
		category = knowledge.CategoryMultiplication
	case strings.Contains(code, "∧") || strings.Contains(code, "∨"):
		category = knowledge.CategoryLogic
	case strings.Contains(code, "="):
		category = knowledge.CategoryEquality
	default:
		return nil
	}

	conf := lemmaBaseConfidence
	if strings.Contains(strings.ToLower(code), "comm") {
		conf += commNudge
	}

	const maxLemmas = 3
	var out []entities.Suggestion
	for _, l := range knowledge.LemmasByCategory(category) {
		if len(out) == maxLemmas {
			break
		}
		out = append(out, newSuggestion(entities.SuggestionLemma, l.Name, l.Description, conf, code))
	}
	return out
}

// relevantTactics proposes tactics whose applicability hint appears in the
// goal text, nudged above their base confidence. With no goal, a fixed set
// of generically useful tactics is proposed at a lower band.
func relevantTactics(req entities.SuggestRequest) []entities.Suggestion {
	if req.CurrentGoal == "" {
		return genericTactics()
	}

	goal := strings.ToLower(req.CurrentGoal)
	var out []entities.Suggestion
	for _, t := range knowledge.Tactics() {
		if t.AppliesTo == "" || !strings.Contains(goal, t.AppliesTo) {
			continue
		}
		conf := t.Confidence + goalNudge
		if conf > 0.95 {
			conf = 0.95
		}
		out = append(out, newSuggestion(entities.SuggestionTactic, t.Name, t.Description, conf, req.CurrentGoal))
	}
	if len(out) == 0 {
		return genericTactics()
	}
	return out
}

func genericTactics() []entities.Suggestion {
	var out []entities.Suggestion
	for _, name := range knowledge.GenericTactics() {
		t, ok := knowledge.TacticByName(name)
		if !ok {
			continue
		}
		out = append(out, newSuggestion(entities.SuggestionTactic, t.Name, t.Description, genericConfidence, ""))
	}
	return out
}

// incompleteProofs flags declarations that have no proof body yet.
func incompleteProofs(parsed entities.ParsedProof) []entities.Suggestion {
	var out []entities.Suggestion
	flag := func(decls []entities.DeclarationInfo) {
		for _, d := range decls {
			if strings.TrimSpace(d.Proof) != "" {
				continue
			}
			out = append(out, newSuggestion(entities.SuggestionStep, ":= by",
				"Declaration "+d.Name+" has no proof body yet; open a tactic block", 0.5, d.Statement))
		}
	}
	flag(parsed.Theorems)
	flag(parsed.Lemmas)
	return out
}

// fallback guarantees the analyzer never comes back empty-handed for a
// non-empty proof.
func fallback() []entities.Suggestion {
	return []entities.Suggestion{
		newSuggestion(entities.SuggestionStep, "simp", "Try simplifying the goal", fallbackConfidence, ""),
		newSuggestion(entities.SuggestionStep, "apply?", "Try applying a known lemma from the library", fallbackConfidence, ""),
		newSuggestion(entities.SuggestionStep, "exact?", "Search for a term that closes the goal exactly", fallbackConfidence-0.05, ""),
	}
}

func newSuggestion(typ entities.SuggestionType, content, explanation string, confidence float64, context string) entities.Suggestion {
	return entities.Suggestion{
		ID:          uuid.NewString(),
		Type:        typ,
		Content:     content,
		Explanation: explanation,
		Confidence:  confidence,
		Context:     context,
	}
}
