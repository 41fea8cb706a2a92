// Package knowledge holds the static tables behind rule-based suggestion
// generation: known helper lemmas, known tactics, and text-pattern rules.
// Everything here is read-only after package init and safe for concurrent
// reads from many requests.
package knowledge

import (
	"regexp"

	"github.com/leanaid/leanaid-go/internal/domain/entities"
)

// Lemma is one known helper lemma.
type Lemma struct {
	Name        string
	Description string
	Category    string
}

// Tactic is one known tactic with its applicability hint.
type Tactic struct {
	Name        string
	Description string
	AppliesTo   string  // keyword the goal text is matched against
	Confidence  float64 // base ranking score before goal nudging
}

// PatternRule maps a source-text pattern to suggested snippets.
// Snippets are ordered: the first is the strongest candidate.
type PatternRule struct {
	Pattern     *regexp.Regexp
	Type        entities.SuggestionType
	Snippets    []string
	Explanation string
}

// Topic categories for lemma lookup.
const (
	CategoryArithmetic     = "arithmetic"
	CategoryMultiplication = "multiplication"
	CategoryEquality       = "equality"
	CategoryLogic          = "logic"
)

var lemmas = []Lemma{
	{Name: "Nat.add_comm", Description: "Addition is commutative: a + b = b + a", Category: CategoryArithmetic},
	{Name: "Nat.add_assoc", Description: "Addition is associative: (a + b) + c = a + (b + c)", Category: CategoryArithmetic},
	{Name: "Nat.add_zero", Description: "Adding zero on the right: a + 0 = a", Category: CategoryArithmetic},
	{Name: "Nat.zero_add", Description: "Adding zero on the left: 0 + a = a", Category: CategoryArithmetic},
	{Name: "Nat.succ_add", Description: "Successor distributes over addition: succ a + b = succ (a + b)", Category: CategoryArithmetic},
	{Name: "Nat.mul_comm", Description: "Multiplication is commutative: a * b = b * a", Category: CategoryMultiplication},
	{Name: "Nat.mul_assoc", Description: "Multiplication is associative: (a * b) * c = a * (b * c)", Category: CategoryMultiplication},
	{Name: "Nat.mul_one", Description: "Multiplying by one: a * 1 = a", Category: CategoryMultiplication},
	{Name: "Nat.one_mul", Description: "Multiplying by one on the left: 1 * a = a", Category: CategoryMultiplication},
	{Name: "Nat.left_distrib", Description: "Multiplication distributes over addition: a * (b + c) = a * b + a * c", Category: CategoryMultiplication},
	{Name: "Eq.symm", Description: "Equality is symmetric: a = b implies b = a", Category: CategoryEquality},
	{Name: "Eq.trans", Description: "Equality is transitive: a = b and b = c imply a = c", Category: CategoryEquality},
	{Name: "congrArg", Description: "Apply a function to both sides of an equality", Category: CategoryEquality},
	{Name: "And.intro", Description: "Prove a conjunction from both components", Category: CategoryLogic},
	{Name: "And.left", Description: "Extract the left component of a conjunction", Category: CategoryLogic},
	{Name: "Or.inl", Description: "Prove a disjunction from its left side", Category: CategoryLogic},
	{Name: "Or.inr", Description: "Prove a disjunction from its right side", Category: CategoryLogic},
	{Name: "not_not", Description: "Double negation elimination", Category: CategoryLogic},
}

var tactics = []Tactic{
	{Name: "simp", Description: "Simplify the goal using registered rewrite lemmas", AppliesTo: "simplif", Confidence: 0.65},
	{Name: "rfl", Description: "Close a goal that holds by definitional equality", AppliesTo: "equal", Confidence: 0.6},
	{Name: "ring", Description: "Normalize commutative (semi)ring expressions", AppliesTo: "arithmetic", Confidence: 0.6},
	{Name: "omega", Description: "Decide linear arithmetic goals over integers and naturals", AppliesTo: "linear", Confidence: 0.6},
	{Name: "intro", Description: "Introduce a hypothesis from an implication or universal", AppliesTo: "forall", Confidence: 0.6},
	{Name: "use", Description: "Provide a witness for an existential goal", AppliesTo: "existential", Confidence: 0.6},
	{Name: "constructor", Description: "Split the goal into its constructor obligations", AppliesTo: "conjunction", Confidence: 0.55},
	{Name: "cases", Description: "Case-split on a hypothesis", AppliesTo: "cases", Confidence: 0.55},
	{Name: "induction", Description: "Prove by structural induction", AppliesTo: "induct", Confidence: 0.55},
	{Name: "exact", Description: "Close the goal with an exact term", AppliesTo: "exact", Confidence: 0.5},
	{Name: "apply", Description: "Apply a lemma whose conclusion matches the goal", AppliesTo: "apply", Confidence: 0.5},
	{Name: "trivial", Description: "Discharge trivially true goals", AppliesTo: "trivial", Confidence: 0.45},
}

// Generic tactics suggested when no goal text is available.
var genericTactics = []string{"simp", "rfl", "exact", "apply"}

var patternRules = []PatternRule{
	{
		Pattern:     regexp.MustCompile(`\+[^=]*=`),
		Type:        entities.SuggestionLemma,
		Snippets:    []string{"Nat.add_comm", "Nat.add_assoc", "Nat.add_zero"},
		Explanation: "The goal involves addition; these lemmas rearrange sums",
	},
	{
		Pattern:     regexp.MustCompile(`\*[^=]*=`),
		Type:        entities.SuggestionLemma,
		Snippets:    []string{"Nat.mul_comm", "Nat.mul_assoc", "Nat.mul_one"},
		Explanation: "The goal involves multiplication; these lemmas rearrange products",
	},
	{
		Pattern:     regexp.MustCompile(`∃|\bexists\b`),
		Type:        entities.SuggestionTactic,
		Snippets:    []string{"use", "exact ⟨_, _⟩"},
		Explanation: "Existential goals are closed by providing a witness",
	},
	{
		Pattern:     regexp.MustCompile(`∀|\bforall\b`),
		Type:        entities.SuggestionTactic,
		Snippets:    []string{"intro", "intros"},
		Explanation: "Universal goals start by introducing the bound variable",
	},
	{
		Pattern:     regexp.MustCompile(`∧`),
		Type:        entities.SuggestionTactic,
		Snippets:    []string{"constructor", "exact And.intro"},
		Explanation: "Conjunctions split into one goal per component",
	},
	{
		Pattern:     regexp.MustCompile(`∨`),
		Type:        entities.SuggestionTactic,
		Snippets:    []string{"left", "right"},
		Explanation: "Disjunctions are proved by picking a side",
	},
	{
		Pattern:     regexp.MustCompile(`↔`),
		Type:        entities.SuggestionTactic,
		Snippets:    []string{"constructor", "Iff.intro"},
		Explanation: "Equivalences split into both implications",
	},
	{
		Pattern:     regexp.MustCompile(`\bsorry\b`),
		Type:        entities.SuggestionStep,
		Snippets:    []string{"simp", "exact?"},
		Explanation: "The proof still contains sorry; try closing the hole",
	},
}

// LemmasByCategory returns the known lemmas in the given topic category.
func LemmasByCategory(category string) []Lemma {
	var out []Lemma
	for _, l := range lemmas {
		if l.Category == category {
			out = append(out, l)
		}
	}
	return out
}

// TacticByName looks up a tactic by exact name.
func TacticByName(name string) (Tactic, bool) {
	for _, t := range tactics {
		if t.Name == name {
			return t, true
		}
	}
	return Tactic{}, false
}

// Tactics returns all known tactics.
func Tactics() []Tactic {
	out := make([]Tactic, len(tactics))
	copy(out, tactics)
	return out
}

// GenericTactics returns tactic names worth trying with no goal context.
func GenericTactics() []string {
	out := make([]string, len(genericTactics))
	copy(out, genericTactics)
	return out
}

// PatternRules returns the ordered pattern rules.
func PatternRules() []PatternRule {
	out := make([]PatternRule, len(patternRules))
	copy(out, patternRules)
	return out
}
