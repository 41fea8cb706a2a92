package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_SingleTheorem(t *testing.T) {
	p := NewLeanParser()
	result := p.Parse("theorem example : True := by trivial")

	if len(result.Theorems) != 1 {
		t.Fatalf("expected 1 theorem, got %d", len(result.Theorems))
	}
	thm := result.Theorems[0]
	if thm.Name != "example" {
		t.Errorf("unexpected name: %s", thm.Name)
	}
	if thm.Statement != "True" {
		t.Errorf("unexpected statement: %q", thm.Statement)
	}
	if thm.Proof != "by trivial" {
		t.Errorf("unexpected proof: %q", thm.Proof)
	}
	if thm.LineStart != 0 || thm.LineEnd != 0 {
		t.Errorf("unexpected line range: %d..%d", thm.LineStart, thm.LineEnd)
	}
	if len(result.Lemmas) != 0 || len(result.Definitions) != 0 {
		t.Error("expected no lemmas or definitions")
	}
	if len(result.Dependencies) != 0 || len(result.Errors) != 0 {
		t.Error("expected no dependencies or errors")
	}
}

func TestParse_LemmaClassifiedByKeyword(t *testing.T) {
	p := NewLeanParser()
	result := p.Parse("lemma helper : 1 = 1 := by rfl")

	if len(result.Lemmas) != 1 {
		t.Fatalf("expected 1 lemma, got %d", len(result.Lemmas))
	}
	if len(result.Theorems) != 0 {
		t.Error("a lemma must not also appear in theorems")
	}
	if result.Lemmas[0].Name != "helper" {
		t.Errorf("unexpected name: %s", result.Lemmas[0].Name)
	}
}

func TestParse_Definition(t *testing.T) {
	p := NewLeanParser()
	result := p.Parse("def double : Nat → Nat := fun n => 2 * n")

	if len(result.Definitions) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(result.Definitions))
	}
	def := result.Definitions[0]
	if def.Name != "double" {
		t.Errorf("unexpected name: %s", def.Name)
	}
	if def.Type != "Nat → Nat" {
		t.Errorf("unexpected type: %q", def.Type)
	}
	if def.Value != "fun n => 2 * n" {
		t.Errorf("unexpected value: %q", def.Value)
	}
	if def.LineStart != 0 || def.LineEnd != 0 {
		t.Errorf("definitions are single-line, got %d..%d", def.LineStart, def.LineEnd)
	}
}

func TestParse_DefinitionWithoutValue(t *testing.T) {
	p := NewLeanParser()
	result := p.Parse("def mystery : Nat")

	if len(result.Definitions) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(result.Definitions))
	}
	if result.Definitions[0].Type != "Nat" {
		t.Errorf("unexpected type: %q", result.Definitions[0].Type)
	}
	if result.Definitions[0].Value != "" {
		t.Errorf("expected empty value, got %q", result.Definitions[0].Value)
	}
}

func TestParse_DependencyDedup(t *testing.T) {
	src := `theorem t : True := by
  apply x
  use x
  apply x`

	result := NewLeanParser().Parse(src)

	if len(result.Dependencies) != 1 {
		t.Fatalf("expected 1 dependency, got %v", result.Dependencies)
	}
	if result.Dependencies[0] != "x" {
		t.Errorf("unexpected dependency: %s", result.Dependencies[0])
	}
}

func TestParse_DependencyOrderIsFirstSeen(t *testing.T) {
	src := `theorem t : True := by
  exact second_thing
  apply first_again
  exact second_thing`

	result := NewLeanParser().Parse(src)

	want := []string{"second_thing", "first_again"}
	if diff := cmp.Diff(want, result.Dependencies); diff != "" {
		t.Errorf("dependency order mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RwBracketedDependency(t *testing.T) {
	src := `theorem t : a + b = b + a := by
  rw [Nat.add_comm]`

	result := NewLeanParser().Parse(src)

	if len(result.Dependencies) != 1 || result.Dependencies[0] != "Nat.add_comm" {
		t.Errorf("expected Nat.add_comm dependency, got %v", result.Dependencies)
	}
}

func TestParse_SelfReferenceKept(t *testing.T) {
	// Deliberately permissive: a proof step naming its own declaration
	// still counts as a dependency.
	src := `theorem loop : True := by
  apply loop`

	result := NewLeanParser().Parse(src)

	if len(result.Dependencies) != 1 || result.Dependencies[0] != "loop" {
		t.Errorf("expected self-reference to be kept, got %v", result.Dependencies)
	}
}

func TestParse_NeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"{{{invalid}}}",
		":= := :=",
		"theorem",
		"theorem : :=",
		"lemma \t\n\n  }}}{{{",
		"def\ndef x\ntheorem y",
	}
	p := NewLeanParser()
	for _, src := range inputs {
		result := p.Parse(src)
		if result.Theorems == nil || result.Lemmas == nil || result.Definitions == nil ||
			result.Dependencies == nil || result.Errors == nil {
			t.Errorf("nil slice in result for %q", src)
		}
	}
}

func TestParse_Deterministic(t *testing.T) {
	src := `theorem a : p ∧ q := by
  constructor
  exact hp
  exact hq

lemma b : 1 + 1 = 2 := by simp

def c : Nat := 3`

	p := NewLeanParser()
	first := p.Parse(src)
	second := p.Parse(src)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("parse is not deterministic (-first +second):\n%s", diff)
	}
}

func TestParse_LineRanges(t *testing.T) {
	src := `theorem a : True := by
  trivial

theorem b : True := by
  trivial`

	result := NewLeanParser().Parse(src)

	if len(result.Theorems) != 2 {
		t.Fatalf("expected 2 theorems, got %d", len(result.Theorems))
	}
	a, b := result.Theorems[0], result.Theorems[1]
	// a is closed at the line before the next header, which here is a blank.
	if a.LineStart != 0 || a.LineEnd != 2 {
		t.Errorf("theorem a range: %d..%d", a.LineStart, a.LineEnd)
	}
	if b.LineStart != 3 || b.LineEnd != 4 {
		t.Errorf("theorem b range: %d..%d", b.LineStart, b.LineEnd)
	}
	for _, d := range append(result.Theorems, result.Lemmas...) {
		if d.LineEnd < d.LineStart || d.LineStart < 0 {
			t.Errorf("line range invariant violated for %s: %d..%d", d.Name, d.LineStart, d.LineEnd)
		}
	}
}

func TestParse_UnbalancedBraceReported(t *testing.T) {
	src := `theorem t : True := by
  { trivial`

	result := NewLeanParser().Parse(src)

	if len(result.Theorems) != 1 {
		t.Fatal("declaration should still be flushed")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 parse error, got %v", result.Errors)
	}
	if result.Errors[0].Line < 1 || result.Errors[0].Column < 1 {
		t.Errorf("parse error positions are 1-based: %+v", result.Errors[0])
	}
}

func TestParse_BraceInsideStringSkewsDepth(t *testing.T) {
	// Known limitation of the depth heuristic: braces inside string
	// literals are counted like structural braces, so this balanced proof
	// is reported as unbalanced. Kept as documented behavior.
	src := `theorem t : True := by
  exact "{"`

	result := NewLeanParser().Parse(src)

	if len(result.Errors) != 1 {
		t.Errorf("depth heuristic expected to misfire here, got %v", result.Errors)
	}
}

func TestParse_MultilineStatement(t *testing.T) {
	src := `theorem long_statement :
    1 + 2 = 3
    := by simp`

	result := NewLeanParser().Parse(src)

	if len(result.Theorems) != 1 {
		t.Fatalf("expected 1 theorem, got %d", len(result.Theorems))
	}
	if result.Theorems[0].Statement != "1 + 2 = 3" {
		t.Errorf("unexpected statement: %q", result.Theorems[0].Statement)
	}
	if result.Theorems[0].Proof != "by simp" {
		t.Errorf("unexpected proof: %q", result.Theorems[0].Proof)
	}
}
