// Package parser provides the proof source parser.
// Clean Architecture: Adapter implementing ports.ProofParser.
//
// This is deliberately not a real grammar for the proof language: it is a
// single line-oriented pass that recovers declarations, definitions and
// proof-step dependencies well enough to drive suggestion generation and
// dependency graph consumers. It never fails - malformed source degrades
// to an empty model.
package parser

import (
	"regexp"
	"strings"

	"github.com/leanaid/leanaid-go/internal/domain/entities"
)

// LeanParser implements ports.ProofParser for Lean-style tactic proofs.
type LeanParser struct{}

// NewLeanParser creates a new source parser.
func NewLeanParser() *LeanParser {
	return &LeanParser{}
}

var (
	declHeaderRe = regexp.MustCompile(`^(theorem|lemma)\s+([\w.']+)`)
	defHeaderRe  = regexp.MustCompile(`^def\s+([\w.']+)`)

	// Proof-step keywords followed by the identifier they reference.
	// rw takes a bracketed list, so a leading [ is tolerated.
	depRe = regexp.MustCompile(`\b(?:apply|rw|exact|use)\s+\[?([A-Za-z_][A-Za-z0-9_.']*)`)

	nonWordRe = regexp.MustCompile(`\W+`)
)

// openDecl is a declaration whose closing line has not been seen yet.
type openDecl struct {
	keyword    string // "theorem" or "lemma", tagged at parse time
	name       string
	statement  []string
	proof      []string
	lineStart  int
	inProof    bool
	braceDepth int
}

// Parse scans the source in one pass and returns the structured model.
// It is a pure function of its input and never fails.
func (p *LeanParser) Parse(source string) entities.ParsedProof {
	result := entities.ParsedProof{
		Theorems:     []entities.DeclarationInfo{},
		Lemmas:       []entities.DeclarationInfo{},
		Definitions:  []entities.DefinitionInfo{},
		Dependencies: []string{},
		Errors:       []entities.ParseError{},
	}

	lines := strings.Split(source, "\n")
	seen := make(map[string]bool)
	var current *openDecl

	flush := func(lineEnd int) {
		if current == nil {
			return
		}
		if lineEnd < current.lineStart {
			lineEnd = current.lineStart
		}
		decl := entities.DeclarationInfo{
			Name:      current.name,
			Statement: strings.TrimSpace(strings.Join(current.statement, " ")),
			Proof:     strings.TrimSpace(strings.Join(current.proof, "\n")),
			LineStart: current.lineStart,
			LineEnd:   lineEnd,
		}
		if current.keyword == "lemma" {
			result.Lemmas = append(result.Lemmas, decl)
		} else {
			result.Theorems = append(result.Theorems, decl)
		}
		current = nil
	}

	collectDeps := func(text string) {
		for _, m := range depRe.FindAllStringSubmatch(text, -1) {
			ident := m[1]
			if ident == "" || seen[ident] {
				continue
			}
			seen[ident] = true
			result.Dependencies = append(result.Dependencies, ident)
		}
	}

	lastLine := 0
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line != "" {
			lastLine = i
		}

		if m := declHeaderRe.FindStringSubmatch(line); m != nil {
			flush(i - 1)
			current = &openDecl{
				keyword:   m[1],
				name:      cleanName(m[2]),
				lineStart: i,
			}
			rest := line[len(m[0]):]
			p.consumeHeaderRest(current, rest, collectDeps)
			continue
		}

		if m := defHeaderRe.FindStringSubmatch(line); m != nil {
			flush(i - 1)
			result.Definitions = append(result.Definitions, parseDefinition(cleanName(m[1]), line[len(m[0]):], i))
			continue
		}

		if current == nil {
			continue
		}

		if current.inProof {
			current.proof = append(current.proof, raw)
			current.braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
			collectDeps(line)
			continue
		}

		// Still in the statement; the proof body opens at := or a by block.
		if idx := strings.Index(line, ":="); idx >= 0 {
			if s := strings.TrimSpace(line[:idx]); s != "" {
				current.statement = append(current.statement, s)
			}
			p.enterProof(current, line[idx+2:], collectDeps)
		} else if line == "by" || strings.HasPrefix(line, "by ") {
			p.enterProof(current, line, collectDeps)
		} else {
			current.statement = append(current.statement, line)
		}
	}

	if current != nil {
		if current.braceDepth != 0 {
			result.Errors = append(result.Errors, entities.ParseError{
				Message: "unbalanced braces in proof body of " + current.name,
				Line:    lastLine + 1,
				Column:  1,
			})
		}
		flush(lastLine)
	}

	return result
}

// consumeHeaderRest splits the text after the declaration name into
// statement and, when := appears on the header line, the start of the
// proof body. The statement is the text after the first colon.
func (p *LeanParser) consumeHeaderRest(d *openDecl, rest string, collectDeps func(string)) {
	body := ""
	if idx := strings.Index(rest, ":="); idx >= 0 {
		body = rest[idx+2:]
		rest = rest[:idx]
	}
	if idx := strings.Index(rest, ":"); idx >= 0 {
		rest = rest[idx+1:]
	}
	if s := strings.TrimSpace(rest); s != "" {
		d.statement = append(d.statement, s)
	}
	if body != "" {
		p.enterProof(d, body, collectDeps)
	}
}

// enterProof marks the declaration as inside its proof body and consumes
// the first body fragment.
func (p *LeanParser) enterProof(d *openDecl, fragment string, collectDeps func(string)) {
	d.inProof = true
	fragment = strings.TrimSpace(fragment)
	if fragment != "" {
		d.proof = append(d.proof, fragment)
		d.braceDepth += strings.Count(fragment, "{") - strings.Count(fragment, "}")
		collectDeps(fragment)
	}
}

// parseDefinition handles the single-line def model: name : type [:= value].
func parseDefinition(name, rest string, line int) entities.DefinitionInfo {
	def := entities.DefinitionInfo{
		Name:      name,
		LineStart: line,
		LineEnd:   line,
	}
	if idx := strings.Index(rest, ":="); idx >= 0 {
		def.Value = strings.TrimSpace(rest[idx+2:])
		rest = rest[:idx]
	}
	if idx := strings.Index(rest, ":"); idx >= 0 {
		rest = rest[idx+1:]
	}
	def.Type = strings.TrimSpace(rest)
	return def
}

// cleanName strips non-word characters from a matched identifier, so that
// punctuation glued to the name (binders, colons) does not leak in.
func cleanName(raw string) string {
	return nonWordRe.ReplaceAllString(raw, "")
}
