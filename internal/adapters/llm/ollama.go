// Package llm provides the Ollama external inference adapter.
// Clean Architecture: Adapter implementing ports.InferenceService.
//
// The backend is optional and fail-fast: a single failed probe or request
// means no external suggestions for this call, never a caller-visible error.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leanaid/leanaid-go/internal/domain/entities"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3.2"
	defaultTimeout = 15 * time.Second

	// The model is asked for 3 items and held to it regardless of verbosity.
	maxInferred = 3
)

// OllamaAdapter talks to a locally hosted Ollama instance.
type OllamaAdapter struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaAdapter creates a new Ollama inference adapter.
func NewOllamaAdapter(baseURL, model string, timeout time.Duration) *OllamaAdapter {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OllamaAdapter{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// ollamaGenerateRequest is the Ollama generate API request.
type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

// ollamaOptions carries the near-deterministic sampling parameters.
type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

// ollamaGenerateResponse is the Ollama generate API response.
type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Available probes the model-listing endpoint. Any connection failure or
// non-success status means unavailable; there are no retries.
func (a *OllamaAdapter) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Infer asks the backend for suggestions. An unavailable backend yields an
// empty list immediately; later failures are returned as errors for the
// caller to swallow.
func (a *OllamaAdapter) Infer(ctx context.Context, sreq entities.SuggestRequest) ([]entities.Suggestion, error) {
	if !a.Available(ctx) {
		return []entities.Suggestion{}, nil
	}

	reqBody := ollamaGenerateRequest{
		Model:  a.model,
		Prompt: buildPrompt(sreq),
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.2,
			TopP:        0.9,
		},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/generate", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Ollama returned status %d", resp.StatusCode)
	}

	var genResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return parseSuggestions(genResp.Response, sreq.ProofCode), nil
}

// buildPrompt embeds the proof source verbatim plus the most specific
// context available, and pins the answer to a scrapeable numbered format.
func buildPrompt(req entities.SuggestRequest) string {
	var sb strings.Builder
	sb.WriteString("You are an assistant for Lean tactic proofs.\n\nProof:\n")
	sb.WriteString(req.ProofCode)
	sb.WriteString("\n\n")

	switch {
	case req.ErrorMessage != "":
		sb.WriteString("The proof fails with this error:\n")
		sb.WriteString(req.ErrorMessage)
		sb.WriteString("\n\nSuggest 3 fixes.")
	case req.CurrentGoal != "":
		sb.WriteString("The current goal is:\n")
		sb.WriteString(req.CurrentGoal)
		sb.WriteString("\n\nSuggest 3 next steps.")
	default:
		sb.WriteString("Suggest 3 improvements.")
	}

	sb.WriteString(" Answer as a numbered list, one item per line, in the format:\n")
	sb.WriteString("N. [type] `content` - explanation\n")
	sb.WriteString("where type is one of lemma, tactic, fix, step.")
	return sb.String()
}

var (
	numberedRe = regexp.MustCompile(`^\s*\d+\.\s*(.+)$`)
	typeTagRe  = regexp.MustCompile(`\[(lemma|tactic|fix|step)\]`)
	codeSpanRe = regexp.MustCompile("`([^`]+)`")
)

// parseSuggestions scrapes numbered items out of the model's free text.
// Best-effort text scraping: lines that do not parse cleanly are dropped.
func parseSuggestions(text, context string) []entities.Suggestion {
	out := []entities.Suggestion{}
	for _, line := range strings.Split(text, "\n") {
		m := numberedRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		item := m[1]

		typ := entities.SuggestionTactic
		if tm := typeTagRe.FindStringSubmatch(item); tm != nil {
			typ = entities.SuggestionType(tm[1])
			item = strings.Replace(item, tm[0], "", 1)
		}

		var content, explanation string
		if cm := codeSpanRe.FindStringSubmatch(item); cm != nil {
			content = strings.TrimSpace(cm[1])
			explanation = trimSeparators(strings.Replace(item, cm[0], "", 1))
		} else if idx := strings.Index(item, " - "); idx >= 0 {
			content = strings.TrimSpace(item[:idx])
			explanation = strings.TrimSpace(item[idx+3:])
		} else {
			content = strings.TrimSpace(item)
		}
		if content == "" {
			continue
		}
		if explanation == "" {
			explanation = "Proposed by the local inference model"
		}

		out = append(out, entities.Suggestion{
			ID:          uuid.NewString(),
			Type:        typ,
			Content:     content,
			Explanation: explanation,
			Confidence:  0.85 - 0.05*float64(len(out)),
			Context:     context,
		})
		if len(out) == maxInferred {
			break
		}
	}
	return out
}

// trimSeparators strips the leftover " - " glue around a removed code span.
func trimSeparators(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "-")
	return strings.TrimSpace(s)
}
