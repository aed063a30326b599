package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SystemPrompt instructs the model to review a resume and answer with a
// {"suggestions":[...]} JSON object.
const SystemPrompt = `You review resumes professionally. Read the resume text and suggest concrete improvements.
Respond with a single JSON object of the form {"suggestions":[...]}.
Each element must have:
- "category": short area name such as Summary, Experience, Skills, Education or Formatting
- "content": the passage from the resume the suggestion refers to
- "improvement": a specific, actionable change to make`

var (
	// ErrNotConfigured is returned by the placeholder client.
	ErrNotConfigured = errors.New("llm provider not configured")
	// ErrEmptyResponse means the provider returned no content.
	ErrEmptyResponse = errors.New("llm response empty")
	// ErrMalformedResponse means the content was not a suggestions document.
	ErrMalformedResponse = errors.New("llm response malformed")
)

// Suggestion is a single improvement as returned by the model.
type Suggestion struct {
	Category    string `json:"category"`
	Content     string `json:"content"`
	Improvement string `json:"improvement"`
}

// Client abstracts LLM providers for resume analysis.
type Client interface {
	AnalyzeResume(ctx context.Context, resumeText string) ([]Suggestion, error)
}

// ParseSuggestions decodes the model's JSON content. Only the document and
// the suggestions array must be well formed: scalar fields are coerced to
// strings, and elements that are not objects or carry nested values in a
// field are dropped.
func ParseSuggestions(raw string) ([]Suggestion, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyResponse
	}
	var doc struct {
		Suggestions json.RawMessage `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	trimmed := strings.TrimSpace(string(doc.Suggestions))
	if trimmed == "" || trimmed == "null" || !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("%w: missing suggestions array", ErrMalformedResponse)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(doc.Suggestions, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	out := make([]Suggestion, 0, len(items))
	for _, item := range items {
		if s, ok := decodeSuggestion(item); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func decodeSuggestion(item json.RawMessage) (Suggestion, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
		return Suggestion{}, false
	}
	var s Suggestion
	for key, dst := range map[string]*string{
		"category":    &s.Category,
		"content":     &s.Content,
		"improvement": &s.Improvement,
	} {
		v, ok := coerceString(fields[key])
		if !ok {
			return Suggestion{}, false
		}
		*dst = v
	}
	return s, true
}

// coerceString renders a JSON scalar as text. Missing and null become "".
func coerceString(raw json.RawMessage) (string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case trimmed == "" || trimmed == "null":
		return "", true
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "["):
		return "", false
	default:
		// numbers and booleans
		return trimmed, true
	}
}

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// AnalyzeResume returns ErrNotConfigured.
func (PlaceholderClient) AnalyzeResume(ctx context.Context, resumeText string) ([]Suggestion, error) {
	return nil, ErrNotConfigured
}
