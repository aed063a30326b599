package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resume-booster/internal/llm"
)

type capturedRequest struct {
	Model          string `json:"model"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(Options{APIKey: "sk-test", Model: "gpt-4o", BaseURL: srv.URL + "/v1", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func completion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"model":   "gpt-4o",
		"choices": []any{map[string]any{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"}},
		"usage":   map[string]any{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
	}
}

func TestAnalyzeResumeSendsJSONModeRequest(t *testing.T) {
	var got capturedRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion(`{"suggestions":[{"category":"Skills","content":"Go","improvement":"Add years"}]}`))
	})

	suggestions, err := client.AnalyzeResume(context.Background(), "Jane Doe\nGo developer")
	if err != nil {
		t.Fatalf("AnalyzeResume: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Category != "Skills" {
		t.Fatalf("unexpected suggestions: %+v", suggestions)
	}
	if got.Model != "gpt-4o" {
		t.Fatalf("unexpected model: %s", got.Model)
	}
	if got.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected json_object response format, got %q", got.ResponseFormat.Type)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "Jane Doe\nGo developer" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
}

func TestAnalyzeResumeEmptyContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion(""))
	})

	_, err := client.AnalyzeResume(context.Background(), "text")
	if !errors.Is(err, llm.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestAnalyzeResumeMalformedContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion(`{"ideas":[]}`))
	})

	_, err := client.AnalyzeResume(context.Background(), "text")
	if !errors.Is(err, llm.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestAnalyzeResumeProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	})

	if _, err := client.AnalyzeResume(context.Background(), "text"); err == nil {
		t.Fatalf("expected provider error")
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Options{Model: "gpt-4o"}); err == nil {
		t.Fatalf("expected missing key error")
	}
	if _, err := NewClient(Options{APIKey: "sk", Model: " "}); err == nil {
		t.Fatalf("expected missing model error")
	}
}
